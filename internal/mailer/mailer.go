package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rxbridge/website-backend/internal/quote"
)

// ErrNotConfigured is returned when the SMTP transport is missing required
// settings (host, from address or recipient). Distinct from transport
// failures so operators can tell a deployment problem from an outage.
var ErrNotConfigured = errors.New("mailer: smtp transport not configured")

// TransportError wraps a failure while talking to the SMTP server
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mailer: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Receipt confirms a delivered message
type Receipt struct {
	MessageID string    `json:"messageId"`
	Timestamp time.Time `json:"timestamp"`
}

// Mailer delivers an accepted quote request to the configured destination.
// One attempt per call; retries are not this package's responsibility.
type Mailer interface {
	SendQuoteRequest(ctx context.Context, sub *quote.Submission) (*Receipt, error)
}
