package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/quote"

	"github.com/google/uuid"
)

// SMTPMailer sends quote requests over a plain SMTP connection, upgrading
// to STARTTLS when the server offers it.
type SMTPMailer struct {
	host      string
	port      int
	auth      smtp.Auth
	from      string
	recipient string
	timeout   time.Duration
	now       func() time.Time
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	m := &SMTPMailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		from:      cfg.SMTPFrom,
		recipient: cfg.QuoteRecipient,
		timeout:   cfg.MailTimeout,
		now:       time.Now,
	}
	if cfg.SMTPUser != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return m
}

// SendQuoteRequest delivers the sanitized submission to the configured
// recipient. Exactly one attempt; the send is bounded by the configured
// timeout and the caller's context, whichever expires first.
func (m *SMTPMailer) SendQuoteRequest(ctx context.Context, sub *quote.Submission) (*Receipt, error) {
	if m.host == "" || m.from == "" || m.recipient == "" {
		return nil, ErrNotConfigured
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	messageID := fmt.Sprintf("%s@%s", uuid.New().String(), m.host)
	body := m.buildMessage(messageID, sub)

	if err := m.deliver(ctx, body); err != nil {
		return nil, err
	}

	return &Receipt{
		MessageID: messageID,
		Timestamp: m.now(),
	}, nil
}

func (m *SMTPMailer) buildMessage(messageID string, sub *quote.Submission) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", m.recipient)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", sub.Email)
	fmt.Fprintf(&b, "Subject: New quote request from %s\r\n", sub.PharmacyName)
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s>\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Pharmacy:       %s\r\n", sub.PharmacyName)
	fmt.Fprintf(&b, "Contact person: %s\r\n", sub.ContactPerson)
	fmt.Fprintf(&b, "Phone:          %s\r\n", sub.Phone)
	fmt.Fprintf(&b, "Email:          %s\r\n", sub.Email)
	if sub.Address != "" || sub.City != "" || sub.State != "" {
		fmt.Fprintf(&b, "Address:        %s, %s, %s\r\n", sub.Address, sub.City, sub.State)
	}
	fmt.Fprintf(&b, "Weekly scripts: %s\r\n", sub.Volume.Display)
	if sub.Message != "" {
		b.WriteString("\r\nMessage:\r\n")
		b.WriteString(sub.Message)
		b.WriteString("\r\n")
	}

	return []byte(b.String())
}

func (m *SMTPMailer) deliver(ctx context.Context, message []byte) error {
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return &TransportError{Op: "dial", Err: err}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// Close the connection if the context is cancelled mid-session so a
	// stuck server cannot hold the request open past the deadline
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return &TransportError{Op: "handshake", Err: err}
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{
			ServerName: m.host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return &TransportError{Op: "starttls", Err: err}
		}
	}

	if m.auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(m.auth); err != nil {
				return &TransportError{Op: "auth", Err: err}
			}
		}
	}

	if err := client.Mail(m.from); err != nil {
		return &TransportError{Op: "mail from", Err: err}
	}
	if err := client.Rcpt(m.recipient); err != nil {
		return &TransportError{Op: "rcpt to", Err: err}
	}

	writer, err := client.Data()
	if err != nil {
		return &TransportError{Op: "data", Err: err}
	}
	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return &TransportError{Op: "data write", Err: err}
	}
	if err := writer.Close(); err != nil {
		return &TransportError{Op: "data close", Err: err}
	}

	if err := client.Quit(); err != nil {
		return &TransportError{Op: "quit", Err: err}
	}
	return nil
}
