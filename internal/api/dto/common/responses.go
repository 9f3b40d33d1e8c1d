package common

import "time"

// ErrorResponse is the standard shape for every non-2xx response
type ErrorResponse struct {
	Success     bool     `json:"success"`
	Error       string   `json:"error"`
	Details     []string `json:"details,omitempty"`
	ContactInfo string   `json:"contactInfo,omitempty"`
	RetryAfter  int      `json:"retryAfter,omitempty"`
}

// NewValidationErrorResponse builds a 400 body carrying the full reason list
func NewValidationErrorResponse(details []string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   "Validation failed",
		Details: details,
	}
}

// NewRejectionResponse builds the generic 400 body used for spam, honeypot
// and timing rejections. Intentionally carries no detail.
func NewRejectionResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   "Submission rejected",
	}
}

// NewRateLimitResponse builds the 429 body with a retry-after hint in seconds
func NewRateLimitResponse(retryAfterSeconds int) ErrorResponse {
	return ErrorResponse{
		Success:    false,
		Error:      "Too many requests. Please try again later.",
		RetryAfter: retryAfterSeconds,
	}
}

// NewTransportErrorResponse builds the 500 body shown when the outbound email
// fails. The user gets a fallback contact method, never the transport error.
func NewTransportErrorResponse(contactInfo string) ErrorResponse {
	return ErrorResponse{
		Success:     false,
		Error:       "We could not send your request right now.",
		ContactInfo: contactInfo,
	}
}

// HealthResponse is the body of the liveness probe
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
