package quote

import "time"

// QuoteRequest represents a raw quote form submission as received from the
// client. Nothing here is trusted: every field is optional at the binding
// layer so that the payload validator can report all problems in one pass
// instead of gin rejecting the body on the first missing field.
type QuoteRequest struct {
	PharmacyName  string `json:"pharmacy_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`

	// Current volume token plus the legacy field older cached pages still send
	WeeklyScripts        string `json:"weekly_scripts"`
	WeeklyScriptsDisplay string `json:"weekly_scripts_display"`
	MonthlyScripts       string `json:"monthly_scripts"`

	Message string `json:"message"`

	// Honeypot: hidden on the rendered form, expected empty
	CompanyWebsite string `json:"company_website"`

	// Client-side epoch millis captured when the form was displayed
	SubmissionTime int64 `json:"submission_time"`
}

// QuoteResponse represents the response after a successful submission
type QuoteResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
