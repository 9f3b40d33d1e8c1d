package quote

// RawSubmission is the untrusted field mapping taken from a form post.
// No invariants hold here: fields may be blank, missing or hostile.
type RawSubmission struct {
	PharmacyName  string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	City          string
	State         string
	VolumeToken   string
	VolumeDisplay string
	Message       string
	Honeypot      string
}

// VolumeSelection pairs a volume token with its human display string
type VolumeSelection struct {
	Token   string `json:"token"`
	Display string `json:"display"`
}

// Submission is the validated, sanitized record handed downstream.
// Validation tags drive the required-field and format checks; custom
// validators are registered in NewValidator.
type Submission struct {
	PharmacyName  string `validate:"required"`
	ContactPerson string `validate:"required"`
	Phone         string `validate:"required,us_phone"`
	Email         string `validate:"required,contact_email"`
	Address       string
	City          string
	State         string
	Volume        VolumeSelection
	Message       string `validate:"max=2000"`
	Honeypot      string `json:"-"`
}

// Result is the outcome of validating one raw submission.
// Constructed once per request, never mutated after return.
// Submission is always populated, even when Valid is false, so the error
// path can log what was attempted without touching unsanitized input.
type Result struct {
	Valid      bool
	Spam       bool
	Errors     []string
	Submission *Submission
}
