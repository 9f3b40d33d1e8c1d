package quote

import (
	"strings"

	"github.com/rxbridge/website-backend/internal/api/sanitization"
	"github.com/rxbridge/website-backend/internal/utils"

	"github.com/go-playground/validator/v10"
)

// honeypotAllowList contains substrings that browser autofill routinely
// drops into hidden fields. A honeypot value containing any of these (or
// shorter than honeypotMinSpamLength) is treated as accidental noise, not
// spam. This is a tunable policy, not a security boundary.
var honeypotAllowList = []string{
	"http://",
	"https://",
	"www.",
	"example.com",
	"n/a",
	"none",
}

const honeypotMinSpamLength = 10

// errorMessages maps struct field + failed tag to the human-readable reason
// surfaced to the client. Order of surfacing follows struct field order.
var errorMessages = map[string]string{
	"PharmacyName.required":  "Pharmacy name is required",
	"ContactPerson.required": "Contact person is required",
	"Phone.required":         "Phone number is required",
	"Phone.us_phone":         "A valid US phone number is required",
	"Email.required":         "Email address is required",
	"Email.contact_email":    "A valid email address is required",
	"Message.max":            "Message must be 2000 characters or fewer",
}

// Validator turns raw form submissions into sanitized, validated records
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("us_phone", func(fl validator.FieldLevel) bool {
		return utils.IsValidPhoneUS(fl.Field().String())
	})
	v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return utils.IsValidEmail(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate sanitizes the raw submission and collects every validation error
// in a single pass. It never short-circuits: the client gets the full list
// of problems at once, and the sanitized record is returned either way.
func (v *Validator) Validate(raw RawSubmission) Result {
	volume, resolved := NormalizeVolume(raw.VolumeToken, raw.VolumeDisplay)

	sub := &Submission{
		PharmacyName:  sanitization.SanitizeText(raw.PharmacyName),
		ContactPerson: sanitization.SanitizeText(raw.ContactPerson),
		Phone:         sanitization.SanitizeText(raw.Phone),
		Email:         sanitization.SanitizeEmail(raw.Email),
		Address:       sanitization.SanitizeText(raw.Address),
		City:          sanitization.SanitizeText(raw.City),
		State:         sanitization.SanitizeText(raw.State),
		Volume:        volume,
		Message:       sanitization.StripTags(raw.Message),
		Honeypot:      strings.TrimSpace(raw.Honeypot),
	}

	var errs []string

	if err := v.validate.Struct(sub); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				if msg, ok := errorMessages[fe.StructField()+"."+fe.Tag()]; ok {
					errs = append(errs, msg)
				} else {
					errs = append(errs, "Invalid value for "+fe.StructField())
				}
			}
		} else {
			errs = append(errs, "Invalid submission")
		}
	}

	if raw.VolumeToken != "" && !resolved {
		errs = append(errs, "Invalid volume selection")
	}

	spam := sub.Honeypot != "" && !isAutofillNoise(sub.Honeypot)
	if spam {
		errs = append(errs, "Spam detected")
	}

	return Result{
		Valid:      len(errs) == 0,
		Spam:       spam,
		Errors:     errs,
		Submission: sub,
	}
}

// isAutofillNoise decides whether a filled honeypot looks like harmless
// browser autofill rather than a bot. Short values and values containing
// common autofill fragments are tolerated; anything else counts as spam.
func isAutofillNoise(value string) bool {
	if len(value) < honeypotMinSpamLength {
		return true
	}
	lower := strings.ToLower(value)
	for _, allowed := range honeypotAllowList {
		if strings.Contains(lower, allowed) {
			return true
		}
	}
	return false
}
