package validation

import (
	"regexp"
	"strings"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPhone reports whether phone has between 10 and 15 digits once formatting is stripped.
func IsValidPhone(phone string) bool {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	return len(digits) >= minPhoneDigits && len(digits) <= maxPhoneDigits
}

// CleanText trims the input and flattens line breaks into spaces.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r", "")
	return strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
}

type emailValidator struct {
	toggle
}

// NewEmail creates a validator that drops malformed email addresses.
func NewEmail() Validator {
	return &emailValidator{}
}

func (v *emailValidator) Name() string { return "email" }

func (v *emailValidator) Apply(u candidate.Update) (candidate.Update, Step) {
	if u.Email == "" {
		return u, Step{}
	}
	if IsValidEmail(u.Email) {
		return u, Step{Checked: 1}
	}

	rejected := u.Email
	u.Email = ""
	return u, Step{Checked: 1, Rejected: []string{rejected}}
}

type phoneValidator struct {
	toggle
}

// NewPhone creates a validator that drops phone numbers with an implausible digit count.
func NewPhone() Validator {
	return &phoneValidator{}
}

func (v *phoneValidator) Name() string { return "phone" }

func (v *phoneValidator) Apply(u candidate.Update) (candidate.Update, Step) {
	if u.Phone == "" {
		return u, Step{}
	}
	if IsValidPhone(u.Phone) {
		return u, Step{Checked: 1}
	}

	rejected := u.Phone
	u.Phone = ""
	return u, Step{Checked: 1, Rejected: []string{rejected}}
}
