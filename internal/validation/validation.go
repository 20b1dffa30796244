// Package validation holds optional checks applied to extracted candidate details.
package validation

import (
	"go.uber.org/zap"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

// Validator represents a single check applied to a partial candidate update.
type Validator interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(u candidate.Update) (candidate.Update, Step)
}

// Step describes the result of executing a validator.
type Step struct {
	Checked  int
	Rejected []string
}

// Status represents runtime information about a validator.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// Config selects which validators are enabled.
type Config struct {
	Email bool `mapstructure:"email"`
	Phone bool `mapstructure:"phone"`
}

// New returns the validators described by cfg. Disabled ones stay in the list.
func New(cfg Config) []Validator {
	email := NewEmail()
	if !cfg.Email {
		email.Disable("disabled by configuration")
	}

	phone := NewPhone()
	if !cfg.Phone {
		phone.Disable("disabled by configuration")
	}

	return []Validator{email, phone}
}

// DisableByName marks a validator with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Validator, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the enabled validators sequentially and returns the cleaned update.
func Run(logger *zap.Logger, steps []Validator, u candidate.Update) candidate.Update {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}

		next, info := step.Apply(u)
		if len(info.Rejected) > 0 {
			logger.Info("validator rejected values",
				zap.String("name", step.Name()),
				zap.Int("checked", info.Checked),
				zap.Strings("rejected", info.Rejected),
			)
		}

		u = next
	}

	return u
}

// Describe returns status entries for the provided validators.
func Describe(steps []Validator) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		status := Status{Name: step.Name(), Enabled: step.IsEnabled()}
		if r, ok := step.(interface{ DisabledReason() string }); ok {
			status.Reason = r.DisabledReason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// toggle is embedded by validators to implement Disable/IsEnabled.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) DisabledReason() string { return t.reason }
