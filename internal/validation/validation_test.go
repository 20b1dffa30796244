package validation

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"john@example.com", true},
		{"jane.doe+work@mail.acme.io", true},
		{"wrong@", false},
		{"no-at-sign.com", false},
		{"a@b.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Fatalf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"(555) 123-4567", true},
		{"+49 30 1234 5678 90", true},
		{"555-1234", false},
		{"1234567890123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := IsValidPhone(tt.phone); got != tt.want {
				t.Fatalf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("  line one\r\nline two \n"); got != "line one line two" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
	if got := CleanText(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestCategorizeSkills(t *testing.T) {
	got := CategorizeSkills("Python, Django and PostgreSQL with some Redis, C++ and Go")

	if !reflect.DeepEqual(got.Languages, []string{"python", "c++", "go"}) {
		t.Fatalf("unexpected languages: %v", got.Languages)
	}
	if !reflect.DeepEqual(got.Frameworks, []string{"django"}) {
		t.Fatalf("unexpected frameworks: %v", got.Frameworks)
	}
	if !reflect.DeepEqual(got.Databases, []string{"postgresql", "redis"}) {
		t.Fatalf("unexpected databases: %v", got.Databases)
	}
}

func TestRunDropsInvalidValues(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	steps := New(Config{Email: true, Phone: true})
	got := Run(zap.New(core), steps, candidate.Update{
		Name:  "Bob",
		Email: "bob@",
		Phone: "(555) 123-4567",
	})

	want := candidate.Update{Name: "Bob", Phone: "(555) 123-4567"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	entries := observed.FilterMessage("validator rejected values").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 rejection log, got %d", len(entries))
	}
	if entries[0].ContextMap()["name"] != "email" {
		t.Fatalf("unexpected validator name: %v", entries[0].ContextMap()["name"])
	}
}

func TestRunSkipsDisabledValidators(t *testing.T) {
	steps := New(Config{Email: true})
	DisableByName(steps, "email", "testing")

	u := candidate.Update{Email: "bad", Phone: "12"}
	if got := Run(nil, steps, u); !reflect.DeepEqual(got, u) {
		t.Fatalf("expected update to be untouched, got %+v", got)
	}

	statuses := Describe(steps)
	want := []Status{
		{Name: "email", Enabled: false, Reason: "testing"},
		{Name: "phone", Enabled: false, Reason: "disabled by configuration"},
	}
	if !reflect.DeepEqual(statuses, want) {
		t.Fatalf("expected %+v, got %+v", want, statuses)
	}
}
