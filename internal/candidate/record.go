package candidate

import (
	"fmt"
	"sort"
	"strings"
)

// Labels used when asking the candidate for missing information.
const (
	MissingName       = "full name"
	MissingEmail      = "email address"
	MissingExperience = "years of experience"
	MissingTechStack  = "technical skills/programming languages"
)

// minKeyFields is how many of name, email, experience and tech stack must be known
// before technical questions can be generated.
const minKeyFields = 3

// Record accumulates everything known about the candidate. Empty strings mean unset.
type Record struct {
	Name       string
	Email      string
	Phone      string
	Experience string
	Position   string
	Location   string
	TechStack  TechStack
}

// Update is a partial record produced by a single extraction pass.
type Update struct {
	Name       string   `mapstructure:"name"`
	Email      string   `mapstructure:"email"`
	Phone      string   `mapstructure:"phone"`
	Experience string   `mapstructure:"experience"`
	Position   string   `mapstructure:"position"`
	Location   string   `mapstructure:"location"`
	TechStack  []string `mapstructure:"tech_stack"`
}

// IsEmpty reports whether the update carries no usable value.
func (u Update) IsEmpty() bool {
	for _, v := range []string{u.Name, u.Email, u.Phone, u.Experience, u.Position, u.Location} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	for _, tech := range u.TechStack {
		if strings.TrimSpace(tech) != "" {
			return false
		}
	}
	return true
}

// Merge applies the update. Non-empty scalars overwrite, the tech stack is unioned
// and nothing is ever cleared.
func (r *Record) Merge(u Update) {
	assign(&r.Name, u.Name)
	assign(&r.Email, u.Email)
	assign(&r.Phone, u.Phone)
	assign(&r.Experience, u.Experience)
	assign(&r.Position, u.Position)
	assign(&r.Location, u.Location)

	if r.TechStack == nil {
		r.TechStack = NewTechStack()
	}
	r.TechStack.Add(u.TechStack...)
}

func assign(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

// IsComplete reports whether enough is known to move on to technical questions.
// The tech stack is mandatory.
func (r *Record) IsComplete() bool {
	hasTech := r.TechStack.Len() > 0
	if !hasTech {
		return false
	}

	filled := 0
	for _, present := range []bool{r.Name != "", r.Email != "", r.Experience != "", hasTech} {
		if present {
			filled++
		}
	}

	return filled >= minKeyFields
}

// MissingFields lists the key fields that are still unset, in prompt order.
// It does not take the completeness threshold into account.
func (r *Record) MissingFields() []string {
	missing := make([]string, 0, 4)
	if r.Name == "" {
		missing = append(missing, MissingName)
	}
	if r.Email == "" {
		missing = append(missing, MissingEmail)
	}
	if r.Experience == "" {
		missing = append(missing, MissingExperience)
	}
	if r.TechStack.Len() == 0 {
		missing = append(missing, MissingTechStack)
	}
	return missing
}

// ContextSummary renders the known fields for the extraction prompt.
func (r *Record) ContextSummary() string {
	fields := r.Fields()
	if len(fields) == 0 {
		return "No information collected yet."
	}

	keys := make([]string, 0, len(fields))
	for _, key := range fieldOrder {
		if _, ok := fields[key]; ok {
			keys = append(keys, key)
		}
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, fields[key]))
	}

	return "Information collected so far: " + strings.Join(parts, "; ")
}

var fieldOrder = []string{"name", "email", "phone", "experience", "position", "location", "tech_stack"}

// Fields returns the set fields keyed by their canonical names.
func (r *Record) Fields() map[string]string {
	fields := make(map[string]string)
	add := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}

	add("name", r.Name)
	add("email", r.Email)
	add("phone", r.Phone)
	add("experience", r.Experience)
	add("position", r.Position)
	add("location", r.Location)
	add("tech_stack", strings.Join(r.TechStack.Values(), ", "))

	return fields
}

// Clone returns a deep copy.
func (r *Record) Clone() Record {
	cp := *r
	cp.TechStack = r.TechStack.Clone()
	return cp
}

// TechStack is a case-insensitive set of technologies kept in display form.
type TechStack map[string]string

func NewTechStack(items ...string) TechStack {
	ts := make(TechStack)
	ts.Add(items...)
	return ts
}

// Add inserts the items. Blank items are skipped.
func (ts TechStack) Add(items ...string) {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		ts[strings.ToLower(item)] = DisplayName(item)
	}
}

func (ts TechStack) Len() int { return len(ts) }

func (ts TechStack) Contains(item string) bool {
	_, ok := ts[strings.ToLower(strings.TrimSpace(item))]
	return ok
}

// Values returns the display names sorted alphabetically.
func (ts TechStack) Values() []string {
	values := make([]string, 0, len(ts))
	for _, v := range ts {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func (ts TechStack) Clone() TechStack {
	cp := make(TechStack, len(ts))
	for k, v := range ts {
		cp[k] = v
	}
	return cp
}

// DisplayName upper-cases the first letter and lower-cases the rest.
func DisplayName(s string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
