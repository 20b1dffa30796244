package extract

import (
	"regexp"
	"strings"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

// TechVocabulary is the fixed list of technologies recognised in completions.
var TechVocabulary = []string{
	"python", "django", "react", "postgresql", "javascript", "node",
	"sql", "mongodb", "flask", "vue", "angular",
}

var (
	nameRe       = regexp.MustCompile(`(?i)name[:\s]+([A-Za-z \t]+)`)
	emailRe      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe      = regexp.MustCompile(`(?i)phone(?:\s+number)?[: \t]*([\d\-() \t]+)`)
	experienceRe = regexp.MustCompile(`(?i)(\d+)\s*years?(?:\s+(?:of\s+)?experience)?`)
	positionRe   = regexp.MustCompile(`(?i)(?:position|role)[: \t]+([A-Za-z][A-Za-z /&.+#-]*)`)
	locationRe   = regexp.MustCompile(`(?i)location[: \t]+([A-Za-z][A-Za-z ,.'-]*)`)
)

// Pattern extracts fields from completions that restate them as "label: value".
// It does no natural language understanding on its own.
type Pattern struct {
	vocabulary []string
}

// NewPattern returns a pattern extractor over the default vocabulary.
func NewPattern() *Pattern {
	return &Pattern{vocabulary: TechVocabulary}
}

func (p *Pattern) Extract(text string) candidate.Update {
	var u candidate.Update

	if m := nameRe.FindStringSubmatch(text); m != nil {
		u.Name = strings.TrimSpace(m[1])
	}

	if m := emailRe.FindString(text); m != "" {
		u.Email = m
	}

	if m := phoneRe.FindStringSubmatch(text); m != nil {
		u.Phone = strings.TrimSpace(m[1])
	}

	if m := experienceRe.FindStringSubmatch(text); m != nil {
		u.Experience = m[1] + " years"
	}

	if m := positionRe.FindStringSubmatch(text); m != nil {
		u.Position = strings.TrimSpace(m[1])
	}

	if m := locationRe.FindStringSubmatch(text); m != nil {
		u.Location = strings.Trim(strings.TrimSpace(m[1]), ",.")
	}

	u.TechStack = p.matchTech(text)

	return u
}

func (p *Pattern) matchTech(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, tech := range p.vocabulary {
		if strings.Contains(lower, tech) {
			found = append(found, candidate.DisplayName(tech))
		}
	}
	return found
}
