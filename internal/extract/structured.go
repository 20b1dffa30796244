package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

// Structured picks up completions that answer with a JSON object instead of prose.
type Structured struct{}

func NewStructured() *Structured {
	return &Structured{}
}

func (s *Structured) Extract(text string) candidate.Update {
	u, err := decodeUpdate(text)
	if err != nil {
		return candidate.Update{}
	}
	return u
}

func decodeUpdate(raw string) (candidate.Update, error) {
	var u candidate.Update

	object := extractJSON(raw)
	if object == "" {
		return u, fmt.Errorf("no json object found")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(object), &data); err != nil {
		return u, fmt.Errorf("parse json object: %w", err)
	}

	normalized := make(map[string]any, len(data))
	for key, value := range data {
		normalized[normalizeKey(key)] = value
	}
	if stack, ok := normalized["tech_stack"].(string); ok {
		normalized["tech_stack"] = splitList(stack)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &u,
	})
	if err != nil {
		return u, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(normalized); err != nil {
		return candidate.Update{}, fmt.Errorf("decode candidate update: %w", err)
	}

	if u.Experience != "" && !strings.Contains(strings.ToLower(u.Experience), "year") {
		u.Experience = strings.TrimSpace(u.Experience) + " years"
	}

	for i, tech := range u.TechStack {
		u.TechStack[i] = candidate.DisplayName(tech)
	}

	return u, nil
}

// extractJSON returns the first {...} block, unwrapping markdown code fences.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "```"); idx != -1 {
		raw = raw[idx:]
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if end := strings.Index(raw, "```"); end != -1 {
			raw = raw[:end]
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(raw[start : end+1])
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	switch key {
	case "full_name":
		return "name"
	case "email_address":
		return "email"
	case "phone_number":
		return "phone"
	case "years_of_experience":
		return "experience"
	case "desired_position", "role":
		return "position"
	case "skills", "technical_skills", "techstack":
		return "tech_stack"
	default:
		return key
	}
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
