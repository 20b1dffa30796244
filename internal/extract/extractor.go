// Package extract turns free-form completion text into partial candidate updates.
package extract

import (
	"strings"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

// Extractor parses a block of text into a partial candidate update.
// Implementations are best-effort and return an empty update when nothing is recognised.
type Extractor interface {
	Extract(text string) candidate.Update
}

// Chain runs extractors in order. Later extractors only fill fields left empty by
// earlier ones, while tech stacks are unioned.
type Chain []Extractor

// Default returns the extractor used by the assistant.
func Default() Extractor {
	return Chain{NewStructured(), NewPattern()}
}

func (c Chain) Extract(text string) candidate.Update {
	var result candidate.Update
	for _, e := range c {
		if e == nil {
			continue
		}
		result = fill(result, e.Extract(text))
	}
	return result
}

func fill(dst, src candidate.Update) candidate.Update {
	pick := func(current, next string) string {
		if strings.TrimSpace(current) != "" {
			return current
		}
		return next
	}

	dst.Name = pick(dst.Name, src.Name)
	dst.Email = pick(dst.Email, src.Email)
	dst.Phone = pick(dst.Phone, src.Phone)
	dst.Experience = pick(dst.Experience, src.Experience)
	dst.Position = pick(dst.Position, src.Position)
	dst.Location = pick(dst.Location, src.Location)

	seen := make(map[string]struct{}, len(dst.TechStack))
	for _, tech := range dst.TechStack {
		seen[strings.ToLower(tech)] = struct{}{}
	}
	for _, tech := range src.TechStack {
		if _, ok := seen[strings.ToLower(tech)]; ok {
			continue
		}
		seen[strings.ToLower(tech)] = struct{}{}
		dst.TechStack = append(dst.TechStack, tech)
	}

	return dst
}
