package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	programmingLanguages = []string{
		"python", "javascript", "java", "c++", "c#", "ruby", "php",
		"swift", "kotlin", "go", "rust", "typescript", "r", "scala",
	}
	frameworks = []string{
		"react", "angular", "vue", "django", "flask", "spring", "rails",
		"express", "next.js", "nuxt", "laravel", "asp.net",
	}
	databases = []string{
		"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
		"cassandra", "elasticsearch",
	}
)

// Skills groups recognised technologies by category.
type Skills struct {
	Languages  []string
	Frameworks []string
	Databases  []string
}

// CategorizeSkills matches whole words against fixed vocabularies, so "go" is
// not found inside "django".
func CategorizeSkills(text string) Skills {
	lower := strings.ToLower(text)

	match := func(vocabulary []string) []string {
		var found []string
		for _, item := range vocabulary {
			if containsWord(lower, item) {
				found = append(found, item)
			}
		}
		return found
	}

	return Skills{
		Languages:  match(programmingLanguages),
		Frameworks: match(frameworks),
		Databases:  match(databases),
	}
}

func containsWord(text, word string) bool {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], word)
		if idx == -1 {
			return false
		}
		start := offset + idx
		end := start + len(word)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
