package query

import (
	"regexp"
	"strings"
	"unicode"
)

var quotedRe = regexp.MustCompile(`"([^"]*)"`)

// defaultKeywords are lower-cased domain terms that count as entities
// even without capitalization or digits.
var defaultKeywords = map[string]bool{
	"tusd":     true,
	"k12":      true,
	"district": true,
	"school":   true,
}

// ExtractEntities pulls candidate company/project names out of a
// free-text query. It unions two heuristics: double-quoted substrings
// taken verbatim, and whitespace tokens longer than two characters that
// start with an uppercase letter, contain a digit, or match a known
// domain keyword. The result is deduplicated; ordering follows first
// appearance. This is a routing aid, not a parser.
func ExtractEntities(q string) []string {
	seen := make(map[string]bool)
	var entities []string

	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		entities = append(entities, s)
	}

	for _, m := range quotedRe.FindAllStringSubmatch(q, -1) {
		add(m[1])
	}

	for _, word := range strings.Fields(q) {
		token := strings.TrimFunc(word, func(r rune) bool {
			return unicode.IsPunct(r) && r != '"'
		})
		token = strings.Trim(token, `"`)
		if len(token) <= 2 {
			continue
		}
		runes := []rune(token)
		switch {
		case unicode.IsUpper(runes[0]):
			add(token)
		case strings.ContainsFunc(token, unicode.IsDigit):
			add(token)
		case defaultKeywords[strings.ToLower(token)]:
			add(token)
		}
	}

	return entities
}
