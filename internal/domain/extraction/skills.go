package extraction

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExtractSkills returns the vocabulary terms that occur in text as whole
// words, case-insensitively. Each term appears at most once, in vocabulary order.
func ExtractSkills(text string) []string {
	out := make([]string, 0, 16)
	normalized := foldText(text)
	if strings.TrimSpace(normalized) == "" {
		return out
	}

	seen := make(map[string]struct{}, 16)
	for _, t := range vocabulary {
		if _, ok := seen[t.Name]; ok {
			continue
		}
		if t.re.MatchString(normalized) {
			seen[t.Name] = struct{}{}
			out = append(out, t.Name)
		}
	}
	return out
}

// foldText lower-cases s and strips combining marks so that accented
// spellings still hit the vocabulary.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
