package search

import (
	"strings"
	"unicode"
)

const maxVariants = 10

// Query is a free-text job search after normalization and expansion.
// Variants always starts with Normalized.
type Query struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases input, collapses whitespace and drops
// punctuation. '+', '#' and '.' survive inside a word so "C++", "C#" and
// "node.js" stay searchable.
func NormalizeQuery(input string) string {
	words := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' || r == '.')
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".")
		if w == "" || strings.Trim(w, "+#") == "" {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// ExpandQuery returns normalized plus synonym variants, at most ten.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)

	// replace a leading phrase that has synonyms, keeping the rest:
	// "golang pune" -> "go pune"
	tryPrefix := func(phrase string, rest []string) {
		syns := GetSynonyms(phrase)
		if len(syns) == 0 {
			return
		}
		tail := strings.Join(rest, " ")
		if phrase != normalized {
			add(strings.TrimSpace(phrase + " " + tail))
		}
		for _, syn := range syns {
			add(strings.TrimSpace(syn + " " + tail))
		}
	}

	if len(words) >= 1 {
		tryPrefix(words[0], words[1:])
		// compact spellings of spaced keys: "frontend" -> "front end"
		for k := range Synonyms {
			if strings.Contains(k, " ") && strings.ReplaceAll(k, " ", "") == words[0] {
				tryPrefix(k, words[1:])
				break
			}
		}
	}
	if len(words) >= 2 {
		tryPrefix(words[0]+" "+words[1], words[2:])
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) Query {
	q := Query{Original: input, Normalized: NormalizeQuery(input)}
	q.Variants = ExpandQuery(q.Normalized)
	return q
}
