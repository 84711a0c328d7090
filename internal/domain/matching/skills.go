package matching

import (
	"math"
	"strings"
)

const (
	EssentialSkillWeight  = 0.7
	NiceToHaveSkillWeight = 0.3
)

type SkillMatch struct {
	Essential      []string `json:"essential"`
	NiceToHave     []string `json:"nice_to_have"`
	Missing        []string `json:"missing"`
	Score          int      `json:"score"`
	EssentialCount int      `json:"essential_count"`
	TotalRequired  int      `json:"total_required"`
}

// Matched returns essential followed by nice-to-have skills.
func (m SkillMatch) Matched() []string {
	out := make([]string, 0, len(m.Essential)+len(m.NiceToHave))
	out = append(out, m.Essential...)
	out = append(out, m.NiceToHave...)
	return out
}

// MatchSkills places every required skill in exactly one of essential,
// nice-to-have or missing. A skill is essential when some resume skill equals
// it, contains it or is contained in it; nice-to-have when that only holds
// after dropping a trailing "s" from either side.
func MatchSkills(resumeSkills, jobSkills []string) SkillMatch {
	have := normalizeSkills(resumeSkills)
	want := normalizeSkills(jobSkills)

	m := SkillMatch{
		Essential:     make([]string, 0, len(want)),
		NiceToHave:    make([]string, 0),
		Missing:       make([]string, 0, len(want)),
		TotalRequired: len(want),
	}

	for _, js := range want {
		switch {
		case matchesAny(have, js, overlaps):
			m.Essential = append(m.Essential, js)
		case matchesAny(have, js, overlapsSingular):
			m.NiceToHave = append(m.NiceToHave, js)
		default:
			m.Missing = append(m.Missing, js)
		}
	}

	m.EssentialCount = len(m.Essential)

	denom := float64(m.TotalRequired)
	if denom < 1 {
		denom = 1
	}
	raw := 100 * (EssentialSkillWeight*float64(len(m.Essential))/denom + NiceToHaveSkillWeight*float64(len(m.NiceToHave))/denom)
	m.Score = clampInt(int(math.Round(raw)), 0, 100)

	return m
}

func matchesAny(have []string, want string, fn func(a, b string) bool) bool {
	for _, h := range have {
		if fn(h, want) {
			return true
		}
	}
	return false
}

func overlaps(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func overlapsSingular(a, b string) bool {
	sa, sb := singular(a), singular(b)
	if sa == "" || sb == "" {
		return false
	}
	return strings.Contains(a, sb) || strings.Contains(b, sa)
}

func singular(s string) string {
	return strings.TrimSuffix(s, "s")
}

func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
