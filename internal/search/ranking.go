package search

import (
	"sort"
	"strings"
	"time"

	"resume-match/internal/domain/job"
)

// Score breaks down how a posting ranks for one query.
type Score struct {
	Relevance     float64
	Freshness     float64
	SourceQuality float64
	DataQuality   float64
	Final         float64
}

const maxRelevance = 10

// SourceWeights rates where a posting came from. Careers pages are keyed
// by their "careers:" prefix.
var SourceWeights = map[string]float64{
	"careers":        4,
	job.SourceManual: 3,
	"linkedin":       3,
	job.SourceSample: 1,
}

func ComputeRelevance(p job.Posting, variants []string) float64 {
	if len(variants) == 0 {
		return 0
	}
	title := strings.ToLower(p.Title)
	desc := strings.ToLower(p.Description)
	company := strings.ToLower(p.Company)

	score := 0.0
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if strings.Contains(title, v) {
			score += 3
		}
		for _, s := range p.RequiredSkills {
			if strings.EqualFold(s, v) {
				score += 2
				break
			}
		}
		if strings.Contains(desc, v) {
			score++
		}
		if strings.Contains(company, v) {
			score++
		}
		if score >= maxRelevance {
			return maxRelevance
		}
	}
	return score
}

func ComputeFreshness(p job.Posting, now time.Time) float64 {
	if p.PostedAt.IsZero() {
		return 0
	}
	age := max(now.Sub(p.PostedAt), 0)

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	}
	return 0
}

func ComputeSourceQuality(source string) float64 {
	source = strings.ToLower(strings.TrimSpace(source))
	if prefix, _, ok := strings.Cut(source, ":"); ok {
		source = prefix
	}
	if w, ok := SourceWeights[source]; ok {
		return w
	}
	return 1
}

func ComputeDataQuality(p job.Posting) float64 {
	score := 0.0
	for _, s := range []string{p.Title, p.Company, p.Location, p.URL} {
		if strings.TrimSpace(s) != "" {
			score++
		}
	}
	if len(strings.TrimSpace(p.Description)) > 100 {
		score++
	}
	return score
}

func ScoreJob(p job.Posting, variants []string, now time.Time) Score {
	s := Score{
		Relevance:     ComputeRelevance(p, variants),
		Freshness:     ComputeFreshness(p, now),
		SourceQuality: ComputeSourceQuality(p.Source),
		DataQuality:   ComputeDataQuality(p),
	}
	s.Final = s.Relevance*2 + s.Freshness*1.5 + s.SourceQuality + s.DataQuality*0.5
	return s
}

// Rank orders postings by Score.Final, best first. Ties keep input order.
// With no variants the input is returned unchanged.
func Rank(postings []job.Posting, variants []string, now time.Time) []job.Posting {
	if len(postings) == 0 || len(variants) == 0 {
		return postings
	}

	scores := make([]float64, len(postings))
	idx := make([]int, len(postings))
	for i := range postings {
		scores[i] = ScoreJob(postings[i], variants, now).Final
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	out := make([]job.Posting, 0, len(postings))
	for _, i := range idx {
		out = append(out, postings[i])
	}
	return out
}
