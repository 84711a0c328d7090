package matching

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/resume"
)

type RankedJob struct {
	Job                job.Posting `json:"job"`
	CompatibilityScore int         `json:"compatibility_score"`
	MatchReasons       []string    `json:"match_reasons"`
}

const topReasonSkills = 3

var titleStopWords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "of": {},
	"senior": {}, "junior": {}, "lead": {}, "staff": {}, "principal": {}, "intern": {},
	"mid": {}, "level": {}, "entry": {},
}

var titleWordRe = regexp.MustCompile(`[a-z0-9+#.]+`)

// RankJobsForResume scores every posting against r and orders them from
// best to worst. Equal scores keep their input order.
func (e *Engine) RankJobsForResume(r resume.Resume, jobs []job.Posting) []RankedJob {
	out := make([]RankedJob, 0, len(jobs))
	background := strings.ToLower(r.ExtractedText)
	for _, ex := range r.Experience {
		background += "\n" + strings.ToLower(ex.Title)
	}

	for _, j := range jobs {
		s := compute(r, j)
		out = append(out, RankedJob{
			Job:                j,
			CompatibilityScore: s.total,
			MatchReasons:       matchReasons(r, j, s, background),
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CompatibilityScore > out[b].CompatibilityScore
	})
	return out
}

func matchReasons(r resume.Resume, j job.Posting, s score, background string) []string {
	reasons := make([]string, 0, 5)

	switch {
	case s.total >= 80:
		reasons = append(reasons, "Excellent match for your profile")
	case s.total >= 60:
		reasons = append(reasons, "Strong match for your skills")
	case s.total >= 40:
		reasons = append(reasons, "Moderate match, some skill development needed")
	default:
		reasons = append(reasons, "Learning opportunity, several skills to develop")
	}

	if essential := s.skills.Essential; len(essential) > 0 {
		top := essential
		if len(top) > topReasonSkills {
			top = top[:topReasonSkills]
		}
		reasons = append(reasons, fmt.Sprintf("You have %d matching skills: %s", len(essential), strings.Join(top, ", ")))
	}

	if r.JobLevel != "" && j.ExperienceLevel != "" && r.JobLevel.OrDefault() == j.ExperienceLevel.OrDefault() {
		reasons = append(reasons, "Perfect experience level match")
	}

	if isRemote(j.Location) {
		reasons = append(reasons, "Remote-friendly position")
	}

	if kws := titleOverlap(j.Title, background); len(kws) > 0 {
		reasons = append(reasons, "Relevant background: "+strings.Join(kws, ", "))
	}

	return reasons
}

func titleOverlap(title, background string) []string {
	if strings.TrimSpace(background) == "" {
		return nil
	}
	out := make([]string, 0, 3)
	seen := map[string]struct{}{}
	for _, w := range titleWordRe.FindAllString(strings.ToLower(title), -1) {
		if len(w) < 3 {
			continue
		}
		if _, stop := titleStopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		re := regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(w) + `([^a-z0-9]|$)`)
		if re.MatchString(background) {
			out = append(out, w)
		}
		if len(out) == topReasonSkills {
			break
		}
	}
	return out
}
