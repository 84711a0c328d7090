package profile

import (
	"regexp"
	"strconv"
	"strings"

	"resume-match/internal/domain/extraction"
	"resume-match/internal/domain/resume"
)

var yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// ToResume turns a profile into resume content. IDs, owner and source are
// left for the caller.
func ToResume(p Profile) resume.Resume {
	text := p.Text()

	exp := make([]resume.Experience, 0, len(p.Experience))
	for _, pos := range p.Experience {
		exp = append(exp, resume.Experience{
			Title:       pos.Title,
			Company:     pos.Company,
			Duration:    pos.Duration,
			Description: pos.Description,
		})
	}

	var edu resume.Education
	if len(p.Education) > 0 {
		s := p.Education[0]
		edu = resume.Education{Degree: s.Degree, Institution: s.Institution}
		if y := yearRe.FindString(s.GraduationYear); y != "" {
			edu.GraduationYear, _ = strconv.Atoi(y)
		}
	}

	years, ok := extraction.StatedYearsOfExperience(text)
	if !ok {
		years = extraction.EstimateYearsOfExperience(exp)
	}

	return resume.Resume{
		ExtractedText: text,
		Skills:        mergeSkills(p.Skills, extraction.ExtractSkills(text)),
		Education:     edu,
		ContactInfo: resume.ContactInfo{
			Email:    p.Email,
			Phone:    p.Phone,
			Location: p.Location,
		},
		Experience:        exp,
		JobLevel:          extraction.InferJobLevel(text, exp),
		YearsOfExperience: years,
	}
}

func mergeSkills(lists ...[]string) []string {
	out := make([]string, 0)
	seen := map[string]struct{}{}
	for _, l := range lists {
		for _, s := range l {
			k := strings.ToLower(strings.TrimSpace(s))
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
