package extraction

import (
	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"
)

// Parsed is the structured view of free resume text.
type Parsed struct {
	Skills            []string            `json:"skills"`
	Education         resume.Education    `json:"education"`
	ContactInfo       resume.ContactInfo  `json:"contact_info"`
	Experience        []resume.Experience `json:"experience"`
	JobLevel          seniority.Level     `json:"job_level"`
	YearsOfExperience float64             `json:"years_of_experience"`
}

// ParseText runs every extractor over text. It never fails; fields that
// could not be found are left at their zero value.
func ParseText(text string) Parsed {
	exp := ExtractExperience(text)
	return Parsed{
		Skills:            ExtractSkills(text),
		Education:         ExtractEducation(text),
		ContactInfo:       ExtractContact(text),
		Experience:        exp,
		JobLevel:          InferJobLevel(foldText(text), exp),
		YearsOfExperience: EstimateYearsOfExperience(exp),
	}
}

// Resume copies the parsed fields into a Resume holding text.
func (p Parsed) Resume(text string) resume.Resume {
	return resume.Resume{
		ExtractedText:     text,
		Skills:            p.Skills,
		Education:         p.Education,
		ContactInfo:       p.ContactInfo,
		Experience:        p.Experience,
		JobLevel:          p.JobLevel,
		YearsOfExperience: p.YearsOfExperience,
	}
}
