package dto

import (
	"time"

	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResumeResponse struct {
	ID                uuid.UUID           `json:"id"`
	FileName          string              `json:"file_name"`
	Source            resume.Source       `json:"source"`
	ExtractedText     string              `json:"extracted_text,omitempty"`
	Skills            []string            `json:"skills"`
	Education         resume.Education    `json:"education"`
	ContactInfo       resume.ContactInfo  `json:"contact_info"`
	Experience        []resume.Experience `json:"experience"`
	JobLevel          seniority.Level     `json:"job_level"`
	YearsOfExperience float64             `json:"years_of_experience"`
	CreatedAt         string              `json:"created_at"`
}

// NewResumeResponse drops the owner and storage key. The text is only
// included when withText is set.
func NewResumeResponse(r resume.Resume, withText bool) ResumeResponse {
	out := ResumeResponse{
		ID:                r.ID,
		FileName:          r.FileName,
		Source:            r.Source,
		Skills:            nonNil(r.Skills),
		Education:         r.Education,
		ContactInfo:       r.ContactInfo,
		Experience:        r.Experience,
		JobLevel:          r.JobLevel,
		YearsOfExperience: r.YearsOfExperience,
		CreatedAt:         r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withText {
		out.ExtractedText = r.ExtractedText
	}
	if out.Experience == nil {
		out.Experience = []resume.Experience{}
	}
	return out
}

type SeedResponse struct {
	Seeded int `json:"seeded"`
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	WSClients  int               `json:"ws_clients"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
