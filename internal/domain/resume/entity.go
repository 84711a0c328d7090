package resume

import (
	"time"

	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
)

type Source string

const (
	SourceUpload        Source = "upload"
	SourceLinkedIn      Source = "linkedin"
	SourceProfileExport Source = "profile_export"
)

type Education struct {
	Degree         string  `json:"degree,omitempty"`
	Institution    string  `json:"institution,omitempty"`
	GraduationYear int     `json:"graduation_year,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`
}

type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Resume struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"user_id"`
	FileName          string          `json:"file_name"`
	FileRef           string          `json:"file_ref,omitempty"`
	Source            Source          `json:"source"`
	ExtractedText     string          `json:"extracted_text"`
	Skills            []string        `json:"skills"`
	Education         Education       `json:"education"`
	ContactInfo       ContactInfo     `json:"contact_info"`
	Experience        []Experience    `json:"experience"`
	JobLevel          seniority.Level `json:"job_level"`
	YearsOfExperience float64         `json:"years_of_experience"`
	CreatedAt         time.Time       `json:"created_at"`
}
