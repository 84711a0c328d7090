package dto

type ParseResumeRequest struct {
	Text string `json:"text" validate:"required"`
}

type UpdateLevelRequest struct {
	JobLevel          string   `json:"job_level" validate:"required"`
	YearsOfExperience *float64 `json:"years_of_experience" validate:"required,gte=0,lte=70"`
}

type ImportLinkedInRequest struct {
	URL string `json:"url" validate:"required"`
}

type AddJobRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Company         string   `json:"company" validate:"required,max=200"`
	Description     string   `json:"description" validate:"max=20000"`
	RequiredSkills  []string `json:"required_skills" validate:"max=50,dive,max=60"`
	Location        string   `json:"location" validate:"required,max=120"`
	ExperienceLevel string   `json:"experience_level" validate:"required"`
	URL             string   `json:"url" validate:"omitempty,url"`
}

type AnalyzeRequest struct {
	ResumeID string `json:"resume_id" validate:"required,uuid"`
	JobID    string `json:"job_id" validate:"required,uuid"`
}

type BatchAnalyzeRequest struct {
	ResumeID string   `json:"resume_id" validate:"required,uuid"`
	JobIDs   []string `json:"job_ids" validate:"required,min=1,max=20,dive,uuid"`
}
