package job

import (
	"time"

	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
)

const (
	SourceManual = "manual"
	SourceSample = "sample"
)

type Posting struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Description     string          `json:"description"`
	RequiredSkills  []string        `json:"required_skills"`
	Location        string          `json:"location"`
	ExperienceLevel seniority.Level `json:"experience_level"`
	Source          string          `json:"source"`
	URL             string          `json:"url,omitempty"`
	PostedAt        time.Time       `json:"posted_at"`
}

// CareersSource tags postings collected from a company careers page.
func CareersSource(name string) string {
	return "careers:" + name
}

// Samples is the demo catalogue loaded by the seeder and the seed endpoint.
// URLs are stable so seeding twice does not duplicate postings.
func Samples(now time.Time) []Posting {
	return []Posting{
		{
			Title:           "Frontend Developer",
			Company:         "TechCorp",
			Description:     "We are looking for a skilled Frontend Developer to join our team.",
			RequiredSkills:  []string{"React", "JavaScript", "HTML", "CSS", "TypeScript", "Git"},
			Location:        "Mumbai",
			ExperienceLevel: seniority.Entry,
			Source:          SourceSample,
			URL:             "sample://frontend-developer-techcorp",
			PostedAt:        now,
		},
		{
			Title:           "Backend Engineer (Go)",
			Company:         "Cloudline Systems",
			Description:     "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
			RequiredSkills:  []string{"Go", "PostgreSQL", "Docker", "Redis", "Git"},
			Location:        "Pune",
			ExperienceLevel: seniority.Mid,
			Source:          SourceSample,
			URL:             "sample://backend-engineer-go-cloudline",
			PostedAt:        now,
		},
		{
			Title:           "Senior DevOps Engineer",
			Company:         "InfraWorks",
			Description:     "Operate CI/CD, Kubernetes and AWS infrastructure for production workloads.",
			RequiredSkills:  []string{"AWS", "Kubernetes", "Terraform", "Docker", "Linux", "Jenkins"},
			Location:        "Remote",
			ExperienceLevel: seniority.Senior,
			Source:          SourceSample,
			URL:             "sample://senior-devops-engineer-infraworks",
			PostedAt:        now,
		},
		{
			Title:           "Data Analyst",
			Company:         "InsightWorks",
			Description:     "Turn product data into dashboards and recommendations for the business.",
			RequiredSkills:  []string{"Python", "Pandas", "Tableau", "MySQL", "Communication"},
			Location:        "Bangalore",
			ExperienceLevel: seniority.Entry,
			Source:          SourceSample,
			URL:             "sample://data-analyst-insightworks",
			PostedAt:        now,
		},
		{
			Title:           "Full Stack Developer",
			Company:         "Startup Inc",
			Description:     "Ship features end to end with React on the frontend and Node.js services behind it.",
			RequiredSkills:  []string{"React", "NodeJS", "Express", "MongoDB", "TypeScript"},
			Location:        "Remote",
			ExperienceLevel: seniority.Mid,
			Source:          SourceSample,
			URL:             "sample://full-stack-developer-startup-inc",
			PostedAt:        now,
		},
		{
			Title:           "Engineering Manager",
			Company:         "FinEdge",
			Description:     "Lead two product teams, own delivery and grow engineers.",
			RequiredSkills:  []string{"Leadership", "Agile", "Project Management", "Java", "AWS"},
			Location:        "Hyderabad",
			ExperienceLevel: seniority.Executive,
			Source:          SourceSample,
			URL:             "sample://engineering-manager-finedge",
			PostedAt:        now,
		},
	}
}
