package matching

import "resume-match/internal/domain/seniority"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	recommendAligned        = "Your experience level aligns well with this position's requirements."
	recommendUnderqualified = "This position requires more experience than you currently have. Consider gaining additional experience or skills."
	recommendOverqualified  = "You may be overqualified for this position. Consider if this role aligns with your career goals."
	recommendBorderline     = "Your profile shows potential for this role with some additional preparation."
)

type LevelMatch struct {
	ResumeLevel    seniority.Level `json:"resume_level"`
	JobLevel       seniority.Level `json:"job_level"`
	IsMatch        bool            `json:"is_match"`
	Recommendation string          `json:"recommendation"`
	RiskLevel      RiskLevel       `json:"risk_level"`
	ExperienceGap  int             `json:"experience_gap"`
}

// MatchLevel compares the stated resume level and the level implied by years
// of experience against the job level. Both must be within one step.
func MatchLevel(resumeLevel, jobLevel seniority.Level, yearsOfExperience float64) LevelMatch {
	rl := resumeLevel.OrDefault()
	jl := jobLevel.OrDefault()

	r := rl.Ordinal()
	j := jl.Ordinal()
	e := seniority.FromYears(yearsOfExperience).Ordinal()

	out := LevelMatch{
		ResumeLevel:   rl,
		JobLevel:      jl,
		IsMatch:       absInt(r-j) <= 1 && absInt(e-j) <= 1,
		ExperienceGap: absInt(e - j),
	}

	switch {
	case out.IsMatch:
		out.Recommendation, out.RiskLevel = recommendAligned, RiskLow
	case r < j && e < j:
		out.Recommendation, out.RiskLevel = recommendUnderqualified, RiskHigh
	case r > j && e > j:
		out.Recommendation, out.RiskLevel = recommendOverqualified, RiskMedium
	default:
		out.Recommendation, out.RiskLevel = recommendBorderline, RiskMedium
	}

	return out
}
