package analysis

import (
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"

	"github.com/google/uuid"
)

// Result is a persisted resume-versus-posting analysis. Results are never
// updated; analysing the same pair again stores a new one.
type Result struct {
	ID             uuid.UUID           `json:"id"`
	ResumeID       uuid.UUID           `json:"resume_id"`
	JobID          uuid.UUID           `json:"job_id"`
	UserID         uuid.UUID           `json:"user_id"`
	MatchScore     int                 `json:"match_score"`
	MatchingSkills []string            `json:"matching_skills"`
	MissingSkills  []string            `json:"missing_skills"`
	Suggestions    []string            `json:"suggestions"`
	Strengths      []string            `json:"strengths"`
	Weaknesses     []string            `json:"weaknesses"`
	LevelMatch     matching.LevelMatch `json:"level_match"`
	CreatedAt      time.Time           `json:"created_at"`
}

// WithJob pairs a result with the posting it was computed against.
type WithJob struct {
	Result
	Job *job.Posting `json:"job,omitempty"`
}

func FromAnalysis(a matching.Analysis) Result {
	return Result{
		MatchScore:     a.MatchScore,
		MatchingSkills: a.MatchingSkills,
		MissingSkills:  a.MissingSkills,
		Suggestions:    a.Suggestions,
		Strengths:      a.StrengthsWeaknesses.Strengths,
		Weaknesses:     a.StrengthsWeaknesses.Weaknesses,
		LevelMatch:     a.LevelMatch,
	}
}
