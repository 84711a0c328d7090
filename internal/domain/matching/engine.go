package matching

import (
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/resume"
)

// Analysis is the full comparison of one resume against one posting.
type Analysis struct {
	MatchScore          int                 `json:"match_score"`
	MatchingSkills      []string            `json:"matching_skills"`
	MissingSkills       []string            `json:"missing_skills"`
	Suggestions         []string            `json:"suggestions"`
	StrengthsWeaknesses StrengthsWeaknesses `json:"strengths_weaknesses"`
	LevelMatch          LevelMatch          `json:"level_match"`
	LocationMatch       LocationMatch       `json:"location_match"`
	SkillMatch          SkillMatch          `json:"skill_match"`
}

type Engine struct {
	advisor *Advisor
}

func NewEngine(advisor *Advisor) *Engine {
	if advisor == nil {
		advisor = NewAdvisor(nil)
	}
	return &Engine{advisor: advisor}
}

// score holds the deterministic part of an analysis.
type score struct {
	skills   SkillMatch
	level    LevelMatch
	location LocationMatch
	total    int
}

func compute(r resume.Resume, j job.Posting) score {
	s := score{
		skills:   MatchSkills(r.Skills, j.RequiredSkills),
		level:    MatchLevel(r.JobLevel, j.ExperienceLevel, r.YearsOfExperience),
		location: MatchLocation(r.ContactInfo.Location, j.Location),
	}
	s.total = AggregateScore(s.skills, s.level, s.location, r.YearsOfExperience)
	return s
}

// MatchResumeToJob scores r against j and attaches advice. The score depends
// only on the two inputs.
func (e *Engine) MatchResumeToJob(r resume.Resume, j job.Posting) Analysis {
	s := compute(r, j)
	return Analysis{
		MatchScore:          s.total,
		MatchingSkills:      s.skills.Matched(),
		MissingSkills:       s.skills.Missing,
		Suggestions:         e.advisor.Suggestions(r, j, s.skills, s.level, s.location),
		StrengthsWeaknesses: e.advisor.StrengthsWeaknesses(r, j, s.skills),
		LevelMatch:          s.level,
		LocationMatch:       s.location,
		SkillMatch:          s.skills,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
