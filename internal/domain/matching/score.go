package matching

import "math"

// Product-tuned weights of the compatibility score. They sum to 1.
const (
	SkillsScoreWeight     = 0.50
	LevelScoreWeight      = 0.25
	LocationScoreWeight   = 0.15
	ExperienceScoreWeight = 0.10
)

const (
	levelGapPenalty        = 25
	unmatchedLocationScore = 50
	experienceBonusPerYear = 5
	maxExperienceBonus     = 100
)

// AggregateScore folds the sub-results into a 0..100 compatibility score.
func AggregateScore(skills SkillMatch, level LevelMatch, location LocationMatch, yearsOfExperience float64) int {
	total := SkillsScoreWeight*float64(skills.Score) +
		LevelScoreWeight*levelScore(level) +
		LocationScoreWeight*locationScore(location) +
		ExperienceScoreWeight*experienceBonus(yearsOfExperience)

	return clampInt(int(math.Round(total)), 0, 100)
}

func levelScore(l LevelMatch) float64 {
	if l.IsMatch {
		return 100
	}
	return math.Max(0, float64(100-levelGapPenalty*l.ExperienceGap))
}

func locationScore(l LocationMatch) float64 {
	if l.IsMatch {
		return 100
	}
	return unmatchedLocationScore
}

func experienceBonus(years float64) float64 {
	if years <= 0 {
		return 0
	}
	return math.Min(years*experienceBonusPerYear, maxExperienceBonus)
}
