package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"
)

// Checked in this order; the first group with a hit decides the level.
var levelKeywords = []struct {
	level seniority.Level
	re    *regexp.Regexp
}{
	{seniority.Senior, regexp.MustCompile(`(?i)\b(?:senior|lead|principal|staff)\b`)},
	{seniority.Entry, regexp.MustCompile(`(?i)\b(?:junior|entry|fresher|intern|internship)\b`)},
	{seniority.Mid, regexp.MustCompile(`(?i)\b(?:mid|intermediate|associate)\b`)},
	{seniority.Executive, regexp.MustCompile(`(?i)\b(?:executive|director|manager|head)\b`)},
}

var (
	explicitYearsRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:years?|yrs?)`)
	statedExperienceRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:professional\s+|work\s+|industry\s+)?experience`)
	fourDigitYearRe     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	ongoingDurationHint = []string{"present", "current"}
)

const defaultEntryYears = 1.5

// InferJobLevel picks a level from keywords in text, falling back to the
// number and titles of experience entries.
func InferJobLevel(text string, entries []resume.Experience) seniority.Level {
	for _, k := range levelKeywords {
		if k.re.MatchString(text) {
			return k.level
		}
	}

	switch n := len(entries); {
	case n == 0:
		return seniority.Entry
	case n <= 2:
		for _, e := range entries {
			t := strings.ToLower(e.Title)
			if strings.Contains(t, "senior") || strings.Contains(t, "lead") {
				return seniority.Senior
			}
		}
		return seniority.Mid
	default:
		return seniority.Senior
	}
}

// EstimateYearsOfExperience sums a per-entry estimate and rounds to one decimal.
func EstimateYearsOfExperience(entries []resume.Experience) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range entries {
		total += estimateEntryYears(e.Duration)
	}
	return roundTenth(total)
}

func estimateEntryYears(duration string) float64 {
	d := strings.ToLower(duration)

	if m := explicitYearsRe.FindStringSubmatch(d); len(m) == 2 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}

	for _, hint := range ongoingDurationHint {
		if strings.Contains(d, hint) {
			return 1
		}
	}

	years := fourDigitYearRe.FindAllString(d, -1)
	if len(years) >= 2 {
		start, err1 := strconv.Atoi(years[0])
		end, err2 := strconv.Atoi(years[1])
		if err1 == nil && err2 == nil {
			return math.Max(1, float64(end-start))
		}
	}

	return defaultEntryYears
}

// StatedYearsOfExperience returns the largest "N years of experience" claim in text.
func StatedYearsOfExperience(text string) (float64, bool) {
	best := 0.0
	found := false
	for _, m := range statedExperienceRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, found
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
