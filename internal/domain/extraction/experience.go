package extraction

import (
	"regexp"
	"strings"

	"resume-match/internal/domain/resume"
)

const (
	maxExperienceEntries = 3

	unknownCompany       = "Unknown Company"
	noDescriptionDefault = "No description available"
)

// Substring match: "Engineering Manager" and "Internship" are titles too.
var experienceTitleMarkers = []string{"intern", "developer", "engineer"}

var (
	yearRangeRe = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*(?:-|–|—|to)\s*(?:(?:19|20)\d{2}|present|current|now)\b`)
	yearsSpanRe = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:years?|yrs?)\b`)
)

// ExtractExperience scans non-blank lines for job-title keywords. The line
// after a title is taken as the company and the one after that as the
// description. Duration is whatever year range or "N years" phrase those
// three lines carry, or empty.
func ExtractExperience(text string) []resume.Experience {
	lines := nonBlankLines(text)
	out := make([]resume.Experience, 0, maxExperienceEntries)

	for i, line := range lines {
		if len(out) >= maxExperienceEntries {
			break
		}
		if !isExperienceTitle(line) {
			continue
		}

		e := resume.Experience{
			Title:       line,
			Company:     unknownCompany,
			Description: noDescriptionDefault,
		}
		if i+1 < len(lines) {
			e.Company = lines[i+1]
		}
		if i+2 < len(lines) {
			e.Description = lines[i+2]
		}

		window := []string{line}
		if i+1 < len(lines) {
			window = append(window, lines[i+1])
		}
		if i+2 < len(lines) {
			window = append(window, lines[i+2])
		}
		e.Duration = findDuration(window)

		out = append(out, e)
	}

	return out
}

func isExperienceTitle(line string) bool {
	l := strings.ToLower(line)
	for _, m := range experienceTitleMarkers {
		if strings.Contains(l, m) {
			return true
		}
	}
	return false
}

func findDuration(lines []string) string {
	for _, l := range lines {
		if m := yearRangeRe.FindString(l); m != "" {
			return strings.TrimSpace(m)
		}
	}
	for _, l := range lines {
		if m := yearsSpanRe.FindString(l); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
