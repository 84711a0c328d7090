package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"resume-match/internal/domain/resume"
)

// Ordered; the first pattern that matches wins.
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bachelor.*?(?:computer science|engineering|technology)`),
	regexp.MustCompile(`(?i)master.*?(?:computer science|engineering|technology)`),
	regexp.MustCompile(`(?i)\bb\.?\s?tech\b`),
	regexp.MustCompile(`(?i)\bm\.?\s?tech\b`),
	regexp.MustCompile(`(?i)\bbca\b`),
	regexp.MustCompile(`(?i)\bmca\b`),
	regexp.MustCompile(`(?i)\bph\.?\s?d\b`),
}

var (
	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|iit|nit)\b`)
	gradYearRe    = regexp.MustCompile(`\b20\d{2}\b`)
	gpaRe         = regexp.MustCompile(`(?i)\bc?gpa\b\s*[:\-]?\s*(\d{1,2}(?:\.\d{1,2})?)`)
)

const (
	minGraduationYear = 2000
	maxGraduationYear = 2030
)

func ExtractEducation(text string) resume.Education {
	var edu resume.Education

	for _, re := range degreePatterns {
		if m := re.FindString(text); m != "" {
			edu.Degree = strings.TrimSpace(m)
			break
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if institutionRe.MatchString(line) {
			edu.Institution = strings.TrimSpace(line)
			break
		}
	}

	for _, tok := range gradYearRe.FindAllString(text, -1) {
		y, err := strconv.Atoi(tok)
		if err != nil || y < minGraduationYear || y > maxGraduationYear {
			continue
		}
		if y > edu.GraduationYear {
			edu.GraduationYear = y
		}
	}

	if m := gpaRe.FindStringSubmatch(text); len(m) == 2 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 && v <= 10 {
			edu.GPA = v
		}
	}

	return edu
}
