package extraction

import (
	"regexp"
	"strings"

	"resume-match/internal/domain/resume"
)

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`[+]?[1-9]?[\d \t\-()]{8,15}`)
	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[a-z0-9_-]+/?`)
	gitHubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[a-z0-9_-]+`)
	urlRe      = regexp.MustCompile(`(?i)https?://[^\s,;]+`)
)

const minPhoneDigits = 7

var digitRunRe = regexp.MustCompile(`\d+`)

func ExtractContact(text string) resume.ContactInfo {
	var info resume.ContactInfo

	info.Email = emailRe.FindString(text)

	for _, cand := range phoneRe.FindAllString(text, -1) {
		cand = strings.TrimSpace(cand)
		if countDigits(cand) >= minPhoneDigits && !isYearSpan(cand) {
			info.Phone = cand
			break
		}
	}

	if city, ok := FindMajorCity(text); ok {
		info.Location = capitalize(city)
	}

	info.LinkedIn = linkedInRe.FindString(text)
	info.GitHub = gitHubRe.FindString(text)
	for _, u := range urlRe.FindAllString(text, -1) {
		lu := strings.ToLower(u)
		if strings.Contains(lu, "linkedin.com") || strings.Contains(lu, "github.com") {
			continue
		}
		info.Website = strings.TrimRight(u, ".)")
		break
	}

	return info
}

// isYearSpan reports whether every digit run in s is a 19xx/20xx year, as in
// "2019 - 2022", which also fits the phone pattern.
func isYearSpan(s string) bool {
	runs := digitRunRe.FindAllString(s, -1)
	if len(runs) == 0 {
		return false
	}
	for _, r := range runs {
		if len(r) != 4 || (r[:2] != "19" && r[:2] != "20") {
			return false
		}
	}
	return true
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
