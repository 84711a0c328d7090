package extraction

import "strings"

var majorCities = []string{"mumbai", "delhi", "bangalore", "hyderabad", "chennai", "pune", "kolkata"}

func MajorCities() []string {
	out := make([]string, len(majorCities))
	copy(out, majorCities)
	return out
}

// FindMajorCity returns the first major city contained in text.
func FindMajorCity(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range majorCities {
		if strings.Contains(lower, c) {
			return c, true
		}
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
