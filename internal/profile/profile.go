package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned for anything that is not a public profile URL.
var ErrInvalidURL = errors.New("Invalid LinkedIn URL format")

var linkedInURLRe = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/([a-zA-Z0-9-]+)/?$`)

type Position struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type School struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduation_year"`
}

// Profile is a professional profile as scraped or exported, before it is
// turned into a resume.
type Profile struct {
	Name       string     `json:"name"`
	Headline   string     `json:"headline"`
	Location   string     `json:"location"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Experience []Position `json:"experience"`
	Education  []School   `json:"education"`
	Skills     []string   `json:"skills"`
}

// Importer produces a Profile from a profile URL.
type Importer interface {
	ImportProfile(ctx context.Context, url string) (Profile, error)
}

// ValidateLinkedInURL checks raw and returns the profile slug.
func ValidateLinkedInURL(raw string) (string, error) {
	m := linkedInURLRe.FindStringSubmatch(strings.TrimSpace(raw))
	if len(m) != 3 {
		return "", ErrInvalidURL
	}
	return m[2], nil
}

// Text renders the profile as plain resume text.
func (p Profile) Text() string {
	var b strings.Builder
	for _, line := range []string{p.Name, p.Headline, p.Location, p.Email, p.Phone} {
		if strings.TrimSpace(line) != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	if len(p.Experience) > 0 {
		b.WriteString("\nEXPERIENCE:\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&b, "\n%s\n%s | %s\n", e.Title, e.Company, e.Duration)
			if e.Description != "" {
				b.WriteString(e.Description)
				b.WriteByte('\n')
			}
		}
	}

	if len(p.Education) > 0 {
		b.WriteString("\nEDUCATION:\n")
		for _, s := range p.Education {
			fmt.Fprintf(&b, "\n%s\n%s | %s\n", s.Degree, s.Institution, s.GraduationYear)
		}
	}

	if len(p.Skills) > 0 {
		b.WriteString("\nSKILLS: ")
		b.WriteString(strings.Join(p.Skills, ", "))
	}

	return strings.TrimSpace(b.String())
}
