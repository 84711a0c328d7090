package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxPositions = 5
	maxSkills    = 15
)

// Searched in page text when the page has no skills section.
var commonSkills = []string{
	"JavaScript", "Python", "Java", "React", "Node.js", "SQL", "HTML", "CSS",
	"Machine Learning", "Data Analysis", "Project Management", "Communication",
	"Leadership", "Teamwork", "Problem Solving", "Git", "Docker", "AWS",
	"MongoDB", "PostgreSQL", "Express", "Angular", "Vue", "TypeScript",
	"C++", "C#", "PHP", "Ruby", "Go", "Rust", "Kotlin", "Swift",
}

var titleSuffixRe = regexp.MustCompile(`(?i)\s*[-|]\s*linkedin\s*$`)

// ParseHTML extracts what it can from a rendered profile page. Missing
// sections are left empty; only malformed input is an error.
func ParseHTML(html string) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Profile{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	p := Profile{
		Name:       parseName(doc),
		Headline:   firstText(doc, "h2.pv-top-card__summary-title", "div.text-body-medium"),
		Location:   firstText(doc, "span.pv-top-card__location", "span.text-body-small"),
		Experience: parsePositions(doc),
		Education:  parseSchools(doc),
		Skills:     parseSkills(doc),
	}
	return p, nil
}

func parseName(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); titleSuffixRe.MatchString(t) {
		if name := strings.TrimSpace(titleSuffixRe.ReplaceAllString(t, "")); name != "" {
			return name
		}
	}
	if name := firstText(doc, "h1.pv-top-card__name", "span.text-heading-xlarge"); name != "" {
		return name
	}
	return "Unknown Name"
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if t := cleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func parsePositions(doc *goquery.Document) []Position {
	out := make([]Position, 0, maxPositions)
	doc.Find("section#experience-section .pv-position-entity").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := cleanText(s.Find("h3").First().Text())
		company := cleanText(s.Find("p.pv-entity__secondary-title").First().Text())
		if title == "" || company == "" {
			return true
		}
		out = append(out, Position{
			Title:       title,
			Company:     company,
			Duration:    cleanText(s.Find("span.pv-entity__bullet-item-v2").First().Text()),
			Description: cleanText(s.Find(".pv-entity__description").First().Text()),
		})
		return len(out) < maxPositions
	})
	return out
}

func parseSchools(doc *goquery.Document) []School {
	out := make([]School, 0)
	doc.Find("section#education-section .pv-education-entity").Each(func(_ int, s *goquery.Selection) {
		degree := cleanText(s.Find("h3").First().Text())
		institution := cleanText(s.Find("p.pv-entity__secondary-title").First().Text())
		if degree == "" || institution == "" {
			return
		}
		out = append(out, School{
			Degree:         degree,
			Institution:    institution,
			GraduationYear: cleanText(s.Find("span.pv-entity__dates").First().Text()),
		})
	})
	return out
}

func parseSkills(doc *goquery.Document) []string {
	out := make([]string, 0, maxSkills)
	doc.Find("section#skills-section span.pv-skill-category-entity__name-text").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := cleanText(s.Text()); t != "" {
			out = append(out, t)
		}
		return len(out) < maxSkills
	})
	if len(out) > 0 {
		return out
	}

	text := strings.ToLower(doc.Text())
	for _, skill := range commonSkills {
		if mentions(text, strings.ToLower(skill)) {
			out = append(out, skill)
		}
	}
	return out
}

func mentions(text, term string) bool {
	re := regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(term) + `([^a-z0-9+#]|$)`)
	return re.MatchString(text)
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
