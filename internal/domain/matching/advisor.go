package matching

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/resume"
)

type StrengthsWeaknesses struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// Advisor turns match results into human-readable advice. Its clock only
// affects recent-experience detection, never the score.
type Advisor struct {
	now func() time.Time
}

func NewAdvisor(now func() time.Time) *Advisor {
	if now == nil {
		now = time.Now
	}
	return &Advisor{now: now}
}

var learningResources = map[string]string{
	"javascript": "JavaScript: work through javascript.info and rebuild a small interactive page without a framework",
	"python":     "Python: follow the official Python tutorial, then automate a task you do every week",
	"react":      "React: complete the react.dev tutorial and ship a small app that consumes a public API",
	"nodejs":     "Node.js: build a REST API with Express and deploy it to a free hosting tier",
}

var (
	frontendJobSkills = []string{"react", "angular", "vue"}
	backendJobSkills  = []string{"python", "java", "nodejs"}
	cloudJobSkills    = []string{"aws", "azure", "docker"}

	frontendResumeSkills = []string{"react", "vue", "angular", "svelte", "html", "css", "javascript", "typescript"}
	backendResumeSkills  = []string{"nodejs", "express", "python", "java", "go", "php", "ruby", "csharp", "postgresql", "mysql", "mongodb"}
	cloudResumeSkills    = []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform"}

	achievementVerbRe = regexp.MustCompile(`(?i)\b(?:increased|improved|reduced|saved|grew|boosted)\b`)
	digitRe           = regexp.MustCompile(`\d`)
	anyYearRe         = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

const topMissingSkills = 3

func (a *Advisor) Suggestions(r resume.Resume, j job.Posting, skills SkillMatch, level LevelMatch, location LocationMatch) []string {
	out := make([]string, 0, 16)

	if len(skills.Missing) > 0 {
		top := skills.Missing
		if len(top) > topMissingSkills {
			top = top[:topMissingSkills]
		}
		out = append(out, "Priority: learn these in-demand skills for this role: "+strings.Join(top, ", "))
		for _, s := range skills.Missing {
			if tip, ok := learningResources[s]; ok {
				out = append(out, tip)
			}
		}
	}

	if !level.IsMatch {
		out = append(out, level.Recommendation)
		switch level.RiskLevel {
		case RiskHigh:
			out = append(out,
				"Consider junior or entry-level openings at the same company to get a foot in the door",
				"A bootcamp or certification in the core stack can close the experience gap faster",
			)
		case RiskMedium:
			out = append(out, "Emphasize transferable skills and the projects closest to this role")
		}
	}

	if location.Type == LocationDifferent {
		out = append(out,
			location.Recommendation,
			"If you are open to relocating, say so explicitly in your cover letter",
		)
	}

	if len(r.Experience) == 0 {
		out = append(out,
			"Add internships, freelance work or personal projects to show practical experience",
			"Contribute to open-source projects to build a public track record",
			"Describe academic projects with the technologies you used",
		)
	} else {
		out = append(out,
			"Quantify achievements in your experience section, for example \"reduced page load time by 30%\"",
			"Start each experience bullet with a strong action verb",
			"Describe the impact of your work, not only your responsibilities",
		)
	}

	if matched := skills.Matched(); len(matched) > 0 {
		top := matched[0]
		out = append(out,
			fmt.Sprintf("Highlight your %s expertise with specific projects, years of use and any certifications", top),
			fmt.Sprintf("Put %s near the top of your skills section", top),
		)
	}

	out = append(out,
		"Keep your resume to one or two pages with clear section headings",
		"Open with a short professional summary tailored to this role",
		"Mirror keywords from the job description so screening systems can find your resume",
	)

	required := normalizeSkills(j.RequiredSkills)
	if containsAny(required, frontendJobSkills) {
		out = append(out,
			"Link a portfolio with live frontend projects",
			"Mention responsive design and accessibility work",
		)
	}
	if containsAny(required, backendJobSkills) {
		out = append(out,
			"Describe APIs and services you designed or maintained",
			"Mention database design and performance tuning experience",
		)
	}

	return out
}

// StrengthsWeaknesses reviews r against j. Frontend, backend and cloud
// strengths only count when j asks for that kind of work.
func (a *Advisor) StrengthsWeaknesses(r resume.Resume, j job.Posting, skills SkillMatch) StrengthsWeaknesses {
	sw := StrengthsWeaknesses{
		Strengths:  make([]string, 0, 8),
		Weaknesses: make([]string, 0, 4),
	}
	add := func(ok bool, strength, weakness string) {
		if ok {
			sw.Strengths = append(sw.Strengths, strength)
		} else if weakness != "" {
			sw.Weaknesses = append(sw.Weaknesses, weakness)
		}
	}

	if total := skills.TotalRequired; total > 0 {
		essential := float64(skills.EssentialCount)
		switch {
		case essential >= 0.7*float64(total):
			add(true, fmt.Sprintf("Excellent skill match: %d of %d required skills", skills.EssentialCount, total), "")
		case essential >= 0.5*float64(total):
			add(true, fmt.Sprintf("Good skill foundation: %d of %d required skills", skills.EssentialCount, total), "")
		default:
			add(false, "", fmt.Sprintf("Skill gap: only %d of %d required skills found", skills.EssentialCount, total))
		}
	}

	switch n := len(skills.Matched()); {
	case n >= 8:
		add(true, fmt.Sprintf("Diverse technical skill set (%d matching skills)", n), "")
	case n >= 5:
		add(true, fmt.Sprintf("Solid technical foundation (%d matching skills)", n), "")
	default:
		add(false, "", fmt.Sprintf("Limited overlap with the required skills (%d matching)", n))
	}

	if len(r.Experience) > 0 {
		if a.hasRecentExperience(r.Experience) {
			add(true, "Recent, relevant work experience", "")
		} else {
			add(true, fmt.Sprintf("Relevant work experience (%d roles)", len(r.Experience)), "")
		}
	} else {
		add(false, "", "No work experience listed")
	}

	if r.Education.Degree != "" {
		add(true, "Formal education: "+r.Education.Degree, "")
		if r.Education.GPA >= 3.5 {
			add(true, "Strong academic record (GPA "+strconv.FormatFloat(r.Education.GPA, 'f', -1, 64)+")", "")
		}
	} else {
		add(false, "", "Educational details could be more specific")
	}

	c := r.ContactInfo
	add(c.Email != "" && c.Phone != "", "Complete contact information", "Incomplete contact information: add both email and phone")
	add(c.LinkedIn != "" || c.GitHub != "" || c.Website != "", "Professional online presence", "No LinkedIn, GitHub or portfolio link")

	add(r.JobLevel != "", fmt.Sprintf("Clear career positioning: %s level", r.JobLevel), "Career level not clearly defined: add a summary statement")

	years := strconv.FormatFloat(r.YearsOfExperience, 'f', -1, 64)
	switch {
	case r.YearsOfExperience >= 5:
		add(true, years+" years of valuable experience", "")
	case r.YearsOfExperience > 0:
		add(true, years+" years of experience", "")
	}

	have := normalizeSkills(r.Skills)
	want := normalizeSkills(j.RequiredSkills)
	frontendJob := containsAny(want, frontendJobSkills)
	frontend := frontendJob && containsAny(have, frontendResumeSkills)
	backend := containsAny(want, backendJobSkills) && containsAny(have, backendResumeSkills)
	switch {
	case frontend && backend:
		add(true, "Full-stack capability across frontend and backend", "")
	case frontend:
		add(true, "Frontend development expertise", "")
	case backend:
		add(true, "Backend development expertise", "")
	}
	if containsAny(want, cloudJobSkills) && containsAny(have, cloudResumeSkills) {
		add(true, "Cloud and DevOps experience", "")
	}
	if frontendJob && containsSubstring(have, "mobile", "react native", "flutter") {
		add(true, "Mobile development experience", "")
	}
	if frontendJob && containsSubstring(have, "responsive", "ui", "ux") {
		add(true, "User-interface and design awareness", "")
	}

	add(hasQuantifiedAchievements(r.Experience), "Quantified achievements in experience descriptions", "Experience lacks measurable results")

	return sw
}

func (a *Advisor) hasRecentExperience(entries []resume.Experience) bool {
	threshold := a.now().Year() - 2
	for _, e := range entries {
		d := strings.ToLower(e.Duration)
		if strings.Contains(d, "present") || strings.Contains(d, "current") {
			return true
		}
		for _, tok := range anyYearRe.FindAllString(d, -1) {
			if y, err := strconv.Atoi(tok); err == nil && y >= threshold {
				return true
			}
		}
	}
	return false
}

func hasQuantifiedAchievements(entries []resume.Experience) bool {
	for _, e := range entries {
		text := e.Title + " " + e.Description
		if digitRe.MatchString(text) && achievementVerbRe.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAny(have []string, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func containsSubstring(have []string, parts ...string) bool {
	for _, h := range have {
		for _, p := range parts {
			// two-letter markers such as "ui" only count as exact skills
			if h == p || (len(p) > 2 && strings.Contains(h, p)) {
				return true
			}
		}
	}
	return false
}
