package profile

import "context"

// DemoImporter answers every valid URL with the same sample profile.
type DemoImporter struct{}

func NewDemoImporter() *DemoImporter {
	return &DemoImporter{}
}

func (d *DemoImporter) ImportProfile(ctx context.Context, url string) (Profile, error) {
	if _, err := ValidateLinkedInURL(url); err != nil {
		return Profile{}, err
	}
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	return sampleProfile(), nil
}

func sampleProfile() Profile {
	return Profile{
		Name:     "John Doe",
		Headline: "Software Engineer | React | Node.js | AI Enthusiast",
		Location: "San Francisco, CA",
		Experience: []Position{
			{
				Title:       "Software Engineer",
				Company:     "Tech Corp",
				Duration:    "2022 - Present",
				Description: "Developed web applications using React and Node.js",
			},
			{
				Title:       "Junior Developer",
				Company:     "Startup Inc",
				Duration:    "2020 - 2022",
				Description: "Built frontend features and maintained codebase",
			},
		},
		Education: []School{
			{
				Degree:         "Bachelor of Technology in Computer Science",
				Institution:    "University of Technology",
				GraduationYear: "2020",
			},
		},
		Skills: []string{"React", "JavaScript", "Node.js", "Python", "Machine Learning", "SQL", "Git"},
	}
}
