package extraction

import (
	"regexp"
	"strings"
)

type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryWeb         Category = "web"
	CategoryDatabases   Category = "databases"
	CategoryCloud       Category = "cloud"
	CategoryMobile      Category = "mobile"
	CategoryData        Category = "data"
	CategoryDevOps      Category = "devops"
	CategorySoft        Category = "soft"
)

type Term struct {
	Name     string
	Category Category
}

var vocabulary = buildVocabulary(map[Category][]string{
	CategoryProgramming: {"javascript", "typescript", "python", "java", "cpp", "csharp", "go", "rust", "kotlin", "swift", "php", "ruby", "scala", "perl", "r", "matlab"},
	CategoryWeb:         {"react", "vue", "angular", "svelte", "nextjs", "nuxt", "gatsby", "html", "css", "sass", "less", "tailwind", "bootstrap", "nodejs", "express", "koa"},
	CategoryDatabases:   {"mysql", "postgresql", "mongodb", "redis", "cassandra", "dynamodb", "sqlite", "oracle", "elasticsearch", "neo4j", "influxdb"},
	CategoryCloud:       {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins", "github actions", "gitlab ci", "circleci", "travis ci"},
	CategoryMobile:      {"react native", "flutter", "ionic", "cordova", "phonegap", "xamarin"},
	CategoryData:        {"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras", "matplotlib", "seaborn", "plotly", "tableau", "power bi"},
	CategoryDevOps:      {"git", "svn", "mercurial", "nginx", "apache", "linux", "unix", "bash", "powershell", "cmd", "ssh", "ftp", "sftp"},
	CategorySoft:        {"leadership", "communication", "teamwork", "problem solving", "critical thinking", "project management", "agile", "scrum", "kanban", "time management"},
})

var categoryOrder = []Category{
	CategoryProgramming,
	CategoryWeb,
	CategoryDatabases,
	CategoryCloud,
	CategoryMobile,
	CategoryData,
	CategoryDevOps,
	CategorySoft,
}

type compiledTerm struct {
	Term
	re *regexp.Regexp
}

func buildVocabulary(groups map[Category][]string) []compiledTerm {
	out := make([]compiledTerm, 0, 100)
	for _, cat := range categoryOrder {
		for _, name := range groups[cat] {
			out = append(out, compiledTerm{
				Term: Term{Name: name, Category: cat},
				re:   wholeWordPattern(name),
			})
		}
	}
	return out
}

func wholeWordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(strings.ToLower(term)) + `([^a-z0-9]|$)`)
}

// Vocabulary returns a copy of the known skill terms in category order.
func Vocabulary() []Term {
	out := make([]Term, 0, len(vocabulary))
	for _, t := range vocabulary {
		out = append(out, t.Term)
	}
	return out
}

// CategoryOf reports the vocabulary category of skill, if it is a known term.
func CategoryOf(skill string) (Category, bool) {
	s := strings.ToLower(strings.TrimSpace(skill))
	for _, t := range vocabulary {
		if t.Name == s {
			return t.Category, true
		}
	}
	return "", false
}
