package search

// Synonyms maps a normalized search phrase to the phrases it should also
// match. Keys with spaces also match their compact form ("frontend" and
// "front end").
var Synonyms = map[string][]string{
	"golang":           {"go"},
	"js":               {"javascript"},
	"ts":               {"typescript"},
	"k8s":              {"kubernetes"},
	"postgres":         {"postgresql"},
	"ml":               {"machine learning"},
	"ai":               {"artificial intelligence", "machine learning"},
	"front end":        {"frontend", "ui developer", "react"},
	"back end":         {"backend", "server side", "api"},
	"full stack":       {"fullstack", "frontend", "backend"},
	"devops":           {"site reliability", "sre", "platform engineer"},
	"data scientist":   {"data science", "machine learning"},
	"mobile developer": {"android", "ios", "flutter"},
}

func GetSynonyms(phrase string) []string {
	if phrase == "" {
		return []string{}
	}
	if v, ok := Synonyms[phrase]; ok {
		out := make([]string, 0, len(v))
		return append(out, v...)
	}
	return []string{}
}
