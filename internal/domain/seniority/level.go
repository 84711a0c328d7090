package seniority

import "strings"

// Level is an ordinal proxy for career stage.
type Level string

const (
	Entry     Level = "entry"
	Mid       Level = "mid"
	Senior    Level = "senior"
	Executive Level = "executive"
)

func Levels() []Level {
	return []Level{Entry, Mid, Senior, Executive}
}

// Parse normalizes s and reports whether it names a known level.
func Parse(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", false
	}
	return l, true
}

func (l Level) Valid() bool {
	switch l {
	case Entry, Mid, Senior, Executive:
		return true
	default:
		return false
	}
}

// Ordinal maps entry..executive to 1..4. Unknown and empty levels rank as entry.
func (l Level) Ordinal() int {
	switch Level(strings.ToLower(strings.TrimSpace(string(l)))) {
	case Mid:
		return 2
	case Senior:
		return 3
	case Executive:
		return 4
	default:
		return 1
	}
}

// OrDefault returns the normalized level, or Entry when l is unknown.
func (l Level) OrDefault() Level {
	if v, ok := Parse(string(l)); ok {
		return v
	}
	return Entry
}

// FromYears derives the level implied by years of experience alone.
func FromYears(years float64) Level {
	switch {
	case years >= 7:
		return Senior
	case years >= 3:
		return Mid
	default:
		return Entry
	}
}
