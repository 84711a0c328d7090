package matching

import (
	"strings"

	"resume-match/internal/domain/extraction"
)

type LocationType string

const (
	LocationUnknown   LocationType = "unknown"
	LocationRemote    LocationType = "remote"
	LocationExact     LocationType = "exact"
	LocationRegional  LocationType = "regional"
	LocationDifferent LocationType = "different"
)

type LocationMatch struct {
	IsMatch        bool         `json:"is_match"`
	Type           LocationType `json:"type"`
	Recommendation string       `json:"recommendation"`
}

var remoteMarkers = []string{"remote", "work from home"}

func MatchLocation(resumeLocation, jobLocation string) LocationMatch {
	rl := strings.ToLower(strings.TrimSpace(resumeLocation))
	jl := strings.ToLower(strings.TrimSpace(jobLocation))

	if rl == "" || jl == "" {
		return LocationMatch{IsMatch: true, Type: LocationUnknown, Recommendation: "Location information incomplete"}
	}

	if isRemote(jl) {
		return LocationMatch{IsMatch: true, Type: LocationRemote, Recommendation: "Remote position - location flexible"}
	}

	if strings.Contains(rl, jl) || strings.Contains(jl, rl) {
		return LocationMatch{IsMatch: true, Type: LocationExact, Recommendation: "Perfect location match"}
	}

	_, rMajor := extraction.FindMajorCity(rl)
	_, jMajor := extraction.FindMajorCity(jl)
	if rMajor && jMajor {
		return LocationMatch{IsMatch: true, Type: LocationRegional, Recommendation: "Same region - manageable commute or relocation"}
	}

	return LocationMatch{IsMatch: false, Type: LocationDifferent, Recommendation: "Different location - consider relocation or remote work options"}
}

func isRemote(jobLocation string) bool {
	jl := strings.ToLower(jobLocation)
	for _, m := range remoteMarkers {
		if strings.Contains(jl, m) {
			return true
		}
	}
	return false
}
