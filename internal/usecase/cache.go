package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const recommendationsPrefix = "recs:"

// RecommendationsCacheKey changes with the catalogue version, so adding or
// re-scraping postings never serves a stale ranking.
func RecommendationsCacheKey(resumeID uuid.UUID, catalogueVersion string, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d", recommendationsPrefix, resumeID, catalogueVersion, limit)
}

func RecommendationsCachePattern(resumeID uuid.UUID) string {
	if resumeID == uuid.Nil {
		return recommendationsPrefix + "*"
	}
	return recommendationsPrefix + resumeID.String() + ":*"
}
