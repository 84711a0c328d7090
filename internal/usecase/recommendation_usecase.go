package usecase

import (
	"context"
	"errors"

	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
	"resume-match/internal/logger"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRecommendationLimit = 20

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID, resumeID uuid.UUID, limit int) ([]matching.RankedJob, error)
}

type Recommendations struct {
	resumes repository.ResumeRepository
	jobs    repository.JobPostingRepository
	engine  *matching.Engine
	cache   ResultCache
	log     *zap.Logger
}

func NewRecommendationUsecase(resumes repository.ResumeRepository, jobs repository.JobPostingRepository, engine *matching.Engine, cache ResultCache, log *zap.Logger) *Recommendations {
	if engine == nil {
		engine = matching.NewEngine(nil)
	}
	return &Recommendations{resumes: resumes, jobs: jobs, engine: engine, cache: cache, log: logger.OrNop(log)}
}

// Recommend ranks the whole catalogue for the resume and returns the top
// limit postings.
func (u *Recommendations) Recommend(ctx context.Context, userID, resumeID uuid.UUID, limit int) ([]matching.RankedJob, error) {
	if limit == 0 {
		limit = defaultRecommendationLimit
	}
	if limit < 0 || limit > maxListLimit {
		return nil, ErrInvalidInput
	}

	r, err := ownedResume(ctx, u.resumes, userID, resumeID)
	if errors.Is(err, ErrInternal) {
		u.log.Error("resume get failed", zap.String(logger.FieldResumeID, resumeID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if err != nil {
		return nil, err
	}

	cacheKey := ""
	if u.cache != nil {
		if v, err := u.jobs.Version(ctx); err == nil {
			cacheKey = RecommendationsCacheKey(resumeID, v.String(), limit)
			var cached []matching.RankedJob
			if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
				u.log.Debug("recommendations cache hit", zap.String("key", cacheKey))
				return cached, nil
			}
		} else {
			u.log.Warn("catalogue version failed, skipping cache", zap.Error(err))
		}
	}

	ranked, err := u.rank(ctx, r, limit)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := u.cache.SetJSON(ctx, cacheKey, ranked, 0); err != nil {
			u.log.Warn("recommendations cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return ranked, nil
}

func (u *Recommendations) rank(ctx context.Context, r resume.Resume, limit int) ([]matching.RankedJob, error) {
	jobs, err := u.jobs.ListAll(ctx)
	if err != nil {
		u.log.Error("job catalogue load failed", zap.Error(err))
		return nil, ErrInternal
	}
	ranked := u.engine.RankJobsForResume(r, jobs)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
