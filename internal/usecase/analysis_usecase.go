package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
	"resume-match/internal/infrastructure/events"
	"resume-match/internal/logger"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MaxBatchJobs     = 20
	batchConcurrency = 4
)

type AnalysisUsecase interface {
	Analyze(ctx context.Context, userID, resumeID, jobID uuid.UUID) (analysis.WithJob, error)
	AnalyzeBatch(ctx context.Context, userID, resumeID uuid.UUID, jobIDs []uuid.UUID) ([]analysis.WithJob, error)
	ListForResume(ctx context.Context, userID, resumeID uuid.UUID) ([]analysis.WithJob, error)
}

type Analyses struct {
	resumes  repository.ResumeRepository
	jobs     repository.JobPostingRepository
	analyses repository.AnalysisRepository
	engine   *matching.Engine
	events   events.Publisher
	log      *zap.Logger
	now      func() time.Time
}

func NewAnalysisUsecase(
	resumes repository.ResumeRepository,
	jobs repository.JobPostingRepository,
	analyses repository.AnalysisRepository,
	engine *matching.Engine,
	pub events.Publisher,
	log *zap.Logger,
) *Analyses {
	if engine == nil {
		engine = matching.NewEngine(nil)
	}
	if pub == nil {
		pub = events.Noop{}
	}
	return &Analyses{
		resumes:  resumes,
		jobs:     jobs,
		analyses: analyses,
		engine:   engine,
		events:   pub,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

func (u *Analyses) Analyze(ctx context.Context, userID, resumeID, jobID uuid.UUID) (analysis.WithJob, error) {
	out, err := u.AnalyzeBatch(ctx, userID, resumeID, []uuid.UUID{jobID})
	if err != nil {
		return analysis.WithJob{}, err
	}
	return out[0], nil
}

// AnalyzeBatch compares one resume with several postings. Postings are loaded
// and scored concurrently; results are stored and returned in input order.
// Nothing is stored unless every posting exists.
func (u *Analyses) AnalyzeBatch(ctx context.Context, userID, resumeID uuid.UUID, jobIDs []uuid.UUID) ([]analysis.WithJob, error) {
	if len(jobIDs) == 0 || len(jobIDs) > MaxBatchJobs {
		return nil, ErrInvalidInput
	}
	r, err := u.ownedResume(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}

	results := make([]analysis.WithJob, len(jobIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, jobID := range jobIDs {
		g.Go(func() error {
			p, err := u.loadJob(gctx, jobID)
			if err != nil {
				return err
			}
			results[i] = u.evaluate(r, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range results {
		if err := u.analyses.Create(ctx, results[i].Result); err != nil {
			u.log.Error("analysis insert failed",
				zap.String(logger.FieldResumeID, resumeID.String()),
				zap.String(logger.FieldJobID, results[i].JobID.String()),
				zap.Error(err),
			)
			return nil, ErrInternal
		}
		u.publish(ctx, results[i].Result)
	}
	return results, nil
}

func (u *Analyses) ListForResume(ctx context.Context, userID, resumeID uuid.UUID) ([]analysis.WithJob, error) {
	if _, err := u.ownedResume(ctx, userID, resumeID); err != nil {
		return nil, err
	}
	out, err := u.analyses.ListByResume(ctx, resumeID)
	if err != nil {
		u.log.Error("analysis list failed", zap.String(logger.FieldResumeID, resumeID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Analyses) evaluate(r resume.Resume, p job.Posting) analysis.WithJob {
	res := analysis.FromAnalysis(u.engine.MatchResumeToJob(r, p))
	res.ID = uuid.New()
	res.ResumeID = r.ID
	res.JobID = p.ID
	res.UserID = r.UserID
	res.CreatedAt = u.now().UTC()
	return analysis.WithJob{Result: res, Job: &p}
}

func (u *Analyses) publish(ctx context.Context, res analysis.Result) {
	evt := events.New(events.TypeAnalysisCompleted, events.AnalysisCompleted{
		AnalysisID: res.ID.String(),
		ResumeID:   res.ResumeID.String(),
		JobID:      res.JobID.String(),
		UserID:     res.UserID.String(),
		MatchScore: res.MatchScore,
	}, u.now())
	if err := u.events.Publish(ctx, evt); err != nil {
		u.log.Warn("analysis_completed publish failed", zap.String("analysis_id", res.ID.String()), zap.Error(err))
	}
}

func (u *Analyses) ownedResume(ctx context.Context, userID, resumeID uuid.UUID) (resume.Resume, error) {
	r, err := ownedResume(ctx, u.resumes, userID, resumeID)
	if errors.Is(err, ErrInternal) {
		u.log.Error("resume get failed", zap.String(logger.FieldResumeID, resumeID.String()), zap.Error(err))
		return resume.Resume{}, ErrInternal
	}
	return r, err
}

func (u *Analyses) loadJob(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	if id == uuid.Nil {
		return job.Posting{}, ErrJobNotFound
	}
	p, err := u.jobs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return job.Posting{}, ErrJobNotFound
	}
	if err != nil {
		u.log.Error("job get failed", zap.String(logger.FieldJobID, id.String()), zap.Error(err))
		return job.Posting{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return p, nil
}
