package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-match/internal/domain/extraction"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/seniority"
	"resume-match/internal/infrastructure/events"
	"resume-match/internal/logger"
	"resume-match/internal/repository"
	"resume-match/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 20
	defaultRecentLimit = 10
	maxListLimit       = 50
)

type AddJobInput struct {
	Title           string
	Company         string
	Description     string
	RequiredSkills  []string
	Location        string
	ExperienceLevel string
	Source          string
	URL             string
}

type JobSearchInput struct {
	Query           string
	Location        string
	ExperienceLevel string
	Limit           int
}

type JobUsecase interface {
	Add(ctx context.Context, in AddJobInput) (job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Search(ctx context.Context, in JobSearchInput) ([]job.Posting, error)
	Recent(ctx context.Context, limit int) ([]job.Posting, error)
	SeedSamples(ctx context.Context) (int, error)
	Ingest(ctx context.Context, source string, postings []job.Posting) (int, error)
}

type Jobs struct {
	repo   repository.JobPostingRepository
	events events.Publisher
	cache  ResultCache
	log    *zap.Logger
	now    func() time.Time
}

func NewJobUsecase(repo repository.JobPostingRepository, pub events.Publisher, cache ResultCache, log *zap.Logger) *Jobs {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Jobs{repo: repo, events: pub, cache: cache, log: logger.OrNop(log), now: time.Now}
}

func (u *Jobs) Add(ctx context.Context, in AddJobInput) (job.Posting, error) {
	p := job.Posting{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Source:      strings.TrimSpace(in.Source),
		URL:         strings.TrimSpace(in.URL),
		PostedAt:    u.now().UTC(),
	}
	if p.Title == "" || p.Company == "" || p.Location == "" {
		return job.Posting{}, ErrInvalidInput
	}
	lvl, ok := seniority.Parse(in.ExperienceLevel)
	if !ok {
		return job.Posting{}, ErrInvalidInput
	}
	p.ExperienceLevel = lvl
	if p.Source == "" {
		p.Source = job.SourceManual
	}

	p.RequiredSkills = cleanSkills(in.RequiredSkills)
	if len(p.RequiredSkills) == 0 {
		p.RequiredSkills = extraction.ExtractSkills(p.Title + "\n" + p.Description)
	}

	var err error
	if p.URL != "" {
		p.ID, err = u.repo.Upsert(ctx, p)
	} else {
		err = u.repo.Create(ctx, p)
	}
	if err != nil {
		u.log.Error("job insert failed", zap.String("title", p.Title), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.catalogueChanged(ctx, p.Source, 1)
	u.log.Info("job added", zap.String(logger.FieldJobID, p.ID.String()), zap.String("source", p.Source))
	return p, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	if id == uuid.Nil {
		return job.Posting{}, ErrJobNotFound
	}
	p, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return job.Posting{}, ErrJobNotFound
	}
	if err != nil {
		u.log.Error("job get failed", zap.String(logger.FieldJobID, id.String()), zap.Error(err))
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

func (u *Jobs) Search(ctx context.Context, in JobSearchInput) ([]job.Posting, error) {
	limit := in.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 0 || limit > maxListLimit {
		return nil, ErrInvalidInput
	}

	q := search.ProcessQuery(in.Query)
	params := repository.JobSearchParams{
		Query:    q.Normalized,
		Terms:    q.Variants,
		Location: strings.TrimSpace(in.Location),
		Limit:    limit,
	}
	if strings.TrimSpace(in.ExperienceLevel) != "" {
		lvl, ok := seniority.Parse(in.ExperienceLevel)
		if !ok {
			return nil, ErrInvalidInput
		}
		params.ExperienceLevel = lvl
	}

	out, err := u.repo.Search(ctx, params)
	if err != nil {
		u.log.Error("job search failed", zap.String("query", params.Query), zap.Error(err))
		return nil, ErrInternal
	}
	return search.Rank(out, q.Variants, u.now()), nil
}

func (u *Jobs) Recent(ctx context.Context, limit int) ([]job.Posting, error) {
	if limit == 0 {
		limit = defaultRecentLimit
	}
	if limit < 0 || limit > maxListLimit {
		return nil, ErrInvalidInput
	}
	out, err := u.repo.Recent(ctx, limit)
	if err != nil {
		u.log.Error("recent jobs failed", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// SeedSamples upserts the demo catalogue. Running it twice leaves one copy.
func (u *Jobs) SeedSamples(ctx context.Context) (int, error) {
	n := 0
	for _, p := range job.Samples(u.now().UTC()) {
		p.ID = uuid.New()
		if _, err := u.repo.Upsert(ctx, p); err != nil {
			u.log.Error("sample job upsert failed", zap.String("url", p.URL), zap.Error(err))
			return n, ErrInternal
		}
		n++
	}
	u.catalogueChanged(ctx, job.SourceSample, n)
	return n, nil
}

// Ingest upserts postings collected from an external source. Postings without
// a URL are skipped. Individual failures are logged and skipped; the error is
// only returned when nothing could be stored.
func (u *Jobs) Ingest(ctx context.Context, source string, postings []job.Posting) (int, error) {
	n, failed := 0, 0
	for _, p := range postings {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		p.URL = strings.TrimSpace(p.URL)
		p.Title = strings.TrimSpace(p.Title)
		if p.URL == "" || p.Title == "" {
			continue
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.PostedAt.IsZero() {
			p.PostedAt = u.now().UTC()
		}
		p.Source = source
		p.ExperienceLevel = p.ExperienceLevel.OrDefault()
		p.RequiredSkills = cleanSkills(p.RequiredSkills)

		if _, err := u.repo.Upsert(ctx, p); err != nil {
			failed++
			u.log.Warn("ingest upsert failed", zap.String("source", source), zap.String("url", p.URL), zap.Error(err))
			continue
		}
		n++
	}
	if n > 0 {
		u.catalogueChanged(ctx, source, n)
	}
	if n == 0 && failed > 0 {
		return 0, ErrInternal
	}
	return n, nil
}

// catalogueChanged drops cached rankings and tells listeners. Failures are
// logged only; the write has already succeeded.
func (u *Jobs) catalogueChanged(ctx context.Context, source string, count int) {
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, RecommendationsCachePattern(uuid.Nil)); err != nil {
			u.log.Warn("recommendation cache invalidation failed", zap.Error(err))
		}
	}
	evt := events.New(events.TypeJobsUpdated, events.JobsUpdated{Source: source, Count: count}, u.now())
	if err := u.events.Publish(ctx, evt); err != nil {
		u.log.Warn("jobs_updated publish failed", zap.Error(err))
	}
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
