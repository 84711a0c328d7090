package seeder

import (
	"context"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/job"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

// JobPostingsSeeder upserts the sample posting catalogue.
type JobPostingsSeeder struct {
	Now func() time.Time
}

func (JobPostingsSeeder) Name() string { return "job_postings" }

func (s JobPostingsSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if err := EnsureTableColumns(ctx, db, "job_postings",
		"id", "title", "company", "description", "required_skills",
		"location", "experience_level", "source", "url", "posted_at",
	); err != nil {
		return 0, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	n := 0
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		repo := repository.NewPostgresJobPostingRepository(tx)
		for _, p := range job.Samples(now().UTC()) {
			p.ID = uuid.New()
			if _, err := repo.Upsert(ctx, p); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
