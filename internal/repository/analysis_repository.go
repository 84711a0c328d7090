package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
)

type AnalysisRepository interface {
	Create(ctx context.Context, a analysis.Result) error
	ListByResume(ctx context.Context, resumeID uuid.UUID) ([]analysis.WithJob, error)
}

type PostgresAnalysisRepository struct {
	db database.Querier
}

func NewPostgresAnalysisRepository(db database.Querier) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

func (r *PostgresAnalysisRepository) Create(ctx context.Context, a analysis.Result) error {
	level, err := json.Marshal(a.LevelMatch)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO analyses (id, resume_id, job_id, user_id, match_score, matching_skills, missing_skills, suggestions, strengths, weaknesses, level_match, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		a.ID, a.ResumeID, a.JobID, a.UserID, a.MatchScore,
		nonNil(a.MatchingSkills), nonNil(a.MissingSkills), nonNil(a.Suggestions),
		nonNil(a.Strengths), nonNil(a.Weaknesses), level, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *PostgresAnalysisRepository) ListByResume(ctx context.Context, resumeID uuid.UUID) ([]analysis.WithJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.resume_id, a.job_id, a.user_id, a.match_score, a.matching_skills, a.missing_skills,
		        a.suggestions, a.strengths, a.weaknesses, a.level_match, a.created_at,
		        j.id, j.title, j.company, j.description, j.required_skills, j.location, j.experience_level, j.source, j.url, j.posted_at
		 FROM analyses a
		 LEFT JOIN job_postings j ON j.id = a.job_id
		 WHERE a.resume_id = $1
		 ORDER BY a.created_at DESC, a.id DESC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.WithJob, 0)
	for rows.Next() {
		var (
			a        analysis.WithJob
			levelRaw []byte

			jobID                                         *uuid.UUID
			title, company, desc, loc, level, src, jobURL *string
			skills                                        []string
			postedAt                                      *time.Time
		)
		if err := rows.Scan(
			&a.ID, &a.ResumeID, &a.JobID, &a.UserID, &a.MatchScore, &a.MatchingSkills, &a.MissingSkills,
			&a.Suggestions, &a.Strengths, &a.Weaknesses, &levelRaw, &a.CreatedAt,
			&jobID, &title, &company, &desc, &skills, &loc, &level, &src, &jobURL, &postedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(levelRaw, &a.LevelMatch); err != nil {
			return nil, fmt.Errorf("analysis %s level_match: %w", a.ID, err)
		}
		if jobID != nil {
			a.Job = &job.Posting{
				ID:              *jobID,
				Title:           deref(title),
				Company:         deref(company),
				Description:     deref(desc),
				RequiredSkills:  nonNil(skills),
				Location:        deref(loc),
				ExperienceLevel: seniority.Level(deref(level)),
				Source:          deref(src),
				URL:             deref(jobURL),
			}
			if postedAt != nil {
				a.Job.PostedAt = *postedAt
			}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
