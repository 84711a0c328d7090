package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobSearchParams filters the catalogue. A posting matches the text part
// when any of Terms matches; Query alone is used when Terms is empty.
type JobSearchParams struct {
	Query           string
	Terms           []string
	Location        string
	ExperienceLevel seniority.Level
	Limit           int
}

// CatalogueVersion changes whenever a posting is added or re-scraped.
type CatalogueVersion struct {
	Count        int
	LastPostedAt time.Time
}

func (v CatalogueVersion) String() string {
	return fmt.Sprintf("%d-%d", v.Count, v.LastPostedAt.UnixNano())
}

type JobPostingRepository interface {
	Create(ctx context.Context, p job.Posting) error
	// Upsert inserts p, or refreshes the posting with the same source and URL.
	// It returns the id of the stored row.
	Upsert(ctx context.Context, p job.Posting) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Search(ctx context.Context, params JobSearchParams) ([]job.Posting, error)
	Recent(ctx context.Context, limit int) ([]job.Posting, error)
	ListAll(ctx context.Context) ([]job.Posting, error)
	Version(ctx context.Context) (CatalogueVersion, error)
}

type PostgresJobPostingRepository struct {
	db database.Querier
}

func NewPostgresJobPostingRepository(db database.Querier) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

const jobColumns = `id, title, company, description, required_skills, location, experience_level, source, url, posted_at`

func (r *PostgresJobPostingRepository) Create(ctx context.Context, p job.Posting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_postings (`+jobColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		jobArgs(p)...,
	)
	if err != nil {
		return fmt.Errorf("insert job posting: %w", err)
	}
	return nil
}

func (r *PostgresJobPostingRepository) Upsert(ctx context.Context, p job.Posting) (uuid.UUID, error) {
	if strings.TrimSpace(p.URL) == "" {
		return uuid.Nil, fmt.Errorf("upsert job posting: empty url")
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_postings (`+jobColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (source, url) WHERE url <> '' DO UPDATE SET
		   title = EXCLUDED.title,
		   company = EXCLUDED.company,
		   description = EXCLUDED.description,
		   required_skills = EXCLUDED.required_skills,
		   location = EXCLUDED.location,
		   experience_level = EXCLUDED.experience_level
		 RETURNING id`,
		jobArgs(p)...,
	)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert job posting: %w", err)
	}
	return id, nil
}

func (r *PostgresJobPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id)
	p, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return job.Posting{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresJobPostingRepository) Search(ctx context.Context, params JobSearchParams) ([]job.Posting, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 4)

	terms := params.Terms
	if len(terms) == 0 && strings.TrimSpace(params.Query) != "" {
		terms = []string{params.Query}
	}
	text := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		args = append(args, "%"+strings.ToLower(t)+"%")
		n := len(args)
		text = append(text, fmt.Sprintf(
			`(lower(title) LIKE $%d OR lower(company) LIKE $%d OR lower(description) LIKE $%d OR EXISTS (SELECT 1 FROM unnest(required_skills) s WHERE lower(s) LIKE $%d))`,
			n, n, n, n,
		))
	}
	if len(text) > 0 {
		where = append(where, "("+strings.Join(text, " OR ")+")")
	}
	if loc := strings.TrimSpace(params.Location); loc != "" {
		args = append(args, "%"+strings.ToLower(loc)+"%")
		where = append(where, fmt.Sprintf(`lower(location) LIKE $%d`, len(args)))
	}
	if params.ExperienceLevel != "" {
		args = append(args, string(params.ExperienceLevel))
		where = append(where, fmt.Sprintf(`experience_level = $%d`, len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM job_postings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	args = append(args, params.Limit)
	query += fmt.Sprintf(` ORDER BY posted_at DESC, id DESC LIMIT $%d`, len(args))

	return r.list(ctx, query, args...)
}

func (r *PostgresJobPostingRepository) Recent(ctx context.Context, limit int) ([]job.Posting, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM job_postings ORDER BY posted_at DESC, id DESC LIMIT $1`, limit)
}

func (r *PostgresJobPostingRepository) ListAll(ctx context.Context) ([]job.Posting, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM job_postings ORDER BY posted_at DESC, id DESC`)
}

func (r *PostgresJobPostingRepository) Version(ctx context.Context) (CatalogueVersion, error) {
	var v CatalogueVersion
	row := r.db.QueryRow(ctx, `SELECT COUNT(1), COALESCE(MAX(posted_at), 'epoch'::timestamptz) FROM job_postings`)
	if err := row.Scan(&v.Count, &v.LastPostedAt); err != nil {
		return CatalogueVersion{}, err
	}
	return v, nil
}

func (r *PostgresJobPostingRepository) list(ctx context.Context, query string, args ...any) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func jobArgs(p job.Posting) []any {
	skills := p.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return []any{
		p.ID, p.Title, p.Company, p.Description, skills, p.Location,
		string(p.ExperienceLevel.OrDefault()), p.Source, p.URL, p.PostedAt,
	}
}

func scanJob(row database.Row) (job.Posting, error) {
	var p job.Posting
	var level string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Company, &p.Description, &p.RequiredSkills,
		&p.Location, &level, &p.Source, &p.URL, &p.PostedAt,
	); err != nil {
		return job.Posting{}, err
	}
	p.ExperienceLevel = seniority.Level(level)
	if p.RequiredSkills == nil {
		p.RequiredSkills = []string{}
	}
	return p, nil
}
