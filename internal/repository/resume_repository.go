package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-match/internal/database"
	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

type ResumeRepository interface {
	Create(ctx context.Context, r resume.Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
	UpdateLevel(ctx context.Context, id uuid.UUID, level seniority.Level, years float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresResumeRepository struct {
	db database.Querier
}

func NewPostgresResumeRepository(db database.Querier) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, user_id, file_name, file_ref, source, extracted_text, skills, education, contact_info, experience, job_level, years_of_experience, created_at`

func (r *PostgresResumeRepository) Create(ctx context.Context, res resume.Resume) error {
	edu, err := json.Marshal(res.Education)
	if err != nil {
		return err
	}
	contact, err := json.Marshal(res.ContactInfo)
	if err != nil {
		return err
	}
	exp := res.Experience
	if exp == nil {
		exp = []resume.Experience{}
	}
	expJSON, err := json.Marshal(exp)
	if err != nil {
		return err
	}
	skills := res.Skills
	if skills == nil {
		skills = []string{}
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO resumes (`+resumeColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		res.ID, res.UserID, res.FileName, res.FileRef, string(res.Source), res.ExtractedText,
		skills, edu, contact, expJSON, string(res.JobLevel), res.YearsOfExperience, res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

func (r *PostgresResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	res, err := scanResume(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return resume.Resume{}, ErrNotFound
	}
	return res, err
}

func (r *PostgresResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) UpdateLevel(ctx context.Context, id uuid.UUID, level seniority.Level, years float64) error {
	n, err := r.db.Exec(ctx,
		`UPDATE resumes SET job_level = $2, years_of_experience = $3 WHERE id = $1`,
		id, string(level), years,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResume(row database.Row) (resume.Resume, error) {
	var (
		res                  resume.Resume
		source, level        string
		edu, contact, expRaw []byte
	)
	if err := row.Scan(
		&res.ID, &res.UserID, &res.FileName, &res.FileRef, &source, &res.ExtractedText,
		&res.Skills, &edu, &contact, &expRaw, &level, &res.YearsOfExperience, &res.CreatedAt,
	); err != nil {
		return resume.Resume{}, err
	}
	res.Source = resume.Source(source)
	res.JobLevel = seniority.Level(level)

	if err := unmarshalJSON(edu, &res.Education); err != nil {
		return resume.Resume{}, fmt.Errorf("resume %s education: %w", res.ID, err)
	}
	if err := unmarshalJSON(contact, &res.ContactInfo); err != nil {
		return resume.Resume{}, fmt.Errorf("resume %s contact_info: %w", res.ID, err)
	}
	if err := unmarshalJSON(expRaw, &res.Experience); err != nil {
		return resume.Resume{}, fmt.Errorf("resume %s experience: %w", res.ID, err)
	}
	if res.Skills == nil {
		res.Skills = []string{}
	}
	return res, nil
}

func unmarshalJSON(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}
