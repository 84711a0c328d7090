package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan dest mismatch: %d != %d", len(dest), len(r.vals))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if r.vals[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		sv := reflect.ValueOf(r.vals[i])
		switch {
		case sv.Type().AssignableTo(dv.Type()):
			dv.Set(sv)
		case dv.Kind() == reflect.Pointer && sv.Type().AssignableTo(dv.Type().Elem()):
			p := reflect.New(dv.Type().Elem())
			p.Elem().Set(sv)
			dv.Set(p)
		default:
			return fmt.Errorf("scan type mismatch at %d: %s into %s", i, sv.Type(), dv.Type())
		}
	}
	return nil
}

type fakeRows struct {
	rows []fakeRow
	i    int
}

func (r *fakeRows) Close()                 {}
func (r *fakeRows) Err() error             { return nil }
func (r *fakeRows) Scan(dest ...any) error { return r.rows[r.i-1].Scan(dest...) }

func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.rows)
}

type call struct {
	query string
	args  []any
}

// fakeQuerier stores inserted rows by table and replays them on selects.
type fakeQuerier struct {
	calls    []call
	inserted map[string][][]any
	affected int64
	rowErr   error
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{inserted: map[string][][]any{}, affected: 1}
}

func (f *fakeQuerier) record(query string, args []any) string {
	f.calls = append(f.calls, call{query: query, args: args})
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (f *fakeQuerier) Exec(_ context.Context, query string, args ...any) (int64, error) {
	q := f.record(query, args)
	for _, table := range []string{"resumes", "job_postings", "analyses"} {
		if strings.HasPrefix(q, "insert into "+table+" ") {
			f.inserted[table] = append(f.inserted[table], args)
			return 1, nil
		}
	}
	return f.affected, nil
}

func (f *fakeQuerier) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	q := f.record(query, args)
	rows := &fakeRows{}
	switch {
	case strings.Contains(q, "from resumes"):
		for _, vals := range f.inserted["resumes"] {
			rows.rows = append(rows.rows, fakeRow{vals: vals})
		}
	case strings.Contains(q, "from job_postings"):
		for _, vals := range f.inserted["job_postings"] {
			rows.rows = append(rows.rows, fakeRow{vals: vals})
		}
	}
	return rows, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, query string, args ...any) database.Row {
	q := f.record(query, args)
	if f.rowErr != nil {
		return fakeRow{err: f.rowErr}
	}
	switch {
	case strings.Contains(q, "from resumes where id"):
		for _, vals := range f.inserted["resumes"] {
			if vals[0] == args[0] {
				return fakeRow{vals: vals}
			}
		}
	case strings.Contains(q, "from job_postings where id"):
		for _, vals := range f.inserted["job_postings"] {
			if vals[0] == args[0] {
				return fakeRow{vals: vals}
			}
		}
	case strings.HasPrefix(q, "insert into job_postings"):
		return fakeRow{vals: []any{args[0]}}
	}
	return fakeRow{err: pgx.ErrNoRows}
}

func sampleResume() resume.Resume {
	return resume.Resume{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		FileName:          "cv.txt",
		FileRef:           "resumes/u/cv.txt",
		Source:            resume.SourceUpload,
		ExtractedText:     "Go developer",
		Skills:            []string{"go", "docker"},
		Education:         resume.Education{Degree: "B.Tech", GraduationYear: 2020, GPA: 8.1},
		ContactInfo:       resume.ContactInfo{Email: "a@b.io", Location: "Pune"},
		Experience:        []resume.Experience{{Title: "Developer", Company: "X", Duration: "2 years"}},
		JobLevel:          seniority.Mid,
		YearsOfExperience: 2,
		CreatedAt:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestResumeRepository_RoundTrip(t *testing.T) {
	db := newFakeQuerier()
	repo := NewPostgresResumeRepository(db)
	want := sampleResume()

	require.NoError(t, repo.Create(context.Background(), want))

	got, err := repo.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	list, err := repo.ListByUser(context.Background(), want.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, want.ID, list[0].ID)
	assert.Equal(t, want.UserID, db.calls[len(db.calls)-1].args[0])
}

func TestResumeRepository_NotFound(t *testing.T) {
	db := newFakeQuerier()
	repo := NewPostgresResumeRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	db.affected = 0
	assert.ErrorIs(t, repo.UpdateLevel(context.Background(), uuid.New(), seniority.Senior, 7), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), ErrNotFound)

	db.affected = 1
	id := uuid.New()
	require.NoError(t, repo.UpdateLevel(context.Background(), id, seniority.Senior, 7))
	last := db.calls[len(db.calls)-1]
	assert.Equal(t, []any{id, "senior", 7.0}, last.args)
}

func TestJobPostingRepository_CreateAndGet(t *testing.T) {
	db := newFakeQuerier()
	repo := NewPostgresJobPostingRepository(db)

	p := job.Posting{
		ID:             uuid.New(),
		Title:          "Go Developer",
		Company:        "Acme",
		RequiredSkills: nil,
		Location:       "Pune",
		Source:         job.SourceManual,
		PostedAt:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, seniority.Entry, got.ExperienceLevel)
	assert.Equal(t, []string{}, got.RequiredSkills)
	assert.Equal(t, "Go Developer", got.Title)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobPostingRepository_SearchBuildsFilters(t *testing.T) {
	db := newFakeQuerier()
	repo := NewPostgresJobPostingRepository(db)

	_, err := repo.Search(context.Background(), JobSearchParams{
		Query:           " React ",
		Location:        "Mumbai",
		ExperienceLevel: seniority.Entry,
		Limit:           20,
	})
	require.NoError(t, err)

	last := db.calls[len(db.calls)-1]
	assert.Equal(t, []any{"%react%", "%mumbai%", "entry", 20}, last.args)
	assert.Contains(t, last.query, "lower(location) LIKE $2")
	assert.Contains(t, last.query, "experience_level = $3")
	assert.Contains(t, last.query, "LIMIT $4")

	_, err = repo.Search(context.Background(), JobSearchParams{Query: "golang", Terms: []string{"golang", "go"}, Limit: 5})
	require.NoError(t, err)
	last = db.calls[len(db.calls)-1]
	assert.Equal(t, []any{"%golang%", "%go%", 5}, last.args)
	assert.Contains(t, last.query, ") OR (lower(title) LIKE $2")

	_, err = repo.Search(context.Background(), JobSearchParams{Limit: 5})
	require.NoError(t, err)
	last = db.calls[len(db.calls)-1]
	assert.NotContains(t, last.query, "WHERE")
	assert.Equal(t, []any{5}, last.args)
}

func TestJobPostingRepository_Upsert(t *testing.T) {
	db := newFakeQuerier()
	repo := NewPostgresJobPostingRepository(db)

	_, err := repo.Upsert(context.Background(), job.Posting{ID: uuid.New()})
	assert.Error(t, err)

	id := uuid.New()
	got, err := repo.Upsert(context.Background(), job.Posting{ID: id, URL: "https://acme.io/jobs/1", Source: job.CareersSource("acme")})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Contains(t, db.calls[len(db.calls)-1].query, "ON CONFLICT (source, url)")
}

func TestCatalogueVersion(t *testing.T) {
	v := CatalogueVersion{Count: 3, LastPostedAt: time.Unix(10, 5)}
	assert.Equal(t, "3-10000000005", v.String())
}

func TestAnalysisRepository_Create(t *testing.T) {
	db := newFakeQuerier()
	repo := NewPostgresAnalysisRepository(db)

	a := analysis.Result{
		ID:         uuid.New(),
		ResumeID:   uuid.New(),
		JobID:      uuid.New(),
		UserID:     uuid.New(),
		MatchScore: 71,
		LevelMatch: matching.LevelMatch{IsMatch: true, RiskLevel: matching.RiskLow},
	}
	require.NoError(t, repo.Create(context.Background(), a))

	args := db.inserted["analyses"][0]
	assert.Equal(t, 71, args[4])
	assert.Equal(t, []string{}, args[5])
	assert.Contains(t, string(args[10].([]byte)), `"risk_level":"low"`)
}
