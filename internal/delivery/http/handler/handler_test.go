package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/extraction"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"
	"resume-match/internal/profile"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(userID uuid.UUID, registrars ...interface{ RegisterRoutes(fiber.Router) }) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals(middleware.CtxUserIDKey, userID)
		}
		return c.Next()
	})
	for _, r := range registrars {
		r.RegisterRoutes(app)
	}
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func jsonReq(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func fieldErrors(t *testing.T, env envelope) []dto.FieldError {
	t.Helper()
	var out []dto.FieldError
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type fakeResumeUC struct {
	upload   usecase.UploadInput
	err      error
	level    string
	years    float64
	resume   resume.Resume
	parsedIn string
}

func (f *fakeResumeUC) Upload(_ context.Context, in usecase.UploadInput) (resume.Resume, error) {
	f.upload = in
	if f.err != nil {
		return resume.Resume{}, f.err
	}
	return resume.Resume{ID: uuid.New(), UserID: in.UserID, FileName: in.FileName, ExtractedText: string(in.Data), Skills: []string{"go"}}, nil
}

func (f *fakeResumeUC) Parse(_ context.Context, text string) (extraction.Parsed, error) {
	f.parsedIn = text
	return extraction.ParseText(text), f.err
}

func (f *fakeResumeUC) List(context.Context, uuid.UUID) ([]resume.Resume, error) {
	return []resume.Resume{f.resume}, f.err
}

func (f *fakeResumeUC) Get(_ context.Context, _ uuid.UUID, id uuid.UUID) (resume.Resume, error) {
	if f.err != nil {
		return resume.Resume{}, f.err
	}
	if id != f.resume.ID {
		return resume.Resume{}, usecase.ErrResumeNotFound
	}
	return f.resume, nil
}

func (f *fakeResumeUC) Delete(context.Context, uuid.UUID, uuid.UUID) error { return f.err }

func (f *fakeResumeUC) UpdateLevel(_ context.Context, _ uuid.UUID, _ uuid.UUID, level string, years float64) (resume.Resume, error) {
	f.level, f.years = level, years
	return f.resume, f.err
}

func multipartUpload(t *testing.T, field, name string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/resumes", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestResumeHandler_Upload(t *testing.T) {
	user := uuid.New()
	uc := &fakeResumeUC{}
	app := newTestApp(user, NewResumeHandler(uc))

	status, env := do(t, app, multipartUpload(t, "file", "cv.txt", []byte("Jane Doe\nSkills: Go")))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Resume uploaded", env.Message)
	assert.Equal(t, user, uc.upload.UserID)
	assert.Equal(t, "cv.txt", uc.upload.FileName)
	assert.Equal(t, "Jane Doe\nSkills: Go", string(uc.upload.Data))

	var got dto.ResumeResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "cv.txt", got.FileName)
	assert.Equal(t, []string{"go"}, got.Skills)
	assert.NotContains(t, string(env.Data), "user_id")
}

func TestResumeHandler_UploadErrors(t *testing.T) {
	uc := &fakeResumeUC{}
	app := newTestApp(uuid.New(), NewResumeHandler(uc))

	status, _ := do(t, app, multipartUpload(t, "other", "cv.txt", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, status)

	uc.err = usecase.ErrUnsupportedFile
	status, env := do(t, app, multipartUpload(t, "file", "cv.pdf", []byte("%PDF")))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)
	assert.Equal(t, "Only plain text resumes are supported", env.Message)

	status, _ = do(t, newTestApp(uuid.Nil, NewResumeHandler(uc)), multipartUpload(t, "file", "cv.txt", []byte("x")))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestResumeHandler_GetAndNotFound(t *testing.T) {
	r := resume.Resume{ID: uuid.New(), FileName: "a.txt", ExtractedText: "full text", JobLevel: seniority.Mid}
	uc := &fakeResumeUC{resume: r}
	app := newTestApp(uuid.New(), NewResumeHandler(uc))

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/resumes/"+r.ID.String(), nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "full text")

	status, env = do(t, app, httptest.NewRequest(http.MethodGet, "/resumes/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resume not found", env.Message)

	status, env = do(t, app, httptest.NewRequest(http.MethodGet, "/resumes/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resume not found", env.Message)

	status, env = do(t, app, httptest.NewRequest(http.MethodGet, "/resumes", nil))
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(env.Data), "full text")
}

func TestResumeHandler_UpdateLevel(t *testing.T) {
	r := resume.Resume{ID: uuid.New()}
	uc := &fakeResumeUC{resume: r}
	app := newTestApp(uuid.New(), NewResumeHandler(uc))
	path := "/resumes/" + r.ID.String() + "/level"

	status, _ := do(t, app, jsonReq(http.MethodPatch, path, map[string]any{"job_level": "Senior", "years_of_experience": 0}))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Senior", uc.level)
	assert.Zero(t, uc.years)

	status, env := do(t, app, jsonReq(http.MethodPatch, path, map[string]any{"job_level": "mid"}))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, []dto.FieldError{{Field: "years_of_experience", Message: "is required"}}, fieldErrors(t, env))

	status, env = do(t, app, jsonReq(http.MethodPatch, path, map[string]any{"job_level": "mid", "years_of_experience": -1}))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []dto.FieldError{{Field: "years_of_experience", Message: "must be at least 0"}}, fieldErrors(t, env))

	uc.err = usecase.ErrInvalidInput
	status, _ = do(t, app, jsonReq(http.MethodPatch, path, map[string]any{"job_level": "guru", "years_of_experience": 2}))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestResumeHandler_Parse(t *testing.T) {
	uc := &fakeResumeUC{}
	app := newTestApp(uuid.New(), NewResumeHandler(uc))

	status, env := do(t, app, jsonReq(http.MethodPost, "/resumes/parse", map[string]string{"text": "Skills: Python, Docker"}))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Skills: Python, Docker", uc.parsedIn)

	var parsed extraction.Parsed
	require.NoError(t, json.Unmarshal(env.Data, &parsed))
	assert.Equal(t, []string{"python", "docker"}, parsed.Skills)

	status, _ = do(t, app, jsonReq(http.MethodPost, "/resumes/parse", `{"text":`))
	assert.Equal(t, http.StatusBadRequest, status)
}

type fakeImportUC struct {
	err  error
	url  string
	data []byte
}

func (f *fakeImportUC) ImportLinkedIn(_ context.Context, _ uuid.UUID, url string) (resume.Resume, error) {
	f.url = url
	return resume.Resume{ID: uuid.New(), Source: resume.SourceLinkedIn}, f.err
}

func (f *fakeImportUC) ImportProfileExport(_ context.Context, _ uuid.UUID, data []byte) (resume.Resume, error) {
	f.data = append([]byte(nil), data...)
	return resume.Resume{ID: uuid.New(), Source: resume.SourceProfileExport}, f.err
}

func TestImportHandler(t *testing.T) {
	uc := &fakeImportUC{}
	app := newTestApp(uuid.New(), NewImportHandler(uc))

	status, _ := do(t, app, jsonReq(http.MethodPost, "/resumes/import/linkedin", map[string]string{"url": "https://linkedin.com/in/jane"}))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "https://linkedin.com/in/jane", uc.url)

	uc.err = usecase.ErrInvalidProfileURL
	status, env := do(t, app, jsonReq(http.MethodPost, "/resumes/import/linkedin", map[string]string{"url": "https://example.com"}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid LinkedIn URL format", env.Message)

	uc.err = fmt.Errorf("%w: %w", usecase.ErrInvalidInput, &profile.ValidationError{Errors: []profile.FieldError{{Field: "name", Message: "name is required"}}})
	status, env = do(t, app, jsonReq(http.MethodPost, "/resumes/import/profile", `{"skills":[]}`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid profile export", env.Message)
	assert.Equal(t, []dto.FieldError{{Field: "name", Message: "name is required"}}, fieldErrors(t, env))
	assert.JSONEq(t, `{"skills":[]}`, string(uc.data))
}

type fakeJobUC struct {
	added  usecase.AddJobInput
	search usecase.JobSearchInput
	recent int
	err    error
	seeded int
}

func (f *fakeJobUC) Add(_ context.Context, in usecase.AddJobInput) (job.Posting, error) {
	f.added = in
	return job.Posting{ID: uuid.New(), Title: in.Title}, f.err
}

func (f *fakeJobUC) Get(_ context.Context, id uuid.UUID) (job.Posting, error) {
	if f.err != nil {
		return job.Posting{}, f.err
	}
	return job.Posting{ID: id, Title: "Go Developer"}, nil
}

func (f *fakeJobUC) Search(_ context.Context, in usecase.JobSearchInput) ([]job.Posting, error) {
	f.search = in
	return []job.Posting{}, f.err
}

func (f *fakeJobUC) Recent(_ context.Context, limit int) ([]job.Posting, error) {
	f.recent = limit
	return []job.Posting{}, f.err
}

func (f *fakeJobUC) SeedSamples(context.Context) (int, error) { return f.seeded, f.err }

func (f *fakeJobUC) Ingest(context.Context, string, []job.Posting) (int, error) { return 0, f.err }

func TestJobHandler(t *testing.T) {
	uc := &fakeJobUC{seeded: 5}
	app := newTestApp(uuid.New(), NewJobHandler(uc))

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/jobs?q=react&location=Mumbai&experience_level=entry&limit=5", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.JobSearchInput{Query: "react", Location: "Mumbai", ExperienceLevel: "entry", Limit: 5}, uc.search)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/jobs?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/jobs/recent?limit=3", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, uc.recent)

	id := uuid.New()
	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/jobs/"+id.String(), nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), id.String())

	status, env = do(t, app, jsonReq(http.MethodPost, "/jobs", map[string]any{"company": "Acme", "location": "Remote", "experience_level": "mid", "url": "nope"}))
	require.Equal(t, http.StatusBadRequest, status)
	assert.ElementsMatch(t, []dto.FieldError{
		{Field: "title", Message: "is required"},
		{Field: "url", Message: "must be a URL"},
	}, fieldErrors(t, env))

	status, _ = do(t, app, jsonReq(http.MethodPost, "/jobs", map[string]any{"title": "SRE", "company": "Acme", "location": "Remote", "experience_level": "mid", "required_skills": []string{"Go"}}))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, []string{"Go"}, uc.added.RequiredSkills)

	status, env = do(t, app, jsonReq(http.MethodPost, "/jobs/seed", nil))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"seeded":5}`, string(env.Data))

	uc.err = usecase.ErrJobNotFound
	status, env = do(t, app, httptest.NewRequest(http.MethodGet, "/jobs/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Job not found", env.Message)

	uc.err = usecase.ErrInternal
	status, env = do(t, app, httptest.NewRequest(http.MethodGet, "/jobs/recent", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)
}

type fakeAnalysisUC struct {
	resumeID uuid.UUID
	jobIDs   []uuid.UUID
	err      error
}

func (f *fakeAnalysisUC) Analyze(_ context.Context, _ uuid.UUID, resumeID, jobID uuid.UUID) (analysis.WithJob, error) {
	f.resumeID, f.jobIDs = resumeID, []uuid.UUID{jobID}
	return analysis.WithJob{Result: analysis.Result{ID: uuid.New(), MatchScore: 72}}, f.err
}

func (f *fakeAnalysisUC) AnalyzeBatch(_ context.Context, _ uuid.UUID, resumeID uuid.UUID, jobIDs []uuid.UUID) ([]analysis.WithJob, error) {
	f.resumeID, f.jobIDs = resumeID, jobIDs
	out := make([]analysis.WithJob, len(jobIDs))
	return out, f.err
}

func (f *fakeAnalysisUC) ListForResume(_ context.Context, _ uuid.UUID, resumeID uuid.UUID) ([]analysis.WithJob, error) {
	f.resumeID = resumeID
	return []analysis.WithJob{}, f.err
}

func TestAnalysisHandler(t *testing.T) {
	uc := &fakeAnalysisUC{}
	app := newTestApp(uuid.New(), NewAnalysisHandler(uc))
	rid, jid := uuid.New(), uuid.New()

	status, env := do(t, app, jsonReq(http.MethodPost, "/analyses", map[string]string{"resume_id": rid.String(), "job_id": jid.String()}))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, rid, uc.resumeID)
	assert.Contains(t, string(env.Data), `"match_score":72`)

	status, env = do(t, app, jsonReq(http.MethodPost, "/analyses/batch", map[string]any{"resume_id": rid.String(), "job_ids": []string{jid.String(), "bad"}}))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []dto.FieldError{{Field: "job_ids[1]", Message: "must be a UUID"}}, fieldErrors(t, env))

	status, env = do(t, app, jsonReq(http.MethodPost, "/analyses/batch", map[string]any{"resume_id": rid.String(), "job_ids": []string{}}))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []dto.FieldError{{Field: "job_ids", Message: "must have at least 1 items"}}, fieldErrors(t, env))

	status, _ = do(t, app, jsonReq(http.MethodPost, "/analyses/batch", map[string]any{"resume_id": rid.String(), "job_ids": []string{jid.String(), jid.String()}}))
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, uc.jobIDs, 2)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/resumes/"+rid.String()+"/analyses", nil))
	require.Equal(t, http.StatusOK, status)

	uc.err = usecase.ErrResumeNotFound
	status, env = do(t, app, jsonReq(http.MethodPost, "/analyses", map[string]string{"resume_id": rid.String(), "job_id": jid.String()}))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resume not found", env.Message)
}

type fakeRecommendationUC struct {
	limit int
	err   error
}

func (f *fakeRecommendationUC) Recommend(_ context.Context, _ uuid.UUID, _ uuid.UUID, limit int) ([]matching.RankedJob, error) {
	f.limit = limit
	return []matching.RankedJob{{Job: job.Posting{Title: "Frontend Developer"}, CompatibilityScore: 81, MatchReasons: []string{"Excellent match"}}}, f.err
}

func TestRecommendationHandler(t *testing.T) {
	uc := &fakeRecommendationUC{}
	app := newTestApp(uuid.New(), NewRecommendationHandler(uc))
	path := "/resumes/" + uuid.NewString() + "/recommendations"

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, path+"?limit=7", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 7, uc.limit)
	assert.Contains(t, string(env.Data), `"compatibility_score":81`)

	uc.err = usecase.ErrInvalidInput
	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, path+"?limit=99", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("down") })

	app := newTestApp(uuid.Nil, NewHealthHandler(map[string]Pinger{"database": up, "redis": down}, func() int { return 2 }))
	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "degraded", env.Message)
	assert.JSONEq(t, `{"status":"degraded","components":{"database":"up","redis":"down"},"ws_clients":2}`, string(env.Data))

	app = newTestApp(uuid.Nil, NewHealthHandler(map[string]Pinger{"database": down}, nil))
	status, env = do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.True(t, strings.Contains(string(env.Data), `"database":"down"`))
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Get("/boom", func(fiber.Ctx) error { panic("boom") })

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)
}
