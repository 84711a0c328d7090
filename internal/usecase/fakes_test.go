package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"
	"resume-match/internal/infrastructure/events"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeResumeRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]resume.Resume
	createErr error
	getErr    error
}

func newFakeResumeRepo(rs ...resume.Resume) *fakeResumeRepo {
	f := &fakeResumeRepo{items: map[uuid.UUID]resume.Resume{}}
	for _, r := range rs {
		f.items[r.ID] = r
	}
	return f
}

func (f *fakeResumeRepo) Create(_ context.Context, r resume.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.items[r.ID] = r
	return nil
}

func (f *fakeResumeRepo) GetByID(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return resume.Resume{}, f.getErr
	}
	r, ok := f.items[id]
	if !ok {
		return resume.Resume{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeResumeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]resume.Resume, 0)
	for _, r := range f.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (f *fakeResumeRepo) UpdateLevel(_ context.Context, id uuid.UUID, level seniority.Level, years float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.JobLevel = level
	r.YearsOfExperience = years
	f.items[id] = r
	return nil
}

func (f *fakeResumeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeJobRepo struct {
	mu        sync.Mutex
	items     []job.Posting
	searched  []repository.JobSearchParams
	listCalls int
	err       error
}

func (f *fakeJobRepo) Create(_ context.Context, p job.Posting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, p)
	return nil
}

func (f *fakeJobRepo) Upsert(_ context.Context, p job.Posting) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	for i, existing := range f.items {
		if existing.Source == p.Source && existing.URL == p.URL {
			p.ID = existing.ID
			p.PostedAt = existing.PostedAt
			f.items[i] = p
			return p.ID, nil
		}
	}
	f.items = append(f.items, p)
	return p.ID, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return job.Posting{}, f.err
	}
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return job.Posting{}, repository.ErrNotFound
}

func (f *fakeJobRepo) Search(_ context.Context, params repository.JobSearchParams) ([]job.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, params)
	out := make([]job.Posting, 0)
	for _, p := range f.items {
		if params.Query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(params.Query)) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}

func (f *fakeJobRepo) Recent(_ context.Context, limit int) ([]job.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]job.Posting(nil), f.items...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeJobRepo) ListAll(context.Context) ([]job.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]job.Posting(nil), f.items...), nil
}

func (f *fakeJobRepo) Version(context.Context) (repository.CatalogueVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := repository.CatalogueVersion{Count: len(f.items)}
	for _, p := range f.items {
		if p.PostedAt.After(v.LastPostedAt) {
			v.LastPostedAt = p.PostedAt
		}
	}
	return v, nil
}

type fakeAnalysisRepo struct {
	mu      sync.Mutex
	created []analysis.Result
	err     error
}

func (f *fakeAnalysisRepo) Create(_ context.Context, a analysis.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAnalysisRepo) ListByResume(_ context.Context, resumeID uuid.UUID) ([]analysis.WithJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]analysis.WithJob, 0)
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].ResumeID == resumeID {
			out = append(out, analysis.WithJob{Result: f.created[i]})
		}
	}
	return out, nil
}

type fakeCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type failingStore struct{}

func (failingStore) Put(context.Context, string, []byte, string) error { return errBoom }
func (failingStore) Get(context.Context, string) ([]byte, error)       { return nil, errBoom }
func (failingStore) Delete(context.Context, string) error              { return errBoom }
