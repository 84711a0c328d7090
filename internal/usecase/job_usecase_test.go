package usecase

import (
	"context"
	"testing"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/seniority"
	"resume-match/internal/infrastructure/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobs(repo *fakeJobRepo, pub events.Publisher, cache ResultCache) *Jobs {
	u := NewJobUsecase(repo, pub, cache, nil)
	u.now = clock
	return u
}

func TestJobs_Add(t *testing.T) {
	repo := &fakeJobRepo{}
	pub := &recordingPublisher{}
	cache := newFakeCache()
	require.NoError(t, cache.SetJSON(context.Background(), RecommendationsCacheKey(uuid.New(), "v", 20), 1, 0))
	u := newJobs(repo, pub, cache)

	p, err := u.Add(context.Background(), AddJobInput{
		Title:           "  Platform Engineer ",
		Company:         "Acme",
		Location:        "Remote",
		ExperienceLevel: "MID",
		RequiredSkills:  []string{"Go", " go ", "", "Kubernetes"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", p.Title)
	assert.Equal(t, seniority.Mid, p.ExperienceLevel)
	assert.Equal(t, job.SourceManual, p.Source)
	assert.Equal(t, []string{"Go", "Kubernetes"}, p.RequiredSkills)
	assert.Equal(t, fixedNow, p.PostedAt)
	require.Len(t, repo.items, 1)

	assert.Equal(t, []string{events.TypeJobsUpdated}, pub.types())
	assert.Equal(t, []string{"recs:*"}, cache.patterns)
	assert.Empty(t, cache.data)
}

func TestJobs_AddExtractsSkillsFromDescription(t *testing.T) {
	u := newJobs(&fakeJobRepo{}, nil, nil)

	p, err := u.Add(context.Background(), AddJobInput{
		Title:           "Data Analyst",
		Company:         "InsightWorks",
		Description:     "Daily work in Python and Tableau.",
		Location:        "Bangalore",
		ExperienceLevel: "entry",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "tableau"}, p.RequiredSkills)
}

func TestJobs_AddValidation(t *testing.T) {
	u := newJobs(&fakeJobRepo{}, nil, nil)
	base := AddJobInput{Title: "T", Company: "C", Location: "L", ExperienceLevel: "senior"}

	for name, mutate := range map[string]func(*AddJobInput){
		"title":    func(in *AddJobInput) { in.Title = " " },
		"company":  func(in *AddJobInput) { in.Company = "" },
		"location": func(in *AddJobInput) { in.Location = "" },
		"level":    func(in *AddJobInput) { in.ExperienceLevel = "guru" },
		"no level": func(in *AddJobInput) { in.ExperienceLevel = "" },
	} {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := u.Add(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestJobs_AddWithURLUpserts(t *testing.T) {
	repo := &fakeJobRepo{}
	u := newJobs(repo, nil, nil)
	in := AddJobInput{Title: "T", Company: "C", Location: "L", ExperienceLevel: "entry", URL: "https://c.io/jobs/1"}

	first, err := u.Add(context.Background(), in)
	require.NoError(t, err)
	in.Title = "T2"
	second, err := u.Add(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "T2", repo.items[0].Title)
}

func TestJobs_Get(t *testing.T) {
	p := job.Posting{ID: uuid.New(), Title: "X"}
	u := newJobs(&fakeJobRepo{items: []job.Posting{p}}, nil, nil)

	got, err := u.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)

	_, err = u.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = newJobs(&fakeJobRepo{err: errBoom}, nil, nil).Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestJobs_SearchLimits(t *testing.T) {
	repo := &fakeJobRepo{}
	u := newJobs(repo, nil, nil)
	ctx := context.Background()

	_, err := u.Search(ctx, JobSearchInput{Query: "  react   developer ", ExperienceLevel: "Entry"})
	require.NoError(t, err)
	assert.Equal(t, "react developer", repo.searched[0].Query)
	assert.Equal(t, []string{"react developer"}, repo.searched[0].Terms)
	assert.Equal(t, 20, repo.searched[0].Limit)
	assert.Equal(t, seniority.Entry, repo.searched[0].ExperienceLevel)

	_, err = u.Search(ctx, JobSearchInput{Query: "Golang"})
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "go"}, repo.searched[1].Terms)

	_, err = u.Search(ctx, JobSearchInput{Limit: 51})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = u.Search(ctx, JobSearchInput{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = u.Search(ctx, JobSearchInput{ExperienceLevel: "lead"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJobs_Recent(t *testing.T) {
	items := make([]job.Posting, 12)
	for i := range items {
		items[i] = job.Posting{ID: uuid.New()}
	}
	u := newJobs(&fakeJobRepo{items: items}, nil, nil)

	got, err := u.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	got, err = u.Recent(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestJobs_SeedSamplesIsIdempotent(t *testing.T) {
	repo := &fakeJobRepo{}
	pub := &recordingPublisher{}
	u := newJobs(repo, pub, nil)

	n, err := u.SeedSamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(job.Samples(fixedNow)), n)

	_, err = u.SeedSamples(context.Background())
	require.NoError(t, err)
	assert.Len(t, repo.items, n)
	assert.Len(t, pub.types(), 2)
}

func TestJobs_Ingest(t *testing.T) {
	repo := &fakeJobRepo{}
	pub := &recordingPublisher{}
	cache := newFakeCache()
	u := newJobs(repo, pub, cache)
	src := job.CareersSource("acme")

	n, err := u.Ingest(context.Background(), src, []job.Posting{
		{Title: "Go Developer", URL: "https://acme.io/jobs/1", RequiredSkills: []string{"go", "Go"}},
		{Title: "No URL"},
		{Title: " ", URL: "https://acme.io/jobs/2"},
		{Title: "Lead SRE", URL: "https://acme.io/jobs/3", ExperienceLevel: seniority.Senior},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, repo.items, 2)
	assert.Equal(t, src, repo.items[0].Source)
	assert.Equal(t, seniority.Entry, repo.items[0].ExperienceLevel)
	assert.Equal(t, []string{"go"}, repo.items[0].RequiredSkills)
	assert.Equal(t, fixedNow, repo.items[0].PostedAt)
	assert.Equal(t, []string{events.TypeJobsUpdated}, pub.types())
	assert.Equal(t, []string{"recs:*"}, cache.patterns)

	_, err = newJobs(&fakeJobRepo{err: errBoom}, nil, nil).Ingest(context.Background(), src, []job.Posting{{Title: "X", URL: "u"}})
	assert.ErrorIs(t, err, ErrInternal)

	n, err = u.Ingest(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, pub.types(), 1)
}
