package usecase

import (
	"context"
	"strings"
	"testing"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendationFixture() (uuid.UUID, resume.Resume, *fakeJobRepo) {
	owner := uuid.New()
	r := resume.Resume{
		ID:                uuid.New(),
		UserID:            owner,
		Skills:            []string{"react", "javascript", "html", "css"},
		ContactInfo:       resume.ContactInfo{Location: "Mumbai"},
		JobLevel:          seniority.Entry,
		YearsOfExperience: 1,
	}
	repo := &fakeJobRepo{items: []job.Posting{
		{ID: uuid.New(), Title: "Data Engineer", RequiredSkills: []string{"Spark", "Scala"}, Location: "Delhi", ExperienceLevel: seniority.Senior, PostedAt: fixedNow},
		{ID: uuid.New(), Title: "Frontend Developer", RequiredSkills: []string{"React", "JavaScript", "CSS"}, Location: "Mumbai", ExperienceLevel: seniority.Entry, PostedAt: fixedNow},
		{ID: uuid.New(), Title: "UI Engineer", RequiredSkills: []string{"HTML", "CSS", "Figma"}, Location: "Remote", ExperienceLevel: seniority.Entry, PostedAt: fixedNow},
	}}
	return owner, r, repo
}

func TestRecommendations_RanksAndLimits(t *testing.T) {
	owner, r, jobs := recommendationFixture()
	u := NewRecommendationUsecase(newFakeResumeRepo(r), jobs, nil, nil, nil)

	got, err := u.Recommend(context.Background(), owner, r.ID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Frontend Developer", got[0].Job.Title)
	assert.GreaterOrEqual(t, got[0].CompatibilityScore, got[1].CompatibilityScore)
	assert.NotEmpty(t, got[0].MatchReasons)

	all, err := u.Recommend(context.Background(), owner, r.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Data Engineer", all[2].Job.Title)
}

func TestRecommendations_CachedPerCatalogueVersion(t *testing.T) {
	owner, r, jobs := recommendationFixture()
	cache := newFakeCache()
	u := NewRecommendationUsecase(newFakeResumeRepo(r), jobs, nil, cache, nil)
	ctx := context.Background()

	first, err := u.Recommend(ctx, owner, r.ID, 5)
	require.NoError(t, err)
	second, err := u.Recommend(ctx, owner, r.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, jobs.listCalls)
	assert.Equal(t, first[0].Job.ID, second[0].Job.ID)
	require.Len(t, cache.data, 1)
	for k := range cache.data {
		assert.True(t, strings.HasPrefix(k, "recs:"+r.ID.String()+":3-"))
	}

	jobs.items = append(jobs.items, job.Posting{ID: uuid.New(), Title: "React Developer", RequiredSkills: []string{"React"}, Location: "Mumbai", PostedAt: fixedNow.Add(1)})
	third, err := u.Recommend(ctx, owner, r.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, jobs.listCalls)
	assert.Len(t, third, 4)
}

func TestRecommendations_Errors(t *testing.T) {
	owner, r, jobs := recommendationFixture()
	u := NewRecommendationUsecase(newFakeResumeRepo(r), jobs, nil, nil, nil)
	ctx := context.Background()

	_, err := u.Recommend(ctx, uuid.New(), r.ID, 0)
	assert.ErrorIs(t, err, ErrResumeNotFound)
	_, err = u.Recommend(ctx, owner, r.ID, 51)
	assert.ErrorIs(t, err, ErrInvalidInput)

	jobs.err = errBoom
	_, err = u.Recommend(ctx, owner, r.ID, 0)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRecommendationsCacheKeys(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	assert.Equal(t, "recs:11111111-1111-1111-1111-111111111111:3-5:20", RecommendationsCacheKey(id, "3-5", 20))
	assert.Equal(t, "recs:11111111-1111-1111-1111-111111111111:*", RecommendationsCachePattern(id))
	assert.Equal(t, "recs:*", RecommendationsCachePattern(uuid.Nil))
}
