// internal/match/retrieval_test.go
package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

// ==========================
// Fakes
// ==========================

// fakeRepo implements Repository with overridable behavior per test
type fakeRepo struct {
	findCandidates         func(ctx context.Context, f CandidateFilter) ([]*profile.Profile, error)
	todayRecommendation    *Recommendation
	todayErr               error
	created                []*Recommendation
	createErr              error
	viewed                 []int64
	skipped                [][2]int64
	liked                  [][2]int64
	markedByID             []*int64
	markErr                error
	activeUserIDs          []int64
	capturedFilters        []CandidateFilter
	hasTodayRecommendation bool
}

func (r *fakeRepo) FindCandidates(ctx context.Context, f CandidateFilter) ([]*profile.Profile, error) {
	r.capturedFilters = append(r.capturedFilters, f)
	if r.findCandidates != nil {
		return r.findCandidates(ctx, f)
	}
	return nil, nil
}

func (r *fakeRepo) GetTodayRecommendation(ctx context.Context, userID int64) (*Recommendation, error) {
	if r.todayErr != nil {
		return nil, r.todayErr
	}
	if r.todayRecommendation == nil {
		return nil, ErrRecommendationNotFound
	}
	return r.todayRecommendation, nil
}

func (r *fakeRepo) HasTodayRecommendation(ctx context.Context, userID int64) (bool, error) {
	return r.hasTodayRecommendation, nil
}

func (r *fakeRepo) CreateRecommendation(ctx context.Context, rec *Recommendation) error {
	if r.createErr != nil {
		return r.createErr
	}
	rec.ID = int64(len(r.created) + 1)
	r.created = append(r.created, rec)
	return nil
}

func (r *fakeRepo) MarkViewed(ctx context.Context, recommendationID int64) error {
	r.viewed = append(r.viewed, recommendationID)
	return nil
}

func (r *fakeRepo) MarkSkipped(ctx context.Context, userID, skippedUserID int64, recommendationID *int64) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.markedByID = append(r.markedByID, recommendationID)
	r.skipped = append(r.skipped, [2]int64{userID, skippedUserID})
	return nil
}

func (r *fakeRepo) MarkLiked(ctx context.Context, userID, likedUserID int64, recommendationID *int64) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.markedByID = append(r.markedByID, recommendationID)
	r.liked = append(r.liked, [2]int64{userID, likedUserID})
	return nil
}

func (r *fakeRepo) GetActiveUserIDs(ctx context.Context, daysActive int) ([]int64, error) {
	return r.activeUserIDs, nil
}

// ==========================
// Tier Cascade Tests
// ==========================

func strictFilter() CandidateFilter {
	return CandidateFilter{
		SelfID:     1,
		ExcludeIDs: []int64{10},
		Gender:     "Male",
		Country:    strPtr("India"),
		State:      strPtr("Karnataka"),
		Religion:   strPtr("Hindu"),
		Caste:      strPtr("Brahmin"),
		Limit:      200,
	}
}

func TestFindCandidates_StrictTierWins(t *testing.T) {
	pool := []*profile.Profile{{ID: 2, Gender: "Male"}}
	repo := &fakeRepo{
		findCandidates: func(ctx context.Context, f CandidateFilter) ([]*profile.Profile, error) {
			return pool, nil
		},
	}
	r := newRetriever(repo)

	candidates, tier, err := r.FindCandidates(context.Background(), strictFilter())

	assert.NoError(t, err)
	assert.Equal(t, TierStrict, tier)
	assert.Equal(t, pool, candidates)
	assert.Len(t, repo.capturedFilters, 1)
}

func TestFindCandidates_RelaxesInOrder(t *testing.T) {
	// Empty until the location-relaxed tier
	repo := &fakeRepo{
		findCandidates: func(ctx context.Context, f CandidateFilter) ([]*profile.Profile, error) {
			if f.Country == nil && f.Religion == nil && f.BornAfter == nil {
				return []*profile.Profile{{ID: 5, Gender: "Male"}}, nil
			}
			return nil, nil
		},
	}
	r := newRetriever(repo)

	candidates, tier, err := r.FindCandidates(context.Background(), strictFilter())

	assert.NoError(t, err)
	assert.Equal(t, TierRelaxLocation, tier)
	assert.Len(t, candidates, 1)

	// Tiers ran strictly in order up to the winner
	assert.Len(t, repo.capturedFilters, 3)
	assert.NotNil(t, repo.capturedFilters[0].Religion)
	assert.Nil(t, repo.capturedFilters[1].Religion)
	assert.NotNil(t, repo.capturedFilters[1].Country)
	assert.Nil(t, repo.capturedFilters[2].Country)
}

func TestFindCandidates_LastResortDropsExclusions(t *testing.T) {
	repo := &fakeRepo{
		findCandidates: func(ctx context.Context, f CandidateFilter) ([]*profile.Profile, error) {
			if len(f.ExcludeIDs) == 0 {
				return []*profile.Profile{{ID: 10, Gender: "Male"}}, nil
			}
			return nil, nil
		},
	}
	r := newRetriever(repo)

	candidates, tier, err := r.FindCandidates(context.Background(), strictFilter())

	assert.NoError(t, err)
	assert.Equal(t, TierLastResort, tier)
	assert.Equal(t, int64(10), candidates[0].ID)
	assert.Len(t, repo.capturedFilters, 5)

	// Every earlier tier kept the exclusion set
	for _, f := range repo.capturedFilters[:4] {
		assert.Equal(t, []int64{10}, f.ExcludeIDs)
	}
	assert.Empty(t, repo.capturedFilters[4].ExcludeIDs)
}

func TestFindCandidates_AllTiersEmpty(t *testing.T) {
	repo := &fakeRepo{}
	r := newRetriever(repo)

	candidates, _, err := r.FindCandidates(context.Background(), strictFilter())

	assert.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Len(t, repo.capturedFilters, 5)
}

func TestFindCandidates_RepositoryError(t *testing.T) {
	dbErr := errors.New("connection reset")
	repo := &fakeRepo{
		findCandidates: func(ctx context.Context, f CandidateFilter) ([]*profile.Profile, error) {
			return nil, dbErr
		},
	}
	r := newRetriever(repo)

	_, _, err := r.FindCandidates(context.Background(), strictFilter())

	assert.ErrorIs(t, err, dbErr)
	assert.Len(t, repo.capturedFilters, 1)
}

func TestMinimalFilter_KeepsOnlyHardPredicates(t *testing.T) {
	f := strictFilter()

	m := minimalFilter(f)

	assert.Equal(t, f.SelfID, m.SelfID)
	assert.Equal(t, f.ExcludeIDs, m.ExcludeIDs)
	assert.Equal(t, f.Gender, m.Gender)
	assert.Equal(t, f.Limit, m.Limit)
	assert.Nil(t, m.Country)
	assert.Nil(t, m.State)
	assert.Nil(t, m.Religion)
	assert.Nil(t, m.Caste)
	assert.Nil(t, m.BornAfter)
	assert.Nil(t, m.BornBefore)
}
