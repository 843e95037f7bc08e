// internal/match/retrieval.go
// Cascading candidate retrieval. Each tier is a pure function producing a
// progressively relaxed copy of the strict filter; tiers run in order and
// retrieval stops at the first non-empty pool.

package match

import (
	"context"
	"log"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

// Tier names, in relaxation order. The last-resort tier re-surfaces
// previously skipped members and is counted separately in metrics.
const (
	TierStrict             = "strict"
	TierRelaxReligionCaste = "relax_religion_caste"
	TierRelaxLocation      = "relax_location"
	TierMinimal            = "minimal"
	TierLastResort         = "last_resort"
)

type retrievalTier struct {
	name  string
	build func(CandidateFilter) CandidateFilter
}

var retrievalTiers = []retrievalTier{
	{TierStrict, func(f CandidateFilter) CandidateFilter {
		return f
	}},
	{TierRelaxReligionCaste, func(f CandidateFilter) CandidateFilter {
		f.Religion = nil
		f.Caste = nil
		return f
	}},
	{TierRelaxLocation, func(f CandidateFilter) CandidateFilter {
		f.Religion = nil
		f.Caste = nil
		f.Country = nil
		f.State = nil
		return f
	}},
	{TierMinimal, func(f CandidateFilter) CandidateFilter {
		return minimalFilter(f)
	}},
	{TierLastResort, func(f CandidateFilter) CandidateFilter {
		f = minimalFilter(f)
		f.ExcludeIDs = nil
		return f
	}},
}

// minimalFilter keeps only gender, self-exclusion and the skipped set
func minimalFilter(f CandidateFilter) CandidateFilter {
	return CandidateFilter{
		SelfID:     f.SelfID,
		ExcludeIDs: f.ExcludeIDs,
		Gender:     f.Gender,
		Limit:      f.Limit,
	}
}

// retriever runs the tier cascade against a candidate source
type retriever struct {
	repo Repository
}

func newRetriever(repo Repository) *retriever {
	return &retriever{repo: repo}
}

// FindCandidates executes the tiers strictly in order and returns the first
// non-empty pool together with the tier that produced it. An empty result
// means no active, verified, eligible-gender member exists besides the
// requester; this is "no candidates available", not an error.
func (r *retriever) FindCandidates(ctx context.Context, strict CandidateFilter) ([]*profile.Profile, string, error) {
	for _, tier := range retrievalTiers {
		candidates, err := r.repo.FindCandidates(ctx, tier.build(strict))
		if err != nil {
			return nil, tier.name, err
		}

		if len(candidates) > 0 {
			RecordRetrievalTier(tier.name)
			if tier.name != TierStrict {
				log.Printf("No strict matches for user %d, tier %q returned %d candidates", strict.SelfID, tier.name, len(candidates))
			}
			if tier.name == TierLastResort {
				// Previously skipped members are back in the pool
				log.Printf("Last-resort tier re-introduced skipped users for user %d", strict.SelfID)
			}
			return candidates, tier.name, nil
		}
	}

	return nil, TierLastResort, nil
}
