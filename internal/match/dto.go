// internal/match/dto.go
package match

import "github.com/Ecera-System/ESMatromonial-sub000/internal/profile"

// DTOs for API requests/responses

type SkipRecommendationDTO struct {
	SkippedUserID    int64  `json:"skipped_user_id" validate:"required,gt=0"`
	RecommendationID *int64 `json:"recommendation_id,omitempty" validate:"omitempty,gt=0"`
}

type LikeRecommendationDTO struct {
	RecommendedUserID int64  `json:"recommended_user_id" validate:"required,gt=0"`
	RecommendationID  *int64 `json:"recommendation_id,omitempty" validate:"omitempty,gt=0"`
}

// RecommendationResult is the payload served for generate/fetch.
// RecommendationID is nil for on-demand results, which are not persisted
// and therefore not stable across refreshes.
type RecommendationResult struct {
	RecommendationID *int64                 `json:"recommendation_id,omitempty"`
	RecommendedUser  *profile.PublicProfile `json:"recommended_user"`
	MatchScore       float64                `json:"match_score"`
	MatchPercentage  int                    `json:"match_percentage"`
	IsViewed         bool                   `json:"is_viewed"`
	IsSkipped        bool                   `json:"is_skipped"`
	IsLiked          bool                   `json:"is_liked"`
	IsOnDemand       bool                   `json:"is_on_demand"`
}

// CompatibilityResult is the payload for the pairwise compatibility endpoint
type CompatibilityResult struct {
	UserID          int64   `json:"user_id"`
	MatchScore      float64 `json:"match_score"`
	MatchPercentage int     `json:"match_percentage"`
}

// noCandidatesSuggestions is returned alongside the "no recommendations"
// message so members know how to broaden their pool.
var noCandidatesSuggestions = []string{
	"Try adjusting your partner preferences to broaden your search.",
	"Complete your profile to unlock more potential matches.",
	"Consider resetting your skipped users list to see them again (if you wish).",
	"Check back later, new users are joining all the time!",
}
