package match

import (
	"time"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

// Recommendation is the persisted daily pairing of a member and their
// top-ranked candidate. At most one row exists per (user, day); only the
// three interaction flags change after creation.
type Recommendation struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             int64     `json:"user_id" db:"user_id"`
	RecommendedUserID  int64     `json:"recommended_user_id" db:"recommended_user_id"`
	MatchScore         float64   `json:"match_score" db:"match_score"`
	MatchPercentage    int       `json:"match_percentage" db:"match_percentage"`
	IsViewed           bool      `json:"is_viewed" db:"is_viewed"`
	IsSkipped          bool      `json:"is_skipped" db:"is_skipped"`
	IsLiked            bool      `json:"is_liked" db:"is_liked"`
	RecommendationDate time.Time `json:"recommendation_date" db:"recommendation_date"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`

	// Joined candidate projection
	RecommendedUser *profile.PublicProfile `json:"recommended_user,omitempty"`
}

// ScoredCandidate pairs a candidate profile with its compatibility score
type ScoredCandidate struct {
	Profile *profile.Profile `json:"profile"`
	Score   float64          `json:"score"`
}
