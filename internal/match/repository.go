// internal/match/repository.go

package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

var (
	// ErrDuplicateRecommendation means a recommendation already exists for
	// this user and day; callers should refetch the winning row.
	ErrDuplicateRecommendation = errors.New("recommendation already exists for today")

	ErrRecommendationNotFound = errors.New("recommendation not found")
)

type Repository interface {
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]*profile.Profile, error)
	GetTodayRecommendation(ctx context.Context, userID int64) (*Recommendation, error)
	HasTodayRecommendation(ctx context.Context, userID int64) (bool, error)
	CreateRecommendation(ctx context.Context, rec *Recommendation) error
	MarkViewed(ctx context.Context, recommendationID int64) error
	MarkSkipped(ctx context.Context, userID, skippedUserID int64, recommendationID *int64) error
	MarkLiked(ctx context.Context, userID, likedUserID int64, recommendationID *int64) error
	GetActiveUserIDs(ctx context.Context, daysActive int) ([]int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// FindCandidates executes one tier's eligibility filter. Only active,
// verified members of the requested gender are ever returned, regardless
// of the optional predicates.
func (r *postgresRepository) FindCandidates(ctx context.Context, filter CandidateFilter) ([]*profile.Profile, error) {
	conditions := []string{
		"account_status = 'active'",
		"is_verified = TRUE",
		"gender = ?",
		"id <> ?",
	}
	args := []interface{}{filter.Gender, filter.SelfID}

	if len(filter.ExcludeIDs) > 0 {
		conditions = append(conditions, "id <> ALL(?)")
		args = append(args, pq.Array(filter.ExcludeIDs))
	}
	if filter.BornAfter != nil {
		conditions = append(conditions, "date_of_birth >= ?")
		args = append(args, *filter.BornAfter)
	}
	if filter.BornBefore != nil {
		conditions = append(conditions, "date_of_birth <= ?")
		args = append(args, *filter.BornBefore)
	}
	if filter.Country != nil {
		conditions = append(conditions, "country = ?")
		args = append(args, *filter.Country)
	}
	if filter.State != nil {
		conditions = append(conditions, "state = ?")
		args = append(args, *filter.State)
	}
	if filter.Religion != nil {
		conditions = append(conditions, "religion = ?")
		args = append(args, *filter.Religion)
	}
	if filter.Caste != nil {
		conditions = append(conditions, "caste = ?")
		args = append(args, *filter.Caste)
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY last_active DESC NULLS LAST LIMIT ?`,
		profile.Columns, strings.Join(conditions, " AND "))
	args = append(args, filter.Limit)
	query = r.db.Rebind(query)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*profile.Profile
	for rows.Next() {
		var p profile.Profile
		if err := rows.StructScan(&p); err != nil {
			return nil, err
		}
		p.NormalizePreferences()
		candidates = append(candidates, &p)
	}
	return candidates, rows.Err()
}

func (r *postgresRepository) GetTodayRecommendation(ctx context.Context, userID int64) (*Recommendation, error) {
	var rec Recommendation
	query := `
		SELECT id, user_id, recommended_user_id, match_score, match_percentage,
		       is_viewed, is_skipped, is_liked, recommendation_date, created_at
		FROM daily_recommendations
		WHERE user_id = $1 AND recommendation_date = CURRENT_DATE`

	err := r.db.GetContext(ctx, &rec, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrRecommendationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRepository) HasTodayRecommendation(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM daily_recommendations
		WHERE user_id = $1 AND recommendation_date = CURRENT_DATE)`

	err := r.db.GetContext(ctx, &exists, query, userID)
	return exists, err
}

// CreateRecommendation inserts today's record for the user. The unique
// (user_id, recommendation_date) constraint makes concurrent generation
// converge on a single winner; losers get ErrDuplicateRecommendation and
// should refetch.
func (r *postgresRepository) CreateRecommendation(ctx context.Context, rec *Recommendation) error {
	query := `
		INSERT INTO daily_recommendations
			(user_id, recommended_user_id, match_score, match_percentage, recommendation_date)
		VALUES ($1, $2, $3, $4, CURRENT_DATE)
		ON CONFLICT (user_id, recommendation_date) DO NOTHING
		RETURNING id, recommendation_date, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		rec.UserID, rec.RecommendedUserID, rec.MatchScore, rec.MatchPercentage,
	).Scan(&rec.ID, &rec.RecommendationDate, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return ErrDuplicateRecommendation
	}
	return err
}

func (r *postgresRepository) MarkViewed(ctx context.Context, recommendationID int64) error {
	query := `UPDATE daily_recommendations SET is_viewed = TRUE WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, recommendationID)
	return err
}

// MarkSkipped flags the recommendation of skippedUserID as skipped. With a
// recommendation ID the update targets that record; otherwise it falls back
// to today's row for the pair. Idempotent; a repeat skip is a no-op.
func (r *postgresRepository) MarkSkipped(ctx context.Context, userID, skippedUserID int64, recommendationID *int64) error {
	if recommendationID != nil {
		query := `
			UPDATE daily_recommendations SET is_skipped = TRUE
			WHERE id = $1 AND user_id = $2`

		_, err := r.db.ExecContext(ctx, query, *recommendationID, userID)
		return err
	}

	query := `
		UPDATE daily_recommendations SET is_skipped = TRUE
		WHERE user_id = $1 AND recommended_user_id = $2 AND recommendation_date = CURRENT_DATE`

	_, err := r.db.ExecContext(ctx, query, userID, skippedUserID)
	return err
}

func (r *postgresRepository) MarkLiked(ctx context.Context, userID, likedUserID int64, recommendationID *int64) error {
	if recommendationID != nil {
		query := `
			UPDATE daily_recommendations SET is_liked = TRUE
			WHERE id = $1 AND user_id = $2`

		_, err := r.db.ExecContext(ctx, query, *recommendationID, userID)
		return err
	}

	query := `
		UPDATE daily_recommendations SET is_liked = TRUE
		WHERE user_id = $1 AND recommended_user_id = $2 AND recommendation_date = CURRENT_DATE`

	_, err := r.db.ExecContext(ctx, query, userID, likedUserID)
	return err
}

// GetActiveUserIDs lists active verified members seen within the window,
// for the nightly batch run.
func (r *postgresRepository) GetActiveUserIDs(ctx context.Context, daysActive int) ([]int64, error) {
	var ids []int64
	query := `
		SELECT id FROM users
		WHERE account_status = 'active' AND is_verified = TRUE
		  AND last_active > NOW() - ($1 * INTERVAL '1 day')
		ORDER BY id`

	err := r.db.SelectContext(ctx, &ids, query, daysActive)
	return ids, err
}
