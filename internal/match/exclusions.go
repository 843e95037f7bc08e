// internal/match/exclusions.go
// Skipped-user exclusion set: Postgres is the source of truth, Redis holds
// a per-user set cache so candidate retrieval avoids a table scan on the
// hot path. Cache failures degrade to Postgres reads.

package match

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

type ExclusionStore interface {
	Add(ctx context.Context, userID, skippedUserID int64) error
	List(ctx context.Context, userID int64) ([]int64, error)
}

type exclusionStore struct {
	db       *sqlx.DB
	redis    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewExclusionStore(db *sqlx.DB, rdb *redis.Client, cacheTTL time.Duration) ExclusionStore {
	return &exclusionStore{db: db, redis: rdb, cacheTTL: cacheTTL}
}

func exclusionKey(userID int64) string {
	return fmt.Sprintf("match:skipped:%d", userID)
}

// Add records the skip. Idempotent; re-skipping an already skipped member
// is a no-op.
func (s *exclusionStore) Add(ctx context.Context, userID, skippedUserID int64) error {
	query := `
		INSERT INTO skipped_users (user_id, skipped_user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, skipped_user_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, userID, skippedUserID); err != nil {
		return err
	}

	if s.redis != nil {
		key := exclusionKey(userID)
		if err := s.redis.SAdd(ctx, key, skippedUserID).Err(); err != nil {
			log.Printf("Failed to cache skipped user for %d: %v", userID, err)
			return nil
		}
		s.redis.Expire(ctx, key, s.cacheTTL)
	}
	return nil
}

// List returns the member's full exclusion set, cache first.
func (s *exclusionStore) List(ctx context.Context, userID int64) ([]int64, error) {
	if s.redis != nil {
		if ids, ok := s.listFromCache(ctx, userID); ok {
			return ids, nil
		}
	}

	var ids []int64
	query := `SELECT skipped_user_id FROM skipped_users WHERE user_id = $1`
	if err := s.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, err
	}

	if s.redis != nil && len(ids) > 0 {
		s.fillCache(ctx, userID, ids)
	}
	return ids, nil
}

func (s *exclusionStore) listFromCache(ctx context.Context, userID int64) ([]int64, bool) {
	members, err := s.redis.SMembers(ctx, exclusionKey(userID)).Result()
	if err != nil || len(members) == 0 {
		return nil, false
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func (s *exclusionStore) fillCache(ctx context.Context, userID int64, ids []int64) {
	key := exclusionKey(userID)
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := s.redis.SAdd(ctx, key, members...).Err(); err != nil {
		log.Printf("Failed to warm exclusion cache for %d: %v", userID, err)
		return
	}
	s.redis.Expire(ctx, key, s.cacheTTL)
}
