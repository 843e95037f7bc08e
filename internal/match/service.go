// internal/match/service.go

package match

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrNoCandidates means every retrieval tier, including last resort,
	// produced an empty pool.
	ErrNoCandidates = errors.New("no candidates available")
)

// Notifier delivers interest notifications. Implemented by the
// notification service; nil-safe wiring is the caller's concern.
type Notifier interface {
	SendInterestNotification(ctx context.Context, recipientID int64, liker *profile.Profile) error
}

type Service interface {
	GetDailyRecommendation(ctx context.Context, userID int64) (*RecommendationResult, error)
	RegenerateRecommendation(ctx context.Context, userID int64) (*RecommendationResult, error)
	SkipRecommendation(ctx context.Context, userID int64, dto *SkipRecommendationDTO) error
	LikeRecommendation(ctx context.Context, userID int64, dto *LikeRecommendationDTO) error
	GetCompatibility(ctx context.Context, userID, otherUserID int64) (*CompatibilityResult, error)
	GenerateDailyRecommendations(ctx context.Context) error
}

type Config struct {
	CandidatePoolLimit   int
	ActiveUserWindowDays int
}

type service struct {
	repo       Repository
	profiles   profile.Repository
	exclusions ExclusionStore
	retriever  *retriever
	notifier   Notifier
	poolLimit  int
	activeDays int
}

func NewService(repo Repository, profiles profile.Repository, exclusions ExclusionStore, notifier Notifier, cfg Config) Service {
	return &service{
		repo:       repo,
		profiles:   profiles,
		exclusions: exclusions,
		retriever:  newRetriever(repo),
		notifier:   notifier,
		poolLimit:  cfg.CandidatePoolLimit,
		activeDays: cfg.ActiveUserWindowDays,
	}
}

// GetDailyRecommendation returns today's recommendation for the member,
// generating and persisting it on first request of the day. Fetching an
// existing record marks it viewed; a freshly generated one is returned
// with all interaction flags false.
func (s *service) GetDailyRecommendation(ctx context.Context, userID int64) (*RecommendationResult, error) {
	// Fetching a recommendation counts as activity for the recency factor
	if err := s.profiles.TouchLastActive(ctx, userID); err != nil {
		log.Printf("Failed to touch last_active for user %d: %v", userID, err)
	}

	existing, err := s.repo.GetTodayRecommendation(ctx, userID)
	if err == nil {
		return s.serveExisting(ctx, existing)
	}
	if !errors.Is(err, ErrRecommendationNotFound) {
		return nil, err
	}

	rec, candidate, err := s.generateAndPersist(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		// Lost the insert race; serve the winner's row
		winner, err := s.repo.GetTodayRecommendation(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.serveExisting(ctx, winner)
	}

	RecordRecommendation("generated")
	RecordMatchScore(rec.MatchScore)

	recID := rec.ID
	return &RecommendationResult{
		RecommendationID: &recID,
		RecommendedUser:  candidate.Public(),
		MatchScore:       rec.MatchScore,
		MatchPercentage:  rec.MatchPercentage,
	}, nil
}

// RegenerateRecommendation computes a fresh on-demand recommendation
// without touching today's persisted record. The result carries no
// recommendation ID and is not stable across calls.
func (s *service) RegenerateRecommendation(ctx context.Context, userID int64) (*RecommendationResult, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	excludeIDs, err := s.exclusions.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Also exclude today's persisted pick so on-demand shows someone new
	if existing, err := s.repo.GetTodayRecommendation(ctx, userID); err == nil {
		excludeIDs = append(excludeIDs, existing.RecommendedUserID)
	}

	top, err := s.findBestCandidate(ctx, user, excludeIDs)
	if err != nil {
		return nil, err
	}

	RecordRecommendation("on_demand")
	RecordMatchScore(top.Score)

	return &RecommendationResult{
		RecommendedUser: top.Profile.Public(),
		MatchScore:      top.Score,
		MatchPercentage: MatchPercentage(top.Score),
		IsOnDemand:      true,
	}, nil
}

// SkipRecommendation flags the recommendation as skipped and then adds the
// skipped user to the exclusion set. The exclusion insert is best effort;
// a failure there leaves the flag in place. Idempotent.
func (s *service) SkipRecommendation(ctx context.Context, userID int64, dto *SkipRecommendationDTO) error {
	if err := s.repo.MarkSkipped(ctx, userID, dto.SkippedUserID, dto.RecommendationID); err != nil {
		return err
	}

	if err := s.exclusions.Add(ctx, userID, dto.SkippedUserID); err != nil {
		log.Printf("Failed to add user %d to exclusion set of user %d: %v", dto.SkippedUserID, userID, err)
	}

	RecordFeedback("skip")
	return nil
}

// LikeRecommendation flags today's recommendation as liked and notifies
// the liked member. Notification delivery is best effort.
func (s *service) LikeRecommendation(ctx context.Context, userID int64, dto *LikeRecommendationDTO) error {
	if err := s.repo.MarkLiked(ctx, userID, dto.RecommendedUserID, dto.RecommendationID); err != nil {
		return err
	}

	if s.notifier != nil {
		liker, err := s.loadUser(ctx, userID)
		if err != nil {
			log.Printf("Failed to load liker profile %d for notification: %v", userID, err)
		} else if err := s.notifier.SendInterestNotification(ctx, dto.RecommendedUserID, liker); err != nil {
			log.Printf("Failed to send interest notification to user %d: %v", dto.RecommendedUserID, err)
		}
	}

	RecordFeedback("like")
	return nil
}

// GetCompatibility scores the pair from the requester's perspective
func (s *service) GetCompatibility(ctx context.Context, userID, otherUserID int64) (*CompatibilityResult, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.loadUser(ctx, otherUserID)
	if err != nil {
		return nil, err
	}

	score := Score(user, other)
	return &CompatibilityResult{
		UserID:          otherUserID,
		MatchScore:      score,
		MatchPercentage: MatchPercentage(score),
	}, nil
}

// GenerateDailyRecommendations is the batch run: one persisted
// recommendation for every recently active member who does not already
// have one today. Per-user failures are logged and skipped.
func (s *service) GenerateDailyRecommendations(ctx context.Context) error {
	start := time.Now()
	userIDs, err := s.repo.GetActiveUserIDs(ctx, s.activeDays)
	if err != nil {
		return err
	}

	generated, failed := 0, 0
	for _, userID := range userIDs {
		exists, err := s.repo.HasTodayRecommendation(ctx, userID)
		if err != nil {
			log.Printf("Batch: failed to check recommendation for user %d: %v", userID, err)
			failed++
			continue
		}
		if exists {
			continue
		}

		rec, _, err := s.generateAndPersist(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrNoCandidates) {
				continue
			}
			log.Printf("Batch: failed to generate recommendation for user %d: %v", userID, err)
			failed++
			continue
		}
		if rec != nil {
			RecordRecommendation("batch")
			RecordMatchScore(rec.MatchScore)
			generated++
		}
	}

	log.Printf("Daily recommendation batch: %d users, %d generated, %d failed in %v",
		len(userIDs), generated, failed, time.Since(start))
	return nil
}

// serveExisting returns an already persisted recommendation and marks it
// viewed. The flags in the response reflect the state before this view.
func (s *service) serveExisting(ctx context.Context, rec *Recommendation) (*RecommendationResult, error) {
	candidate, err := s.profiles.GetByID(ctx, rec.RecommendedUserID)
	if err != nil {
		return nil, err
	}

	if !rec.IsViewed {
		if err := s.repo.MarkViewed(ctx, rec.ID); err != nil {
			log.Printf("Failed to mark recommendation %d viewed: %v", rec.ID, err)
		}
	}

	RecordRecommendation("cached")

	recID := rec.ID
	return &RecommendationResult{
		RecommendationID: &recID,
		RecommendedUser:  candidate.Public(),
		MatchScore:       rec.MatchScore,
		MatchPercentage:  rec.MatchPercentage,
		IsViewed:         rec.IsViewed,
		IsSkipped:        rec.IsSkipped,
		IsLiked:          rec.IsLiked,
	}, nil
}

// generateAndPersist computes and stores today's recommendation. Returns
// (nil, nil, nil) when another request won the insert race.
func (s *service) generateAndPersist(ctx context.Context, userID int64) (*Recommendation, *profile.Profile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	excludeIDs, err := s.exclusions.List(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	top, err := s.findBestCandidate(ctx, user, excludeIDs)
	if err != nil {
		return nil, nil, err
	}

	rec := &Recommendation{
		UserID:            userID,
		RecommendedUserID: top.Profile.ID,
		MatchScore:        top.Score,
		MatchPercentage:   MatchPercentage(top.Score),
	}
	if err := s.repo.CreateRecommendation(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicateRecommendation) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return rec, top.Profile, nil
}

// findBestCandidate runs the tier cascade and ranks the resulting pool
func (s *service) findBestCandidate(ctx context.Context, user *profile.Profile, excludeIDs []int64) (*ScoredCandidate, error) {
	filter := BuildFilter(user, excludeIDs, s.poolLimit)

	candidates, _, err := s.retriever.FindCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		RecordNoCandidates()
		return nil, ErrNoCandidates
	}

	ranked := ScoreAndRank(user, candidates)
	return ranked[0], nil
}

func (s *service) loadUser(ctx context.Context, userID int64) (*profile.Profile, error) {
	user, err := s.profiles.GetByID(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
