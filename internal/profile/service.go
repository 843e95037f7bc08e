// internal/profile/service.go

package profile

import (
	"context"
)

type Service interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	GetPublicProfile(ctx context.Context, userID int64) (*PublicProfile, error)
	GetCompletion(ctx context.Context, userID int64) (*Completion, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) GetPublicProfile(ctx context.Context, userID int64) (*PublicProfile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Public(), nil
}

func (s *service) GetCompletion(ctx context.Context, userID int64) (*Completion, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.CalculateCompletion(), nil
}
