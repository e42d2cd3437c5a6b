package studio

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrStudioNotFound = errors.New("studio not found")
	ErrSlugTaken      = errors.New("a studio with this slug already exists")
)

type Service interface {
	CreateStudio(ctx context.Context, req CreateStudioRequest) (*Studio, error)
	GetStudios(ctx context.Context) ([]StudioSummary, error)
	GetStudio(ctx context.Context, id uuid.UUID) (*StudioDetail, error)
	UpdateStudio(ctx context.Context, id uuid.UUID, req UpdateStudioRequest) error
	SuspendStudio(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateStudio(ctx context.Context, req CreateStudioRequest) (*Studio, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	studio, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), slug, strings.TrimSpace(req.Timezone), req.RequiresApproval, req.AutoApproveReturning)
	if err != nil {
		if errors.Is(err, ErrSlugConflict) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return studio, nil
}

func (s *service) GetStudios(ctx context.Context) ([]StudioSummary, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetStudio(ctx context.Context, id uuid.UUID) (*StudioDetail, error) {
	studio, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, ErrStudioNotFound
	}

	sessions, err := s.repo.GetActiveSessions(ctx, id)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []SessionOverview{}
	}

	userCount, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return nil, err
	}

	return &StudioDetail{
		Studio:    *studio,
		Sessions:  sessions,
		UserCount: userCount,
	}, nil
}

func (s *service) UpdateStudio(ctx context.Context, id uuid.UUID, req UpdateStudioRequest) error {
	err := s.repo.Update(ctx, id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Timezone), req.RequiresApproval, req.AutoApproveReturning)
	if err != nil {
		if errors.Is(err, ErrStudioMissing) {
			return ErrStudioNotFound
		}
		return err
	}
	return nil
}

func (s *service) SuspendStudio(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Suspend(ctx, id)
	if err != nil {
		if errors.Is(err, ErrStudioMissing) {
			return ErrStudioNotFound
		}
		return err
	}
	return nil
}
