package studio

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, name, slug, timezone string, requiresApproval, autoApproveReturning bool) (*Studio, error)
	GetAll(ctx context.Context) ([]StudioSummary, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*Studio, error)
	GetActiveSessions(ctx context.Context, studioID uuid.UUID) ([]SessionOverview, error)
	CountUsers(ctx context.Context, studioID uuid.UUID) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, name, timezone string, requiresApproval, autoApproveReturning bool) error
	Suspend(ctx context.Context, id uuid.UUID) error
}
