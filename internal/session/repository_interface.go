package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, studioID uuid.UUID, title string, startsAt time.Time, durationMinutes, capacity int) (*Session, error)
	GetAllActive(ctx context.Context, studioID *uuid.UUID) ([]SessionWithAvailability, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*SessionWithAvailability, error)
	GetActiveWithStudio(ctx context.Context, id uuid.UUID) (*SessionWithStudio, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	GetParticipants(ctx context.Context, id uuid.UUID) ([]Participant, error)
	CountConfirmed(ctx context.Context, id uuid.UUID) (int, error)
	Update(ctx context.Context, id uuid.UUID, title string, startsAt time.Time, durationMinutes, capacity int) error
	Cancel(ctx context.Context, id uuid.UUID) error
}
