package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/habrasia/yogyn/internal/studio"
)

var (
	ErrSessionNotFound = errors.New("session not found or cancelled")
	ErrStudioInactive  = errors.New("studio not found or inactive")
	ErrInvalidCapacity = errors.New("capacity must be greater than 0")
	ErrInvalidDuration = errors.New("duration must be greater than 0")
	ErrStartsInPast    = errors.New("start time must be in the future")
)

// CapacityBelowBookingsError rejects a capacity update that would strand
// already-confirmed customers.
type CapacityBelowBookingsError struct {
	Confirmed int
}

func (e *CapacityBelowBookingsError) Error() string {
	return fmt.Sprintf("cannot reduce capacity below current bookings (%d)", e.Confirmed)
}

type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
	GetSessions(ctx context.Context, studioID *uuid.UUID) ([]SessionWithAvailability, error)
	GetSession(ctx context.Context, id uuid.UUID) (*SessionDetail, error)
	UpdateSession(ctx context.Context, id uuid.UUID, req UpdateSessionRequest) error
	CancelSession(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       Repository
	studioRepo studio.Repository
}

func NewService(repo Repository, studioRepo studio.Repository) Service {
	return &service{
		repo:       repo,
		studioRepo: studioRepo,
	}
}

func (s *service) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	studioID, err := uuid.Parse(req.StudioID)
	if err != nil {
		return nil, ErrStudioInactive
	}

	if _, err := s.studioRepo.GetActiveByID(ctx, studioID); err != nil {
		return nil, ErrStudioInactive
	}

	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if !req.StartsAt.After(time.Now()) {
		return nil, ErrStartsInPast
	}

	return s.repo.Create(ctx, studioID, req.Title, req.StartsAt, req.DurationMinutes, req.Capacity)
}

func (s *service) GetSessions(ctx context.Context, studioID *uuid.UUID) ([]SessionWithAvailability, error) {
	sessions, err := s.repo.GetAllActive(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []SessionWithAvailability{}
	}
	return sessions, nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*SessionDetail, error) {
	session, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []Participant{}
	}

	return &SessionDetail{
		SessionWithAvailability: *session,
		Participants:            participants,
	}, nil
}

func (s *service) UpdateSession(ctx context.Context, id uuid.UUID, req UpdateSessionRequest) error {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil || session.Status == StatusCancelled {
		return ErrSessionNotFound
	}

	if req.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if req.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}

	confirmed, err := s.repo.CountConfirmed(ctx, id)
	if err != nil {
		return err
	}
	if req.Capacity < confirmed {
		return &CapacityBelowBookingsError{Confirmed: confirmed}
	}

	err = s.repo.Update(ctx, id, req.Title, req.StartsAt, req.DurationMinutes, req.Capacity)
	if err != nil {
		if errors.Is(err, ErrSessionMissing) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

func (s *service) CancelSession(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionMissing) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}
