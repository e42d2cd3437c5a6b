package booking

import (
	"context"

	"github.com/google/uuid"
)

// CreateParams is everything the admission flow decided before insert.
type CreateParams struct {
	StudioID    uuid.UUID
	SessionID   uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Status      string
	CancelToken string
	Capacity    int
}

type Repository interface {
	Create(ctx context.Context, p CreateParams) (*Booking, error)
	GetDetailsByID(ctx context.Context, id uuid.UUID) (*BookingWithDetails, error)
	GetDetailsByToken(ctx context.Context, token string) (*BookingWithDetails, error)
	List(ctx context.Context, f ListFilter) ([]BookingWithDetails, error)
	CountActiveForSession(ctx context.Context, sessionID uuid.UUID) (int, error)
	CountConfirmedForSession(ctx context.Context, sessionID uuid.UUID) (int, error)
	HasActiveBookingForEmail(ctx context.Context, sessionID uuid.UUID, email string) (bool, error)
	IsReturningCustomer(ctx context.Context, studioID uuid.UUID, email string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to string, from ...string) error
	UpdateAttendance(ctx context.Context, id uuid.UUID, attendance string) error
}
