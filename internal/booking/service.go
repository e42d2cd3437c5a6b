package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/habrasia/yogyn/internal/event"
	"github.com/habrasia/yogyn/internal/logger"
	"github.com/habrasia/yogyn/internal/metrics"
	"github.com/habrasia/yogyn/internal/session"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrSessionNotFound    = errors.New("session not found or cancelled")
	ErrDuplicateBooking   = errors.New("you have already booked this session")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidTransition  = errors.New("booking is not in a state that allows this action")
	ErrCancelPending      = errors.New("pending bookings cannot be cancelled by the customer")
	ErrSessionStarted     = errors.New("cannot cancel - session has already started")
	ErrInvalidToken       = errors.New("invalid cancellation link")
	ErrInvalidAttendance  = errors.New("invalid attendance status")
	ErrInvalidStatusValue = errors.New("invalid booking status")
)

// CapacityError carries the numbers the API surfaces alongside a full-
// session refusal.
type CapacityError struct {
	Capacity int
	Booked   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("session is full (%d/%d)", e.Booked, e.Capacity)
}

var validate = validator.New()

type Service interface {
	Create(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error)
	List(ctx context.Context, f ListFilter) ([]BookingWithDetails, error)
	Get(ctx context.Context, id uuid.UUID) (*BookingWithDetails, error)
	Approve(ctx context.Context, id uuid.UUID) (*TransitionResponse, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*TransitionResponse, error)
	CancelByToken(ctx context.Context, token string) (*CancelResponse, error)
	CancelByID(ctx context.Context, id uuid.UUID, reason string) (*TransitionResponse, error)
	UpdateAttendance(ctx context.Context, id uuid.UUID, attendance string) error
}

type service struct {
	repo          Repository
	sessionRepo   session.Repository
	publisher     event.Publisher
	publicBaseURL string
}

func NewService(repo Repository, sessionRepo session.Repository, publisher event.Publisher, publicBaseURL string) Service {
	return &service{
		repo:          repo,
		sessionRepo:   sessionRepo,
		publisher:     publisher,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// Create runs the admission flow: validate, check capacity and
// duplicates, decide the initial status from the studio's approval
// settings, persist, then fan out a created event.
func (s *service) Create(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if err := validate.Var(req.Email, "required,email"); err != nil {
		metrics.RecordAdmissionRejected("invalid_email")
		return nil, ErrInvalidEmail
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	sess, err := s.sessionRepo.GetActiveWithStudio(ctx, sessionID)
	if err != nil {
		metrics.RecordAdmissionRejected("session_not_found")
		return nil, ErrSessionNotFound
	}

	priorCount, err := s.repo.CountActiveForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if priorCount >= sess.Capacity {
		metrics.RecordAdmissionRejected("capacity")
		return nil, &CapacityError{Capacity: sess.Capacity, Booked: priorCount}
	}

	duplicate, err := s.repo.HasActiveBookingForEmail(ctx, sessionID, email)
	if err != nil {
		return nil, err
	}
	if duplicate {
		metrics.RecordAdmissionRejected("duplicate")
		return nil, ErrDuplicateBooking
	}

	returning, err := s.repo.IsReturningCustomer(ctx, sess.StudioID, email)
	if err != nil {
		return nil, err
	}

	status := StatusPending
	if !sess.RequiresApproval {
		status = StatusConfirmed
	} else if sess.AutoApproveReturning && returning {
		status = StatusConfirmed
	}

	booking, err := s.repo.Create(ctx, CreateParams{
		StudioID:    sess.StudioID,
		SessionID:   sessionID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		Status:      status,
		CancelToken: uuid.NewString(),
		Capacity:    sess.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateRow):
			metrics.RecordAdmissionRejected("duplicate")
			return nil, ErrDuplicateBooking
		case errors.Is(err, ErrCapacityRace):
			metrics.RecordAdmissionRejected("capacity")
			return nil, &CapacityError{Capacity: sess.Capacity, Booked: sess.Capacity}
		}
		return nil, err
	}

	metrics.RecordBookingCreated(status)

	s.publish(ctx, event.BookingCreated{
		BookingID:           booking.ID.String(),
		CreatedAt:           time.Now().UTC(),
		FirstName:           booking.FirstName,
		LastName:            booking.LastName,
		Email:               booking.Email,
		Phone:               booking.Phone,
		SessionID:           sess.ID.String(),
		SessionTitle:        sess.Title,
		SessionStartsAt:     sess.StartsAt,
		SessionDuration:     sess.DurationMinutes,
		StudioName:          sess.StudioName,
		Status:              status,
		CancelToken:         booking.CancelToken,
		IsReturningCustomer: returning,
	})

	message := "Booking request received! The studio will review it shortly."
	if status == StatusConfirmed {
		message = "Booking confirmed! You will receive a confirmation email shortly."
	}

	return &CreateBookingResponse{
		ID:                  booking.ID,
		SessionID:           sessionID,
		SessionTitle:        sess.Title,
		SessionStartsAt:     sess.StartsAt,
		FirstName:           booking.FirstName,
		LastName:            booking.LastName,
		Email:               booking.Email,
		Phone:               booking.Phone,
		Status:              status,
		CancelToken:         booking.CancelToken,
		CancelURL:           s.publicBaseURL + "/api/bookings/cancel/" + booking.CancelToken,
		IsReturningCustomer: returning,
		SpotsLeft:           sess.Capacity - priorCount - 1,
		Message:             message,
	}, nil
}

func (s *service) List(ctx context.Context, f ListFilter) ([]BookingWithDetails, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, ErrInvalidStatusValue
	}
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))

	bookings, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []BookingWithDetails{}
	}
	return bookings, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BookingWithDetails, error) {
	booking, err := s.repo.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	booking.CancelTokenOut = booking.CancelToken
	return booking, nil
}

// Approve confirms a pending booking, re-checking capacity against the
// live confirmed count: pending bookings hold no slot until approved.
func (s *service) Approve(ctx context.Context, id uuid.UUID) (*TransitionResponse, error) {
	booking, err := s.repo.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	switch booking.Status {
	case StatusConfirmed:
		return &TransitionResponse{
			ID:              booking.ID,
			Status:          StatusConfirmed,
			Message:         "Booking is already approved",
			AlreadyApproved: true,
		}, nil
	case StatusPending:
		// fall through
	default:
		return nil, ErrInvalidTransition
	}

	confirmed, err := s.repo.CountConfirmedForSession(ctx, booking.SessionID)
	if err != nil {
		return nil, err
	}
	if confirmed >= booking.SessionCapacity {
		return nil, &CapacityError{Capacity: booking.SessionCapacity, Booked: confirmed}
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusConfirmed, StatusPending); err != nil {
		if errors.Is(err, ErrNoMatchingStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.RecordBookingTransition("approved")

	s.publish(ctx, event.BookingApproved{
		BookingID:       booking.ID.String(),
		CreatedAt:       time.Now().UTC(),
		FirstName:       booking.FirstName,
		LastName:        booking.LastName,
		Email:           booking.Email,
		SessionTitle:    booking.SessionTitle,
		SessionStartsAt: booking.SessionStartsAt,
		SessionDuration: booking.SessionDuration,
		StudioName:      booking.StudioName,
		CancelToken:     booking.CancelToken,
	})

	return &TransitionResponse{
		ID:      booking.ID,
		Status:  StatusConfirmed,
		Message: "Booking approved",
	}, nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, reason string) (*TransitionResponse, error) {
	booking, err := s.repo.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	switch booking.Status {
	case StatusRejected:
		return &TransitionResponse{
			ID:              booking.ID,
			Status:          StatusRejected,
			Message:         "Booking is already rejected",
			AlreadyRejected: true,
		}, nil
	case StatusPending:
		// fall through
	default:
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusRejected, StatusPending); err != nil {
		if errors.Is(err, ErrNoMatchingStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.RecordBookingTransition("rejected")

	s.publish(ctx, event.BookingRejected{
		BookingID:       booking.ID.String(),
		CreatedAt:       time.Now().UTC(),
		FirstName:       booking.FirstName,
		LastName:        booking.LastName,
		Email:           booking.Email,
		SessionTitle:    booking.SessionTitle,
		SessionStartsAt: booking.SessionStartsAt,
		StudioName:      booking.StudioName,
		Reason:          reason,
	})

	return &TransitionResponse{
		ID:      booking.ID,
		Status:  StatusRejected,
		Message: "Booking rejected",
	}, nil
}

// CancelByToken is the unauthenticated email-link path. Only confirmed
// bookings may be self-cancelled, and only before the session starts.
func (s *service) CancelByToken(ctx context.Context, token string) (*CancelResponse, error) {
	booking, err := s.repo.GetDetailsByToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	switch booking.Status {
	case StatusCancelled:
		return &CancelResponse{
			Message:          "This booking has already been cancelled",
			SessionTitle:     booking.SessionTitle,
			SessionStartsAt:  booking.SessionStartsAt,
			AlreadyCancelled: true,
		}, nil
	case StatusPending:
		return nil, ErrCancelPending
	case StatusConfirmed:
		// fall through
	default:
		return nil, ErrInvalidTransition
	}

	if !booking.SessionStartsAt.After(time.Now()) {
		return nil, ErrSessionStarted
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, StatusCancelled, StatusConfirmed); err != nil {
		if errors.Is(err, ErrNoMatchingStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.RecordBookingTransition("cancelled_by_customer")
	s.publishCancelled(ctx, booking)

	return &CancelResponse{
		Message:         "Booking cancelled successfully",
		SessionTitle:    booking.SessionTitle,
		SessionStartsAt: booking.SessionStartsAt,
		Cancelled:       true,
	}, nil
}

// CancelByID is the studio-side forced cancellation; it works on pending
// and confirmed bookings regardless of session start time.
func (s *service) CancelByID(ctx context.Context, id uuid.UUID, reason string) (*TransitionResponse, error) {
	booking, err := s.repo.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	switch booking.Status {
	case StatusCancelled:
		return &TransitionResponse{
			ID:               booking.ID,
			Status:           StatusCancelled,
			Message:          "Booking is already cancelled",
			AlreadyCancelled: true,
		}, nil
	case StatusPending, StatusConfirmed:
		// fall through
	default:
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled, StatusPending, StatusConfirmed); err != nil {
		if errors.Is(err, ErrNoMatchingStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.RecordBookingTransition("cancelled_by_studio")
	if reason != "" {
		logger.Info("Booking cancelled by studio", "booking_id", id.String(), "reason", reason)
	}
	s.publishCancelled(ctx, booking)

	return &TransitionResponse{
		ID:      booking.ID,
		Status:  StatusCancelled,
		Message: "Booking cancelled",
	}, nil
}

func (s *service) UpdateAttendance(ctx context.Context, id uuid.UUID, attendance string) error {
	if !ValidAttendance(attendance) {
		return ErrInvalidAttendance
	}

	err := s.repo.UpdateAttendance(ctx, id, attendance)
	if err != nil {
		if errors.Is(err, ErrBookingGoneOrCancelled) {
			return ErrBookingNotFound
		}
		return err
	}

	return nil
}

func (s *service) publishCancelled(ctx context.Context, booking *BookingWithDetails) {
	s.publish(ctx, event.BookingCancelled{
		BookingID:       booking.ID.String(),
		CreatedAt:       time.Now().UTC(),
		FirstName:       booking.FirstName,
		LastName:        booking.LastName,
		Email:           booking.Email,
		SessionTitle:    booking.SessionTitle,
		SessionStartsAt: booking.SessionStartsAt,
		StudioName:      booking.StudioName,
	})
}

// publish is fire-and-forget: the store write is the durable fact and a
// lost notification never fails the request.
func (s *service) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.Errorf("Failed to publish %s: %v", e.EventType(), err)
	}
}
