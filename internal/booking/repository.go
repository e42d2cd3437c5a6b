package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrDuplicateRow           = errors.New("active booking already exists for this session and email")
	ErrCapacityRace           = errors.New("session filled up before the booking was stored")
	ErrBookingMissing         = errors.New("booking not found")
	ErrNoMatchingStatus       = errors.New("booking not in an expected status")
	ErrBookingGoneOrCancelled = errors.New("booking not found or cancelled")
)

const detailColumns = `
	b.id,
	b.studio_id,
	b.session_id,
	b.first_name,
	b.last_name,
	b.email,
	b.phone,
	b.status,
	b.cancel_token,
	b.attendance_status,
	b.created_at,
	s.title AS session_title,
	s.starts_at AS session_starts_at,
	s.duration_minutes AS session_duration,
	s.capacity AS session_capacity,
	st.name AS studio_name`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts only while the session still has room: the count check
// runs inside the INSERT statement so two concurrent admissions cannot
// both land. The partial unique index on (session_id, email) backs up the
// duplicate pre-check the same way.
func (r *repository) Create(ctx context.Context, p CreateParams) (*Booking, error) {
	query := `
		INSERT INTO bookings (id, studio_id, session_id, first_name, last_name, email, phone, status, cancel_token, attendance_status)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, 'not_checked_in'
		WHERE (SELECT COUNT(*) FROM bookings WHERE session_id = $3 AND status IN ('pending', 'confirmed')) < $10
		RETURNING id, studio_id, session_id, first_name, last_name, email, phone, status, cancel_token, attendance_status, created_at
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query,
		uuid.New(), p.StudioID, p.SessionID, p.FirstName, p.LastName, p.Email, p.Phone, p.Status, p.CancelToken, p.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCapacityRace
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateRow
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetDetailsByID(ctx context.Context, id uuid.UUID) (*BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN sessions s ON b.session_id = s.id
		JOIN studios st ON b.studio_id = st.id
		WHERE b.id = $1
	`

	var booking BookingWithDetails
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingMissing
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetDetailsByToken(ctx context.Context, token string) (*BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN sessions s ON b.session_id = s.id
		JOIN studios st ON b.studio_id = st.id
		WHERE b.cancel_token = $1
	`

	var booking BookingWithDetails
	err := r.db.GetContext(ctx, &booking, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingMissing
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN sessions s ON b.session_id = s.id
		JOIN studios st ON b.studio_id = st.id
		WHERE 1=1`

	args := []interface{}{}
	if f.SessionID != nil {
		args = append(args, *f.SessionID)
		query += fmt.Sprintf(" AND b.session_id = $%d", len(args))
	}
	if f.Email != "" {
		args = append(args, f.Email)
		query += fmt.Sprintf(" AND b.email = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	query += " ORDER BY b.created_at DESC"

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) CountActiveForSession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE session_id = $1 AND status IN ('pending', 'confirmed')`

	var count int
	err := r.db.GetContext(ctx, &count, query, sessionID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) CountConfirmedForSession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE session_id = $1 AND status = 'confirmed'`

	var count int
	err := r.db.GetContext(ctx, &count, query, sessionID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) HasActiveBookingForEmail(ctx context.Context, sessionID uuid.UUID, email string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE session_id = $1 AND email = $2 AND status IN ('pending', 'confirmed')
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, sessionID, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) IsReturningCustomer(ctx context.Context, studioID uuid.UUID, email string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE studio_id = $1 AND email = $2 AND status = 'confirmed' AND attendance_status = 'present'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, studioID, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, to string, from ...string) error {
	query := `UPDATE bookings SET status = $2 WHERE id = $1 AND status = ANY($3)`

	result, err := r.db.ExecContext(ctx, query, id, to, pq.Array(from))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNoMatchingStatus
	}

	return nil
}

func (r *repository) UpdateAttendance(ctx context.Context, id uuid.UUID, attendance string) error {
	query := `UPDATE bookings SET attendance_status = $2 WHERE id = $1 AND status != 'cancelled'`

	result, err := r.db.ExecContext(ctx, query, id, attendance)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingGoneOrCancelled
	}

	return nil
}
