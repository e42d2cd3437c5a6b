package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrSessionMissing = errors.New("session not found")

const availabilityColumns = `
	s.id,
	s.studio_id,
	s.title,
	s.starts_at,
	s.duration_minutes,
	s.capacity,
	s.status,
	s.created_at,
	st.name AS studio_name,
	st.slug AS studio_slug,
	COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS booked_count,
	s.capacity - COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS spots_left,
	COUNT(b.id) FILTER (WHERE b.status = 'confirmed') >= s.capacity AS is_full`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, studioID uuid.UUID, title string, startsAt time.Time, durationMinutes, capacity int) (*Session, error) {
	query := `
		INSERT INTO sessions (id, studio_id, title, starts_at, duration_minutes, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
		RETURNING id, studio_id, title, starts_at, duration_minutes, capacity, status, created_at
	`

	var session Session
	err := r.db.GetContext(ctx, &session, query, uuid.New(), studioID, title, startsAt, durationMinutes, capacity)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *repository) GetAllActive(ctx context.Context, studioID *uuid.UUID) ([]SessionWithAvailability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM sessions s
		JOIN studios st ON s.studio_id = st.id
		LEFT JOIN bookings b ON b.session_id = s.id
		WHERE s.status = 'active' AND ($1::uuid IS NULL OR s.studio_id = $1)
		GROUP BY s.id, st.name, st.slug
		ORDER BY s.starts_at
	`

	var sessions []SessionWithAvailability
	err := r.db.SelectContext(ctx, &sessions, query, studioID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) GetActiveByID(ctx context.Context, id uuid.UUID) (*SessionWithAvailability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM sessions s
		JOIN studios st ON s.studio_id = st.id
		LEFT JOIN bookings b ON b.session_id = s.id
		WHERE s.id = $1 AND s.status = 'active'
		GROUP BY s.id, st.name, st.slug
	`

	var session SessionWithAvailability
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *repository) GetActiveWithStudio(ctx context.Context, id uuid.UUID) (*SessionWithStudio, error) {
	query := `
		SELECT
			s.id,
			s.studio_id,
			s.title,
			s.starts_at,
			s.duration_minutes,
			s.capacity,
			s.status,
			s.created_at,
			st.name AS studio_name,
			st.requires_approval,
			st.auto_approve_returning
		FROM sessions s
		JOIN studios st ON s.studio_id = st.id
		WHERE s.id = $1 AND s.status = 'active'
	`

	var session SessionWithStudio
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `
		SELECT id, studio_id, title, starts_at, duration_minutes, capacity, status, created_at
		FROM sessions
		WHERE id = $1
	`

	var session Session
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *repository) GetParticipants(ctx context.Context, id uuid.UUID) ([]Participant, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, attendance_status, created_at
		FROM bookings
		WHERE session_id = $1 AND status = 'confirmed'
		ORDER BY created_at
	`

	var participants []Participant
	err := r.db.SelectContext(ctx, &participants, query, id)
	if err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *repository) CountConfirmed(ctx context.Context, id uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE session_id = $1 AND status = 'confirmed'`

	var count int
	err := r.db.GetContext(ctx, &count, query, id)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, title string, startsAt time.Time, durationMinutes, capacity int) error {
	query := `
		UPDATE sessions
		SET title = $2, starts_at = $3, duration_minutes = $4, capacity = $5
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.db.ExecContext(ctx, query, id, title, startsAt, durationMinutes, capacity)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSessionMissing
	}

	return nil
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE sessions SET status = 'cancelled' WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSessionMissing
	}

	return nil
}
