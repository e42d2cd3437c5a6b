package studio

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrStudioMissing = errors.New("studio not found")
	ErrSlugConflict  = errors.New("slug already taken")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, slug, timezone string, requiresApproval, autoApproveReturning bool) (*Studio, error) {
	query := `
		INSERT INTO studios (id, name, slug, timezone, requires_approval, auto_approve_returning, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
		RETURNING id, name, slug, timezone, requires_approval, auto_approve_returning, status, created_at
	`

	var studio Studio
	err := r.db.GetContext(ctx, &studio, query, uuid.New(), name, slug, timezone, requiresApproval, autoApproveReturning)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	return &studio, nil
}

func (r *repository) GetAll(ctx context.Context) ([]StudioSummary, error) {
	query := `
		SELECT
			st.id,
			st.name,
			st.slug,
			st.timezone,
			st.requires_approval,
			st.auto_approve_returning,
			st.status,
			st.created_at,
			(SELECT COUNT(*) FROM sessions s WHERE s.studio_id = st.id AND s.status = 'active') AS session_count,
			(SELECT COUNT(*) FROM studio_users su WHERE su.studio_id = st.id) AS user_count
		FROM studios st
		WHERE st.status = 'active'
		ORDER BY st.name
	`

	var studios []StudioSummary
	err := r.db.SelectContext(ctx, &studios, query)
	if err != nil {
		return nil, err
	}

	return studios, nil
}

func (r *repository) GetActiveByID(ctx context.Context, id uuid.UUID) (*Studio, error) {
	query := `
		SELECT id, name, slug, timezone, requires_approval, auto_approve_returning, status, created_at
		FROM studios
		WHERE id = $1 AND status = 'active'
	`

	var studio Studio
	err := r.db.GetContext(ctx, &studio, query, id)
	if err != nil {
		return nil, err
	}

	return &studio, nil
}

func (r *repository) GetActiveSessions(ctx context.Context, studioID uuid.UUID) ([]SessionOverview, error) {
	query := `
		SELECT
			s.id,
			s.title,
			s.starts_at,
			s.duration_minutes,
			s.capacity,
			COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS booked_count,
			s.capacity - COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS spots_left,
			COUNT(b.id) FILTER (WHERE b.status = 'confirmed') >= s.capacity AS is_full
		FROM sessions s
		LEFT JOIN bookings b ON b.session_id = s.id
		WHERE s.studio_id = $1 AND s.status = 'active'
		GROUP BY s.id
		ORDER BY s.starts_at
	`

	var sessions []SessionOverview
	err := r.db.SelectContext(ctx, &sessions, query, studioID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) CountUsers(ctx context.Context, studioID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM studio_users WHERE studio_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, studioID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM studios WHERE LOWER(slug) = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, slug)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, name, timezone string, requiresApproval, autoApproveReturning bool) error {
	query := `
		UPDATE studios
		SET name = $2, timezone = $3, requires_approval = $4, auto_approve_returning = $5
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.db.ExecContext(ctx, query, id, name, timezone, requiresApproval, autoApproveReturning)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrStudioMissing
	}

	return nil
}

func (r *repository) Suspend(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE studios SET status = 'suspended' WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrStudioMissing
	}

	return nil
}
