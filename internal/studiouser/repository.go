package studiouser

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, studioID uuid.UUID, email, passwordHash string) (*StudioUser, error) {
	query := `
		INSERT INTO studio_users (id, studio_id, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, studio_id, email, password_hash, created_at
	`

	var user StudioUser
	err := r.db.GetContext(ctx, &user, query, uuid.New(), studioID, strings.ToLower(email), passwordHash)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*StudioUser, error) {
	query := `
		SELECT id, studio_id, email, password_hash, created_at
		FROM studio_users
		WHERE email = $1
	`

	var user StudioUser
	err := r.db.GetContext(ctx, &user, query, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM studio_users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, strings.ToLower(email))
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) StudioIsActive(ctx context.Context, studioID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM studios WHERE id = $1 AND status = 'active')`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, studioID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
