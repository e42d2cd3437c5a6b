package studiouser

import (
	"time"

	"github.com/google/uuid"
)

type StudioUser struct {
	ID           uuid.UUID `db:"id" json:"id"`
	StudioID     uuid.UUID `db:"studio_id" json:"studioId"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type RegisterRequest struct {
	StudioID string `json:"studioId" binding:"required,uuid"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         StudioUser `json:"user"`
}
