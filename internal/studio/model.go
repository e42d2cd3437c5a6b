package studio

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type Studio struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Slug                 string    `db:"slug" json:"slug"`
	Timezone             string    `db:"timezone" json:"timezone"`
	RequiresApproval     bool      `db:"requires_approval" json:"requiresApproval"`
	AutoApproveReturning bool      `db:"auto_approve_returning" json:"autoApproveReturning"`
	Status               string    `db:"status" json:"status"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
}

type StudioSummary struct {
	Studio
	SessionCount int `db:"session_count" json:"sessionCount"`
	UserCount    int `db:"user_count" json:"userCount"`
}

// SessionOverview is the availability read model embedded in a studio
// detail response. The frontend gets spotsLeft/isFull precomputed.
type SessionOverview struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	StartsAt        time.Time `db:"starts_at" json:"startsAt"`
	DurationMinutes int       `db:"duration_minutes" json:"durationMinutes"`
	Capacity        int       `db:"capacity" json:"capacity"`
	BookedCount     int       `db:"booked_count" json:"bookedCount"`
	SpotsLeft       int       `db:"spots_left" json:"spotsLeft"`
	IsFull          bool      `db:"is_full" json:"isFull"`
}

type StudioDetail struct {
	Studio
	Sessions  []SessionOverview `json:"sessions"`
	UserCount int               `json:"userCount"`
}

type CreateStudioRequest struct {
	Name                 string `json:"name" binding:"required"`
	Slug                 string `json:"slug" binding:"required"`
	Timezone             string `json:"timezone" binding:"required"`
	RequiresApproval     bool   `json:"requiresApproval"`
	AutoApproveReturning bool   `json:"autoApproveReturning"`
}

type UpdateStudioRequest struct {
	Name                 string `json:"name" binding:"required"`
	Timezone             string `json:"timezone" binding:"required"`
	RequiresApproval     bool   `json:"requiresApproval"`
	AutoApproveReturning bool   `json:"autoApproveReturning"`
}
