package session

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

type Session struct {
	ID              uuid.UUID `db:"id" json:"id"`
	StudioID        uuid.UUID `db:"studio_id" json:"studioId"`
	Title           string    `db:"title" json:"title"`
	StartsAt        time.Time `db:"starts_at" json:"startsAt"`
	DurationMinutes int       `db:"duration_minutes" json:"durationMinutes"`
	Capacity        int       `db:"capacity" json:"capacity"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// SessionWithAvailability is the listing read model: booked/spots/isFull
// are computed from live Confirmed counts so clients do no math.
type SessionWithAvailability struct {
	Session
	StudioName  string `db:"studio_name" json:"studioName"`
	StudioSlug  string `db:"studio_slug" json:"studioSlug"`
	BookedCount int    `db:"booked_count" json:"bookedCount"`
	SpotsLeft   int    `db:"spots_left" json:"spotsLeft"`
	IsFull      bool   `db:"is_full" json:"isFull"`
}

type Participant struct {
	ID               uuid.UUID `db:"id" json:"id"`
	FirstName        string    `db:"first_name" json:"firstName"`
	LastName         string    `db:"last_name" json:"lastName"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone,omitempty"`
	AttendanceStatus string    `db:"attendance_status" json:"attendanceStatus"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

type SessionDetail struct {
	SessionWithAvailability
	Participants []Participant `json:"participants"`
}

// SessionWithStudio carries the approval flags the booking admission
// flow needs, denormalized from the owning studio.
type SessionWithStudio struct {
	Session
	StudioName           string `db:"studio_name" json:"studioName"`
	RequiresApproval     bool   `db:"requires_approval" json:"requiresApproval"`
	AutoApproveReturning bool   `db:"auto_approve_returning" json:"autoApproveReturning"`
}

type CreateSessionRequest struct {
	StudioID        string    `json:"studioId" binding:"required,uuid"`
	Title           string    `json:"title" binding:"required"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	Capacity        int       `json:"capacity" binding:"required"`
}

type UpdateSessionRequest struct {
	Title           string    `json:"title" binding:"required"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	Capacity        int       `json:"capacity" binding:"required"`
}
