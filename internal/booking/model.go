package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"

	AttendanceNotCheckedIn = "not_checked_in"
	AttendancePresent      = "present"
	AttendanceNoShow       = "no_show"
)

// ValidStatus reports whether s is one of the four booking states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func ValidAttendance(s string) bool {
	switch s {
	case AttendanceNotCheckedIn, AttendancePresent, AttendanceNoShow:
		return true
	}
	return false
}

type Booking struct {
	ID               uuid.UUID `db:"id" json:"id"`
	StudioID         uuid.UUID `db:"studio_id" json:"studioId"`
	SessionID        uuid.UUID `db:"session_id" json:"sessionId"`
	FirstName        string    `db:"first_name" json:"firstName"`
	LastName         string    `db:"last_name" json:"lastName"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone,omitempty"`
	Status           string    `db:"status" json:"status"`
	CancelToken      string    `db:"cancel_token" json:"-"`
	AttendanceStatus string    `db:"attendance_status" json:"attendanceStatus"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// BookingWithDetails is the denormalized read model for studio-side
// listings; session and studio context ride along with every row.
type BookingWithDetails struct {
	Booking
	SessionTitle    string    `db:"session_title" json:"sessionTitle"`
	SessionStartsAt time.Time `db:"session_starts_at" json:"sessionStartsAt"`
	SessionDuration int       `db:"session_duration" json:"sessionDuration"`
	SessionCapacity int       `db:"session_capacity" json:"-"`
	StudioName      string    `db:"studio_name" json:"studioName"`
	CancelTokenOut  string    `db:"-" json:"cancelToken,omitempty"`
}

type ListFilter struct {
	SessionID *uuid.UUID
	Email     string
	Status    string
}

type CreateBookingRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type UpdateAttendanceRequest struct {
	AttendanceStatus string `json:"attendanceStatus" binding:"required"`
}

type CreateBookingResponse struct {
	ID                  uuid.UUID `json:"id"`
	SessionID           uuid.UUID `json:"sessionId"`
	SessionTitle        string    `json:"sessionTitle"`
	SessionStartsAt     time.Time `json:"sessionStartsAt"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	Status              string    `json:"status"`
	CancelToken         string    `json:"cancelToken"`
	CancelURL           string    `json:"cancelUrl"`
	IsReturningCustomer bool      `json:"isReturningCustomer"`
	SpotsLeft           int       `json:"spotsLeft"`
	Message             string    `json:"message"`
}

type TransitionResponse struct {
	ID               uuid.UUID `json:"id"`
	Status           string    `json:"status"`
	Message          string    `json:"message"`
	AlreadyApproved  bool      `json:"alreadyApproved,omitempty"`
	AlreadyRejected  bool      `json:"alreadyRejected,omitempty"`
	AlreadyCancelled bool      `json:"alreadyCancelled,omitempty"`
}

type CancelResponse struct {
	Message          string    `json:"message"`
	SessionTitle     string    `json:"sessionTitle"`
	SessionStartsAt  time.Time `json:"sessionStartsAt"`
	Cancelled        bool      `json:"cancelled,omitempty"`
	AlreadyCancelled bool      `json:"alreadyCancelled,omitempty"`
}
