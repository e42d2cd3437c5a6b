package event

import (
	"time"
)

const (
	TypeBookingCreated   = "BookingCreated"
	TypeBookingApproved  = "BookingApproved"
	TypeBookingRejected  = "BookingRejected"
	TypeBookingCancelled = "BookingCancelled"
)

// Event is the closed set of booking notifications. Each variant carries
// everything the consumer needs to compose an email, so the notify side
// never goes back to the store.
type Event interface {
	EventType() string
	sealed()
}

type BookingCreated struct {
	BookingID string    `json:"bookingId"`
	CreatedAt time.Time `json:"createdAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	SessionID       string    `json:"sessionId"`
	SessionTitle    string    `json:"sessionTitle"`
	SessionStartsAt time.Time `json:"sessionStartsAt"`
	SessionDuration int       `json:"sessionDuration"`

	StudioName string `json:"studioName"`

	Status              string `json:"status"`
	CancelToken         string `json:"cancelToken"`
	IsReturningCustomer bool   `json:"isReturningCustomer"`
}

type BookingApproved struct {
	BookingID string    `json:"bookingId"`
	CreatedAt time.Time `json:"createdAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	SessionTitle    string    `json:"sessionTitle"`
	SessionStartsAt time.Time `json:"sessionStartsAt"`
	SessionDuration int       `json:"sessionDuration"`

	StudioName  string `json:"studioName"`
	CancelToken string `json:"cancelToken"`
}

type BookingRejected struct {
	BookingID string    `json:"bookingId"`
	CreatedAt time.Time `json:"createdAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	SessionTitle    string    `json:"sessionTitle"`
	SessionStartsAt time.Time `json:"sessionStartsAt"`

	StudioName string `json:"studioName"`
	Reason     string `json:"reason,omitempty"`
}

type BookingCancelled struct {
	BookingID string    `json:"bookingId"`
	CreatedAt time.Time `json:"createdAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	SessionTitle    string    `json:"sessionTitle"`
	SessionStartsAt time.Time `json:"sessionStartsAt"`

	StudioName string `json:"studioName"`
}

func (BookingCreated) EventType() string   { return TypeBookingCreated }
func (BookingApproved) EventType() string  { return TypeBookingApproved }
func (BookingRejected) EventType() string  { return TypeBookingRejected }
func (BookingCancelled) EventType() string { return TypeBookingCancelled }

func (BookingCreated) sealed()   {}
func (BookingApproved) sealed()  {}
func (BookingRejected) sealed()  {}
func (BookingCancelled) sealed() {}
