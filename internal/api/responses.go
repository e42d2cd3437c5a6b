package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// CapacityErrorResponse is returned when an admission or approval would
// push a session past its capacity.
type CapacityErrorResponse struct {
	Error    string `json:"error" example:"Session is full"`
	Capacity int    `json:"capacity" example:"12"`
	Booked   int    `json:"booked" example:"12"`
	Message  string `json:"message,omitempty" example:"This session has reached maximum capacity"`
}
