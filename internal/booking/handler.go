package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/habrasia/yogyn/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create booking
// @Description  Books a spot on a session. Depending on the studio's approval settings the booking starts out confirmed or pending.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.CreateBookingResponse
// @Failure      400 {object} api.CapacityErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var capErr *CapacityError
		switch {
		case errors.Is(err, ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid email address"})
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found or cancelled"})
		case errors.As(err, &capErr):
			c.JSON(http.StatusBadRequest, api.CapacityErrorResponse{
				Error:    "Session is full",
				Capacity: capErr.Capacity,
				Booked:   capErr.Booked,
				Message:  "This session has reached maximum capacity",
			})
		case errors.Is(err, ErrDuplicateBooking):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You have already booked this session"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary      List bookings
// @Description  Returns denormalized bookings newest first, optionally filtered.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        sessionId query string false "Filter by session ID"
// @Param        email query string false "Filter by customer email"
// @Param        status query string false "Filter by booking status"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	var filter ListFilter

	if raw := c.Query("sessionId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
			return
		}
		filter.SessionID = &id
	}
	filter.Email = c.Query("email")
	filter.Status = c.Query("status")

	bookings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidStatusValue) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking status"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Get booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Success      200 {object} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/bookings/{id} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	booking, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// @Summary      Approve booking
// @Description  Confirms a pending booking if the session still has room. Re-approving a confirmed booking is a no-op.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Success      200 {object} booking.TransitionResponse
// @Failure      400 {object} api.CapacityErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings/{id}/approve [post]
func (h *Handler) ApproveBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		var capErr *CapacityError
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.As(err, &capErr):
			c.JSON(http.StatusBadRequest, api.CapacityErrorResponse{
				Error:    "Session is full",
				Capacity: capErr.Capacity,
				Booked:   capErr.Booked,
			})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Only pending bookings can be approved"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to approve booking"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Reject booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body booking.RejectBookingRequest false "Optional reason"
// @Success      200 {object} booking.TransitionResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings/{id}/reject [post]
func (h *Handler) RejectBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req RejectBookingRequest
	_ = c.ShouldBindJSON(&req)

	resp, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Only pending bookings can be rejected"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to reject booking"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Cancel booking by token
// @Description  Customer self-service cancellation via the unguessable link from the confirmation email. GET so plain email clients can follow it.
// @Tags         bookings
// @Produce      json
// @Param        token path string true "Cancellation token"
// @Success      200 {object} booking.CancelResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings/cancel/{token} [get]
func (h *Handler) CancelByToken(c *gin.Context) {
	token := c.Param("token")

	resp, err := h.service.CancelByToken(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Invalid cancellation link"})
		case errors.Is(err, ErrCancelPending):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Pending bookings cannot be cancelled - contact the studio"})
		case errors.Is(err, ErrSessionStarted):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot cancel - session has already started"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "This booking cannot be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Cancel booking
// @Description  Studio-side forced cancellation with an optional reason.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body booking.CancelBookingRequest false "Optional reason"
// @Success      200 {object} booking.TransitionResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings/{id} [delete]
func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	resp, err := h.service.CancelByID(c.Request.Context(), id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Rejected bookings cannot be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Update attendance
// @Description  Sets the attendance status of a non-cancelled booking.
// @Tags         bookings
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body booking.UpdateAttendanceRequest true "Attendance payload"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings/{id}/attendance [patch]
func (h *Handler) UpdateAttendance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.UpdateAttendance(c.Request.Context(), id, req.AttendanceStatus); err != nil {
		switch {
		case errors.Is(err, ErrInvalidAttendance):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid attendance status"})
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found or cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update attendance"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
