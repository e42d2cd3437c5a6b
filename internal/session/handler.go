package session

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

// @Summary      List sessions
// @Description  Returns active sessions annotated with live availability.
// @Tags         sessions
// @Produce      json
// @Param        studioId query string false "Filter by studio ID"
// @Success      200 {array} session.SessionWithAvailability
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	var studioID *uuid.UUID
	if raw := c.Query("studioId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid studio ID"})
			return
		}
		studioID = &id
	}

	sessions, err := h.service.GetSessions(c.Request.Context(), studioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// @Summary      Get session
// @Description  Returns one active session with availability and confirmed participants.
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} session.SessionDetail
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	detail, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch session"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// @Summary      Create session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body session.CreateSessionRequest true "Session payload"
// @Success      201 {object} session.Session
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStudioInactive):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Studio not found or inactive"})
		case errors.Is(err, ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Capacity must be greater than 0"})
		case errors.Is(err, ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Duration must be greater than 0"})
		case errors.Is(err, ErrStartsInPast):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Start time must be in the future"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create session"})
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// @Summary      Update session
// @Description  Updates a session; capacity may not drop below the confirmed booking count.
// @Tags         sessions
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        request body session.UpdateSessionRequest true "Session payload"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/sessions/{id} [put]
func (h *Handler) UpdateSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.UpdateSession(c.Request.Context(), id, req); err != nil {
		var capErr *CapacityBelowBookingsError
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found or cancelled"})
		case errors.As(err, &capErr):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: capErr.Error()})
		case errors.Is(err, ErrInvalidCapacity), errors.Is(err, ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update session"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      Cancel session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/sessions/{id} [delete]
func (h *Handler) CancelSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	if err := h.service.CancelSession(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel session"})
		return
	}

	c.Status(http.StatusNoContent)
}
