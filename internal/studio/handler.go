package studio

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

// @Summary      List studios
// @Description  Returns all active studios with session and user counts.
// @Tags         studios
// @Produce      json
// @Success      200 {array} studio.StudioSummary
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/studios [get]
func (h *Handler) ListStudios(c *gin.Context) {
	studios, err := h.service.GetStudios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch studios"})
		return
	}

	c.JSON(http.StatusOK, studios)
}

// @Summary      Get studio
// @Description  Returns one active studio with its upcoming sessions and availability.
// @Tags         studios
// @Produce      json
// @Param        id path string true "Studio ID"
// @Success      200 {object} studio.StudioDetail
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/studios/{id} [get]
func (h *Handler) GetStudio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid studio ID"})
		return
	}

	detail, err := h.service.GetStudio(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrStudioNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Studio not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch studio"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// @Summary      Create studio
// @Tags         studios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body studio.CreateStudioRequest true "Studio payload"
// @Success      201 {object} studio.Studio
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/studios [post]
func (h *Handler) CreateStudio(c *gin.Context) {
	var req CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	studio, err := h.service.CreateStudio(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "A studio with this slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create studio"})
		return
	}

	c.JSON(http.StatusCreated, studio)
}

// @Summary      Update studio
// @Tags         studios
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Studio ID"
// @Param        request body studio.UpdateStudioRequest true "Studio payload"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/studios/{id} [put]
func (h *Handler) UpdateStudio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid studio ID"})
		return
	}

	var req UpdateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.UpdateStudio(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, ErrStudioNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Studio not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update studio"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      Suspend studio
// @Description  Soft-deletes a studio by marking it suspended.
// @Tags         studios
// @Security     BearerAuth
// @Param        id path string true "Studio ID"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/studios/{id} [delete]
func (h *Handler) SuspendStudio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid studio ID"})
		return
	}

	if err := h.service.SuspendStudio(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrStudioNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Studio not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to suspend studio"})
		return
	}

	c.Status(http.StatusNoContent)
}
