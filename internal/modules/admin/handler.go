package admin

import (
	"net/http"
	"strconv"

	"eventbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/events/pending", h.ListPendingEvents)
	rg.POST("/admin/events/:id/approve", h.ApproveEvent)
	rg.POST("/admin/events/:id/reject", h.RejectEvent)
}

func (h *Handler) ListPendingEvents(c *gin.Context) {
	events, err := h.service.ListPendingEvents(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to list pending events")
		return
	}
	response.Success(c, http.StatusOK, events)
}

func (h *Handler) ApproveEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event ID")
		return
	}

	e, err := h.service.ApproveEvent(c.Request.Context(), id)
	if err != nil {
		h.writeModerationError(c, err, "Failed to approve event")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"event": e})
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *Handler) RejectEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event ID")
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	e, err := h.service.RejectEvent(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeModerationError(c, err, "Failed to reject event")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"event": e})
}

func (h *Handler) writeModerationError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	case ErrNotPending:
		response.Error(c, http.StatusConflict, "VALIDATION_ERROR", "Event is not pending moderation")
	case ErrReasonRequired:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
	default:
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", fallback)
	}
}
