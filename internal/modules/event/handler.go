package event

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
	rg.GET("/events", h.ListEvents)
	rg.GET("/events/:id", h.GetEvent)
}

func (h *Handler) RegisterHostRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.CreateEvent)
	rg.PUT("/events/:id", h.UpdateEvent)
	rg.DELETE("/events/:id", h.DeleteEvent)
	rg.GET("/events/mine", h.ListHostEvents)
}

func (h *Handler) ListEvents(c *gin.Context) {
	var q ListEventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	events, err := h.service.ListPublic(c.Request.Context(), q)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date filter, expected YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to list events")
		return
	}

	response.Success(c, http.StatusOK, events)
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event ID")
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to get event")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"event": e})
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")

	e, err := h.service.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		if err == ErrNotHost {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only hosts can create events")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to create event")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": e})
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")

	e, err := h.service.UpdateEvent(c.Request.Context(), userID, id, req)
	if err != nil {
		h.writeOwnershipError(c, err, "Failed to update event")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"event": e})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event ID")
		return
	}

	userID := c.GetInt64("user_id")

	if err := h.service.DeleteEvent(c.Request.Context(), userID, id); err != nil {
		h.writeOwnershipError(c, err, "Failed to delete event")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListHostEvents(c *gin.Context) {
	userID := c.GetInt64("user_id")

	events, err := h.service.ListHostEvents(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotHost {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only hosts can access this")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to list events")
		return
	}

	response.Success(c, http.StatusOK, events)
}

func (h *Handler) writeOwnershipError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	case ErrNotHost, ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own events")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event fields")
	default:
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", fallback)
	}
}
