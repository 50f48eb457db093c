package host

import (
	"net/http"

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
	rg.POST("/hosts/register", h.Register)
	rg.GET("/hosts/profile", h.GetProfile)
	rg.GET("/hosts/dashboard", h.Dashboard)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")

	hostProfile, err := h.service.Register(c.Request.Context(), userID, req)
	if err != nil {
		if err == ErrAlreadyHost {
			response.Error(c, http.StatusConflict, "HOST_EXISTS", "You already have a host profile")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to create host profile")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"host": hostProfile})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	hostProfile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "HOST_NOT_FOUND", "Host profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to get host profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"host": hostProfile})
}

func (h *Handler) Dashboard(c *gin.Context) {
	userID := c.GetInt64("user_id")

	dash, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "HOST_NOT_FOUND", "Host profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to load dashboard")
		return
	}

	response.Success(c, http.StatusOK, dash)
}
