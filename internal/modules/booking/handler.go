package booking

import (
	"net/http"
	"strconv"

	"eventbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	// public gateway key id, included in create responses so the client
	// can open the checkout widget
	checkoutKey string
}

func NewHandler(service *Service, checkoutKey string) *Handler {
	return &Handler{service: service, checkoutKey: checkoutKey}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.POST("/bookings/verify-payment", h.VerifyPayment)
	rg.GET("/bookings/my-bookings", h.GetMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.GetAllBookings)
}

// CreateBooking godoc
// @Summary      Reserve tickets for an event
// @Description  Creates a payment order and a pending booking
// @Tags         Bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateBookingRequest true "Reservation payload"
// @Success      201 {object} map[string]any
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid input")
		return
	}

	userID := c.GetInt64("user_id")

	b, order, err := h.service.CreateReservation(c.Request.Context(), userID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid input")
		case ErrEventNotFound:
			response.Error(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
		case ErrInsufficientTickets:
			response.Error(c, http.StatusBadRequest, "INSUFFICIENT_TICKETS", "Not enough tickets available")
		default:
			response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to create booking")
		}
		return
	}

	order.Key = h.checkoutKey
	response.Success(c, http.StatusCreated, gin.H{
		"booking": b,
		"order":   order,
	})
}

// VerifyPayment godoc
// @Summary      Confirm a gateway payment
// @Description  Verifies the payment signature and confirms the booking (idempotent)
// @Tags         Bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body VerifyPaymentRequest true "Payment confirmation payload"
// @Success      200 {object} map[string]any
// @Router       /bookings/verify-payment [post]
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "MISSING_PARAMETERS", "Missing required parameters")
		return
	}

	b, err := h.service.ConfirmPayment(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrMissingParameters:
			response.Error(c, http.StatusBadRequest, "MISSING_PARAMETERS", "Missing required parameters")
		case ErrInvalidSignature:
			response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Invalid payment signature")
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case ErrInsufficientTickets:
			response.Error(c, http.StatusBadRequest, "INSUFFICIENT_TICKETS", "Not enough tickets available")
		default:
			response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to verify payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid booking ID")
		return
	}

	actorID := c.GetInt64("user_id")
	actorRole := c.GetString("role")

	b, err := h.service.GetBooking(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "UNAUTHORIZED_ACCESS", "Not authorized to view this booking")
		default:
			response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to get booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")

	bookings, err := h.service.ListMyBookings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) GetAllBookings(c *gin.Context) {
	bookings, err := h.service.ListAllBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, bookings)
}
