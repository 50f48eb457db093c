package live

import (
	"context"
	"net/http"
	"strconv"

	"eventbook/internal/domain"
	"eventbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type EventReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

type Handler struct {
	hub      *Hub
	events   EventReader
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, events EventReader) *Handler {
	return &Handler{
		hub:    hub,
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/:id/availability/live", h.Stream)
}

// Stream upgrades the connection and pushes the current availability
// immediately, then every change until the client disconnects.
func (h *Handler) Stream(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event ID")
		return
	}

	event, err := h.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	// the initial snapshot goes through the subscriber's write lock so it
	// cannot interleave with a broadcast that fires during the handshake
	sub := h.hub.Subscribe(eventID, conn)
	_ = sub.writeJSON(AvailabilityUpdate{EventID: event.ID, AvailableTickets: event.AvailableTickets})

	// reader loop exists only to detect disconnects
	go func() {
		defer h.hub.Unsubscribe(eventID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
