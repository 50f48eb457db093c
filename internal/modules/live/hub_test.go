package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialSubscriber spins up a websocket endpoint that subscribes the server
// side of the connection to the hub, then dials it.
func dialSubscriber(t *testing.T, hub *Hub, eventID int64) (*websocket.Conn, func()) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Subscribe(eventID, conn)
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return client, func() {
		_ = client.Close()
		srv.Close()
	}
}

func waitForSubscribers(t *testing.T, hub *Hub, eventID int64, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(eventID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("subscriber count for event %d never reached %d", eventID, want)
}

func TestPublishAvailability(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client, cleanup := dialSubscriber(t, hub, 7)
	defer cleanup()
	waitForSubscribers(t, hub, 7, 1)

	hub.PublishAvailability(7, 42)

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var update AvailabilityUpdate
	require.NoError(t, client.ReadJSON(&update))
	assert.Equal(t, int64(7), update.EventID)
	assert.Equal(t, 42, update.AvailableTickets)
}

func TestPublishAvailability_OnlyMatchingEvent(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	other, cleanup := dialSubscriber(t, hub, 8)
	defer cleanup()
	waitForSubscribers(t, hub, 8, 1)

	hub.PublishAvailability(7, 42)

	_ = other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var update AvailabilityUpdate
	err := other.ReadJSON(&update)
	assert.Error(t, err, "subscriber of another event must not receive the update")
}

func TestPublishAvailability_ConcurrentBroadcasters(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client, cleanup := dialSubscriber(t, hub, 7)
	defer cleanup()
	waitForSubscribers(t, hub, 7, 1)

	// confirmations for the same event land in parallel; every broadcast
	// must reach the subscriber as an intact frame
	const broadcasts = 32
	var wg sync.WaitGroup
	for i := 0; i < broadcasts; i++ {
		wg.Add(1)
		go func(remaining int) {
			defer wg.Done()
			hub.PublishAvailability(7, remaining)
		}(i)
	}
	wg.Wait()

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < broadcasts; i++ {
		var update AvailabilityUpdate
		require.NoError(t, client.ReadJSON(&update))
		assert.Equal(t, int64(7), update.EventID)
	}
	assert.Equal(t, 1, hub.SubscriberCount(7), "no subscriber may be dropped by a healthy write")
}

func TestUnsubscribe(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_, cleanup := dialSubscriber(t, hub, 7)
	defer cleanup()
	waitForSubscribers(t, hub, 7, 1)

	hub.mutex.RLock()
	var serverConn *websocket.Conn
	for conn := range hub.subscribers[7] {
		serverConn = conn
	}
	hub.mutex.RUnlock()

	hub.Unsubscribe(7, serverConn)
	assert.Equal(t, 0, hub.SubscriberCount(7))
}

func TestClose_DropsAllSubscribers(t *testing.T) {
	hub := NewHub()

	_, cleanupA := dialSubscriber(t, hub, 7)
	defer cleanupA()
	_, cleanupB := dialSubscriber(t, hub, 8)
	defer cleanupB()
	waitForSubscribers(t, hub, 7, 1)
	waitForSubscribers(t, hub, 8, 1)

	hub.Close()

	assert.Equal(t, 0, hub.SubscriberCount(7))
	assert.Equal(t, 0, hub.SubscriberCount(8))
}
