package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/utils"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// startHubServer upgrades every request and registers the connection.
func startHubServer(t *testing.T, hub *notify.Hub) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Register(ws, models.RoleMesonera)
	}))
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	return conn
}

func TestBroadcastReachesEveryLiveConnection(t *testing.T) {
	utils.InitLogger()
	hub := notify.NewHub()
	server := startHubServer(t, hub)
	defer server.Close()

	clients := make([]*websocket.Conn, 3)
	for i := range clients {
		clients[i] = dial(t, server)
		defer clients[i].Close()
	}

	// Wait for all registrations
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 3, hub.ClientCount())

	tableID := uint(5)
	hub.BroadcastAttentionRequest(models.AttentionRequest{
		ID:      42,
		TableID: &tableID,
		Message: "El cliente solicita atención",
	})

	for _, client := range clients {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := client.ReadMessage()
		assert.NoError(t, err)

		var msg notify.Message
		assert.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, notify.EventAttentionRequest, msg.Event)

		data := msg.Data.(map[string]interface{})
		assert.Equal(t, float64(42), data["id"])
		assert.Equal(t, float64(5), data["table_id"])
		assert.Equal(t, "El cliente solicita atención", data["message"])
		assert.Equal(t, true, data["vibrate"])
	}
}

// A session's keep-alive reply and the fan-out writes share one socket, so
// both must be serialized through the hub. This drives pings against a
// stream of concurrent broadcasts and checks every frame arrives intact.
func TestKeepAliveRepliesSerializeWithBroadcasts(t *testing.T) {
	utils.InitLogger()
	hub := notify.NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(ws, models.RoleMesonera)
		for {
			_, msg, err := ws.ReadMessage()
			if err != nil {
				break
			}
			if string(msg) == "ping" {
				if err := hub.SendText(ws, []byte(`{"type":"pong"}`)); err != nil {
					break
				}
			}
		}
		hub.Unregister(ws)
	}))
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 1, hub.ClientCount())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.BroadcastOrderUpdate(models.Order{ID: uint(i + 1)})
		}
	}()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	pongs := 0
	for pongs < 20 {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
			t.Fatalf("client write failed: %v", err)
		}
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				t.Fatalf("client read failed: %v", err)
			}
			if string(raw) == `{"type":"pong"}` {
				pongs++
				break
			}
			// Interleaved broadcast frames must still be whole messages
			var m notify.Message
			assert.NoError(t, json.Unmarshal(raw, &m))
			assert.Equal(t, notify.EventOrderUpdate, m.Event)
		}
	}
	<-done
	assert.Equal(t, 20, pongs)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	utils.InitLogger()
	hub := notify.NewHub()

	// The hub only needs a *websocket.Conn; the client end of a dialed
	// socket works fine for exercising the set bookkeeping.
	echo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer echo.Close()

	conn := dial(t, echo)
	hub.Register(conn, models.RolePOS)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(conn)
	assert.Equal(t, 0, hub.ClientCount())

	// Second unregister is a no-op
	hub.Unregister(conn)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestBroadcastDropsDeadConnections(t *testing.T) {
	utils.InitLogger()
	hub := notify.NewHub()
	server := startHubServer(t, hub)
	defer server.Close()

	alive := dial(t, server)
	defer alive.Close()
	dead := dial(t, server)

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 2, hub.ClientCount())

	// Kill one client underneath the hub
	dead.Close()
	time.Sleep(50 * time.Millisecond)

	// Writes to the closed socket fail (possibly only on the second
	// attempt, once the close has propagated) and the hub sheds it.
	for i := 0; i < 5 && hub.ClientCount() > 1; i++ {
		hub.Broadcast(notify.Message{Event: notify.EventOrderUpdate, Data: i})
		time.Sleep(50 * time.Millisecond)
	}
	assert.Equal(t, 1, hub.ClientCount())

	// The surviving client received at least the first broadcast
	alive.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := alive.ReadMessage()
	assert.NoError(t, err)
}
