package notify

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/utils"
)

// Event types pushed to connected staff sessions
const (
	EventAttentionRequest  = "attention_request"
	EventAttentionReminder = "attention_reminder"
	EventOrderUpdate       = "order_update"
	EventTableUpdate       = "table_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the live staff connections. Connects, disconnects and
// broadcasts happen concurrently from independent sessions, so the set is
// guarded by a mutex. Delivery is best-effort, at-most-once per connection;
// a connection that fails a write is dropped from the set.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

// Register -> adds a staff connection to the live set.
func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// Unregister -> removes a connection and closes it. Idempotent.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// ClientCount -> number of live connections.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// SendText writes one frame to a single connection, serialized against
// Broadcast under the same mutex. gorilla/websocket allows at most one
// concurrent writer per connection, so every write to a registered socket
// must go through the hub. A failed write drops the connection.
func (h *Hub) SendText(conn *websocket.Conn, data []byte) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		if role, ok := h.clients[conn]; ok {
			utils.InfoLogger.Printf("dropping %s connection after failed write: %v", role, err)
			delete(h.clients, conn)
		}
		conn.Close()
		return err
	}
	return nil
}

// Broadcast -> fans a message out to every live connection. No retry, no
// queue: a connection that refuses the write is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("error marshaling hub message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.InfoLogger.Printf("dropping %s connection after failed write: %v", role, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// BroadcastAttentionRequest -> pushes a just-persisted attention request to
// every connected staff session. The vibrate flag tells the staff frontend
// to buzz the device.
func (h *Hub) BroadcastAttentionRequest(req models.AttentionRequest) {
	h.Broadcast(Message{
		Event: EventAttentionRequest,
		Data: map[string]interface{}{
			"id":       req.ID,
			"table_id": req.TableID,
			"message":  req.Message,
			"vibrate":  true,
		},
	})
}

// BroadcastOrderUpdate -> order status/payment changes for staff screens.
func (h *Hub) BroadcastOrderUpdate(order models.Order) {
	h.Broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastTableUpdate -> table created/edited/deactivated.
func (h *Hub) BroadcastTableUpdate(table models.Table) {
	h.Broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

// BroadcastAttentionReminder -> periodic nudge while requests sit
// unhandled.
func (h *Hub) BroadcastAttentionReminder(pending int64) {
	h.Broadcast(Message{
		Event: EventAttentionReminder,
		Data:  map[string]interface{}{"pending": pending},
	})
}
