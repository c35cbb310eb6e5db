package checkout

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans order-status transitions out to websocket subscribers waiting on
// the payment page.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*websocket.Conn]bool)}
}

type statusUpdate struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// Broadcast pushes a status change to every subscriber of orderID.
func (h *Hub) Broadcast(orderID, status string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subs[orderID]
	if len(conns) == 0 {
		return
	}
	data, err := json.Marshal(statusUpdate{OrderID: orderID, Status: status})
	if err != nil {
		return
	}
	for conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(conns, conn)
		}
	}
}

func (h *Hub) subscribe(orderID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[orderID] == nil {
		h.subs[orderID] = make(map[*websocket.Conn]bool)
	}
	h.subs[orderID][conn] = true
}

func (h *Hub) unsubscribe(orderID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[orderID], conn)
	if len(h.subs[orderID]) == 0 {
		delete(h.subs, orderID)
	}
}

// OrderUpdates handles GET /api/orders/:orderId/updates, holding the socket
// open until the client goes away.
func (h *Handlers) OrderUpdates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderId")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("OrderUpdates upgrade error:", err)
		return
	}
	h.hub.subscribe(orderID, conn)

	go func() {
		defer func() {
			h.hub.unsubscribe(orderID, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
