package ws

import (
	"encoding/json"
	"sync"

	"crm-console/internal/model"
	"crm-console/pkg/logger"

	"github.com/gofiber/contrib/websocket"
)

const broadcastBuffer = 64

// Hub fans record change events out to every connected console.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	quit       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		quit:       make(chan struct{}),
		log:        logger.New("WS"),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Info("console connected (%d online)", h.Count())

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()

		case <-h.quit:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Stop ends Run and closes every connection.
func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Notify queues a change event. When the queue is full the event is dropped;
// consoles refetch on their next view anyway.
func (h *Hub) Notify(event model.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("encode change event: %v", err)
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		h.log.Warn("broadcast queue full, dropped %s %s %s", event.Resource, event.Action, event.RecordID)
	}
}

// Serve registers conn and blocks until the client goes away. It returns
// at once when the hub has been stopped.
func (h *Hub) Serve(conn *websocket.Conn) {
	if !h.register(conn) {
		return
	}
	defer h.unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.quit:
	}
}
