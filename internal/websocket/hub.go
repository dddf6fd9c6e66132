package websocket

import (
	"encoding/json"

	"github.com/proximahr/proximahr-backend/pkg/logger"
)

// message targets a single user's open connections.
type message struct {
	userID  uint
	payload []byte
}

// Hub tracks connected clients per user and pushes notification
// payloads to every open connection of a user.
type Hub struct {
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	send       chan message
}

// NewHub creates a notification hub. Run must be started in its own
// goroutine before clients connect.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan message, 256),
	}
}

// Run processes register, unregister and send events until the
// process exits.
func (h *Hub) Run() {
	log := logger.Get()

	for {
		select {
		case client := <-h.register:
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			log.Debug("websocket client connected", map[string]interface{}{
				"user_id":     client.userID,
				"connections": len(h.clients[client.userID]),
			})

		case client := <-h.unregister:
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.sendCh)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}

		case msg := <-h.send:
			for client := range h.clients[msg.userID] {
				select {
				case client.sendCh <- msg.payload:
				default:
					// slow consumer, drop the connection
					delete(h.clients[msg.userID], client)
					close(client.sendCh)
				}
			}
		}
	}
}

// SendToUser serializes the payload and delivers it to all of the
// user's open connections. Users without connections are skipped.
func (h *Hub) SendToUser(userID uint, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Warn("failed to marshal websocket payload", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	select {
	case h.send <- message{userID: userID, payload: data}:
	default:
		logger.Get().Warn("websocket send queue full, dropping message", map[string]interface{}{
			"user_id": userID,
		})
	}
}
