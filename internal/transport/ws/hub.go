package ws

import (
	"encoding/json"
	"log"
	"sync"

	"vibechat/internal/service"
)

// Message is the WebSocket envelope format.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per chat pair. It is the push side
// of the session store: every accepted write fans out the new snapshot
// to both subscribers.
type Hub struct {
	// chatID -> userID -> connection
	chatConns map[string]map[string]*Connection

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one participant's WebSocket connection to a
// chat.
type Connection struct {
	ChatID string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to fan out. Empty ToUser means both
// participants.
type BroadcastMessage struct {
	ChatID  string
	ToUser  string
	Message *Message
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	h := &Hub{
		chatConns:  make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.chatConns[conn.ChatID] == nil {
				h.chatConns[conn.ChatID] = make(map[string]*Connection)
			}
			h.chatConns[conn.ChatID][conn.UserID] = conn
			log.Printf("User %s connected to chat %s", conn.UserID, conn.ChatID)
			h.notifyPeer(conn.ChatID, conn.UserID, service.EventPeerOnline)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.chatConns[conn.ChatID]; ok {
				if existing, ok := conns[conn.UserID]; ok && existing == conn {
					delete(conns, conn.UserID)
					close(conn.Send)
					log.Printf("User %s disconnected from chat %s", conn.UserID, conn.ChatID)
					h.notifyPeer(conn.ChatID, conn.UserID, service.EventPeerOffline)
				}
				if len(conns) == 0 {
					delete(h.chatConns, conn.ChatID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if conns, ok := h.chatConns[msg.ChatID]; ok {
				for userID, conn := range conns {
					if msg.ToUser != "" && msg.ToUser != userID {
						continue
					}
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToChat sends a message to both chat participants (implements
// service.Broadcaster).
func (h *Hub) BroadcastToChat(chatID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ChatID: chatID,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
}

// BroadcastToUser sends a message to one participant of a chat
// (implements service.Broadcaster).
func (h *Hub) BroadcastToUser(chatID, userID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ChatID: chatID,
		ToUser: userID,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
}

// notifyPeer tells the other side of the chat that userID came or went.
// Caller holds the lock.
func (h *Hub) notifyPeer(chatID, userID, event string) {
	conns, ok := h.chatConns[chatID]
	if !ok {
		return
	}
	data, _ := json.Marshal(&Message{
		Type:    event,
		Payload: json.RawMessage(`{"userId":"` + userID + `"}`),
	})
	for peerID, conn := range conns {
		if peerID == userID {
			continue
		}
		select {
		case conn.Send <- data:
		default:
		}
	}
}
