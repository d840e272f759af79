package service

// Event types pushed to WebSocket subscribers.
const (
	EventGameUpdate    = "game_update"
	EventMessageNew    = "message_new"
	EventCallUpdate    = "call_update"
	EventCallCandidate = "call_candidate"
	EventCallEnded     = "call_ended"
	EventPeerOnline    = "peer_online"
	EventPeerOffline   = "peer_offline"
)

// Broadcaster interface for WebSocket fanout (avoids import cycle with
// the transport layer).
type Broadcaster interface {
	BroadcastToChat(chatID string, msgType string, payload interface{})
	BroadcastToUser(chatID, userID string, msgType string, payload interface{})
}
