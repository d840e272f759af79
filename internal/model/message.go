package model

import (
	"sort"
	"strings"
	"time"
)

// MessageType tags a chat message as plain text or a game invite.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageInvite MessageType = "invite"
)

// Message is one entry in a chat pair's append-only feed.
type Message struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	ChatID    string      `json:"chatId" bson:"chatId"`
	SenderID  string      `json:"senderId" bson:"senderId"`
	Text      string      `json:"text" bson:"text"`
	Type      MessageType `json:"type" bson:"type"`
	GameType  GameType    `json:"gameType,omitempty" bson:"gameType,omitempty"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

// ChatIDFor derives the deterministic pair key for two user IDs: the
// sorted IDs joined with an underscore. Both orderings map to the same
// chat.
func ChatIDFor(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}

// ChatMembers splits a chat pair key back into its two user IDs.
func ChatMembers(chatID string) (string, string) {
	parts := strings.SplitN(chatID, "_", 2)
	if len(parts) != 2 {
		return chatID, ""
	}
	return parts[0], parts[1]
}

// IsChatMember reports whether userID is one of the two participants of
// the chat.
func IsChatMember(chatID, userID string) bool {
	a, b := ChatMembers(chatID)
	return userID != "" && (userID == a || userID == b)
}

// OtherMember returns the chat participant that is not userID.
func OtherMember(chatID, userID string) string {
	a, b := ChatMembers(chatID)
	if userID == a {
		return b
	}
	return a
}
