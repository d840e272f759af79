package model

import "time"

// User is a registered chat participant. The ID is the opaque identity
// used everywhere else (chat pair keys, hostId, turn).
type User struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Username      string    `json:"username" bson:"username"`
	PasswordHash  string    `json:"-" bson:"passwordHash"`
	DisplayName   string    `json:"displayName" bson:"displayName"`
	AvatarURL     string    `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	StatusMessage string    `json:"statusMessage,omitempty" bson:"statusMessage,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	LastSeenAt    time.Time `json:"lastSeenAt" bson:"lastSeenAt"`
}

// LobbyUser is a user as shown in the lobby, with live presence.
type LobbyUser struct {
	User
	Online bool `json:"online"`
}
