package model

import "testing"

func TestChatIDFor(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"already sorted", "alice", "bob", "alice_bob"},
		{"reversed", "bob", "alice", "alice_bob"},
		{"opaque ids", "zz9", "aa1", "aa1_zz9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChatIDFor(tt.a, tt.b); got != tt.want {
				t.Fatalf("ChatIDFor(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestChatMembership(t *testing.T) {
	chatID := ChatIDFor("alice", "bob")

	if !IsChatMember(chatID, "alice") || !IsChatMember(chatID, "bob") {
		t.Fatal("participants not recognized as members")
	}
	if IsChatMember(chatID, "mallory") {
		t.Fatal("stranger recognized as member")
	}
	if IsChatMember(chatID, "") {
		t.Fatal("empty identity recognized as member")
	}

	if got := OtherMember(chatID, "alice"); got != "bob" {
		t.Fatalf("OtherMember(alice) = %q, want bob", got)
	}
	if got := OtherMember(chatID, "bob"); got != "alice" {
		t.Fatalf("OtherMember(bob) = %q, want alice", got)
	}
}
