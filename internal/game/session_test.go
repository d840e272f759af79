package game

import (
	"errors"
	"testing"
	"time"

	"vibechat/internal/model"
)

func TestNewSessionInitialFields(t *testing.T) {
	chatID := model.ChatIDFor(hostID, guestID)
	now := time.Now()

	tests := []struct {
		name     string
		gameType model.GameType
		check    func(*testing.T, *model.GameSession)
	}{
		{
			name:     "tictactoe",
			gameType: model.GameTicTacToe,
			check: func(t *testing.T, s *model.GameSession) {
				if len(s.Board) != 9 {
					t.Fatalf("expected 9 cells, got %d", len(s.Board))
				}
				for i, cell := range s.Board {
					if cell != "" {
						t.Fatalf("cell %d not empty: %q", i, cell)
					}
				}
				if s.Turn != hostID {
					t.Fatalf("expected host to start, got %q", s.Turn)
				}
				if s.Winner != "" {
					t.Fatalf("unexpected winner %q", s.Winner)
				}
			},
		},
		{
			name:     "rps",
			gameType: model.GameRPS,
			check: func(t *testing.T, s *model.GameSession) {
				if len(s.Choices) != 0 {
					t.Fatalf("expected empty choices, got %v", s.Choices)
				}
				if s.RoundWinner != "" {
					t.Fatalf("unexpected round winner %q", s.RoundWinner)
				}
			},
		},
		{
			name:     "trivia",
			gameType: model.GameTrivia,
			check: func(t *testing.T, s *model.GameSession) {
				if s.CurrentQIndex != 0 {
					t.Fatalf("expected question index 0, got %d", s.CurrentQIndex)
				}
				if len(s.Answers) != 0 {
					t.Fatalf("expected empty answers, got %v", s.Answers)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(chatID, hostID, tt.gameType, now)
			if err != nil {
				t.Fatalf("new session: %v", err)
			}
			if s.Status != model.GameWaiting {
				t.Fatalf("expected waiting status, got %q", s.Status)
			}
			if s.HostID != hostID {
				t.Fatalf("expected host %q, got %q", hostID, s.HostID)
			}
			if s.Scores[model.RoleHost] != 0 || s.Scores[model.RoleGuest] != 0 {
				t.Fatalf("expected zeroed scores, got %v", s.Scores)
			}
			if s.Version != 1 {
				t.Fatalf("expected initial version 1, got %d", s.Version)
			}
			tt.check(t, s)
		})
	}
}

func TestNewSessionUnknownType(t *testing.T) {
	_, err := NewSession(model.ChatIDFor(hostID, guestID), hostID, "chess", time.Now())
	if !errors.Is(err, ErrUnknownGameType) {
		t.Fatalf("expected ErrUnknownGameType, got %v", err)
	}
}

func TestRoleOf(t *testing.T) {
	s := activeSession(t, model.GameTicTacToe)

	if got := RoleOf(s, hostID); got != model.RoleHost {
		t.Fatalf("expected host role, got %q", got)
	}
	if got := RoleOf(s, guestID); got != model.RoleGuest {
		t.Fatalf("expected guest role, got %q", got)
	}
}

func TestOpponent(t *testing.T) {
	if Opponent(model.RoleHost) != model.RoleGuest || Opponent(model.RoleGuest) != model.RoleHost {
		t.Fatal("opponent mapping broken")
	}
}

func TestAcceptAuthorization(t *testing.T) {
	newWaiting := func(t *testing.T) *model.GameSession {
		s, err := NewSession(model.ChatIDFor(hostID, guestID), hostID, model.GameTicTacToe, time.Now())
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		return s
	}

	t.Run("guest accepts", func(t *testing.T) {
		s := newWaiting(t)
		if err := Accept(s, guestID); err != nil {
			t.Fatalf("accept: %v", err)
		}
		if s.Status != model.GameActive {
			t.Fatalf("expected active status, got %q", s.Status)
		}
		if s.GuestID != guestID {
			t.Fatalf("expected guest recorded, got %q", s.GuestID)
		}
	})

	t.Run("stranger rejected", func(t *testing.T) {
		s := newWaiting(t)
		if err := Accept(s, "mallory"); !errors.Is(err, ErrNotParticipant) {
			t.Fatalf("expected ErrNotParticipant, got %v", err)
		}
		if s.Status != model.GameWaiting {
			t.Fatalf("status changed on rejected accept: %q", s.Status)
		}
	})

	t.Run("host cannot accept own challenge", func(t *testing.T) {
		s := newWaiting(t)
		if err := Accept(s, hostID); !errors.Is(err, ErrNotParticipant) {
			t.Fatalf("expected ErrNotParticipant, got %v", err)
		}
	})

	t.Run("double accept rejected", func(t *testing.T) {
		s := newWaiting(t)
		if err := Accept(s, guestID); err != nil {
			t.Fatalf("accept: %v", err)
		}
		if err := Accept(s, guestID); !errors.Is(err, ErrAlreadyAccepted) {
			t.Fatalf("expected ErrAlreadyAccepted, got %v", err)
		}
	})
}
