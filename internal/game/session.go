// Package game holds the shared two-player session state machines. All
// functions here are pure transitions over a session snapshot; loading,
// versioned writes, and fanout live in the service layer.
package game

import (
	"errors"
	"time"

	"vibechat/internal/model"
)

var (
	ErrUnknownGameType  = errors.New("unknown game type")
	ErrWrongGameType    = errors.New("operation does not match session game type")
	ErrNotParticipant   = errors.New("user is not a session participant")
	ErrSessionNotActive = errors.New("session is not active")
	ErrAlreadyAccepted  = errors.New("session already accepted")
	ErrGameFinished     = errors.New("game is finished")

	ErrInvalidCell  = errors.New("cell index out of range")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameOver     = errors.New("game already has a winner")

	ErrInvalidChoice = errors.New("invalid choice")
	ErrAlreadyChosen = errors.New("choice already recorded for this round")
	ErrRoundOver     = errors.New("round already resolved")

	ErrInvalidAnswer   = errors.New("empty answer")
	ErrAlreadyAnswered = errors.New("answer already recorded for this question")
)

// NewSession builds the initial document for a fresh challenge: waiting
// status, the challenger as host, zeroed scores, and the variant's
// round-scoped fields in their starting shape.
func NewSession(chatID, hostID string, gameType model.GameType, now time.Time) (*model.GameSession, error) {
	s := &model.GameSession{
		ChatID:    chatID,
		GameType:  gameType,
		Status:    model.GameWaiting,
		HostID:    hostID,
		Scores:    map[model.Role]int{model.RoleHost: 0, model.RoleGuest: 0},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch gameType {
	case model.GameTicTacToe:
		s.Board = make([]string, 9)
		s.Turn = hostID
	case model.GameRPS:
		s.Choices = map[model.Role]model.RPSChoice{}
	case model.GameTrivia:
		s.CurrentQIndex = 0
		s.Answers = map[model.Role]string{}
	default:
		return nil, ErrUnknownGameType
	}

	return s, nil
}

// RoleOf derives a participant's role by comparing their identity to
// the session host. Callers must have verified chat membership first.
func RoleOf(s *model.GameSession, userID string) model.Role {
	if userID == s.HostID {
		return model.RoleHost
	}
	return model.RoleGuest
}

// Opponent returns the other role.
func Opponent(r model.Role) model.Role {
	if r == model.RoleHost {
		return model.RoleGuest
	}
	return model.RoleHost
}

// Accept transitions a waiting session to active. Only the non-host
// chat member may accept; their identity is recorded as the guest.
func Accept(s *model.GameSession, userID string) error {
	if !model.IsChatMember(s.ChatID, userID) {
		return ErrNotParticipant
	}
	if userID == s.HostID {
		return ErrNotParticipant
	}
	if s.Status != model.GameWaiting {
		return ErrAlreadyAccepted
	}
	s.Status = model.GameActive
	s.GuestID = userID
	return nil
}

// checkParticipant guards every mutation: the session must be active
// and the actor must be one of its two participants.
func checkParticipant(s *model.GameSession, actor string) error {
	if actor != s.HostID && actor != s.GuestID {
		return ErrNotParticipant
	}
	if s.Status != model.GameActive {
		return ErrSessionNotActive
	}
	return nil
}
