package model

import "time"

// GameType selects which transition ruleset applies to a session.
// Immutable after creation.
type GameType string

const (
	GameTicTacToe GameType = "tictactoe"
	GameRPS       GameType = "rps"
	GameTrivia    GameType = "trivia"
)

// GameStatus is the session lifecycle stage. It only ever advances
// forward: waiting -> active -> finished.
type GameStatus string

const (
	GameWaiting  GameStatus = "waiting"
	GameActive   GameStatus = "active"
	GameFinished GameStatus = "finished"
)

// Role maps a participant onto the score keys. The session creator is
// host; the other chat member is guest.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// RPSChoice is a rock-paper-scissors move.
type RPSChoice string

const (
	RPSRock     RPSChoice = "rock"
	RPSPaper    RPSChoice = "paper"
	RPSScissors RPSChoice = "scissors"
)

// WinnerDraw is the sentinel stored in Winner / RoundWinner when a
// round ends without a decisive outcome.
const WinnerDraw = "draw"

// GameSession is the shared document replicated between the two chat
// participants, one per pair. Version is an optimistic-concurrency
// token: every write must carry the version it was computed from, and
// the store rejects writes based on a stale read.
//
// Only the fields of the active GameType are meaningful; the others
// stay at their zero values.
type GameSession struct {
	ChatID   string     `json:"chatId" bson:"_id"`
	GameType GameType   `json:"gameType" bson:"gameType"`
	Status   GameStatus `json:"status" bson:"status"`
	HostID   string     `json:"hostId" bson:"hostId"`
	GuestID  string     `json:"guestId,omitempty" bson:"guestId,omitempty"`
	Scores   map[Role]int `json:"scores" bson:"scores"`

	// Tic-tac-toe. Board holds 9 cells, "" when empty, otherwise "X"
	// (host) or "O" (guest). Turn is the user ID allowed to move next.
	// Winner is "", a user ID, or "draw".
	Board  []string `json:"board,omitempty" bson:"board,omitempty"`
	Turn   string   `json:"turn,omitempty" bson:"turn,omitempty"`
	Winner string   `json:"winner,omitempty" bson:"winner,omitempty"`

	// Rock-paper-scissors. RoundWinner is "", a role, or "draw".
	Choices     map[Role]RPSChoice `json:"choices,omitempty" bson:"choices,omitempty"`
	RoundWinner string             `json:"roundWinner,omitempty" bson:"roundWinner,omitempty"`

	// Trivia.
	CurrentQIndex int             `json:"currentQIndex" bson:"currentQIndex"`
	Answers       map[Role]string `json:"answers,omitempty" bson:"answers,omitempty"`

	Version   int64     `json:"version" bson:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
