package game

import "vibechat/internal/model"

// The eight winning triples: 3 rows, 3 columns, 2 diagonals.
var winningTriples = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

const (
	symbolHost  = "X"
	symbolGuest = "O"
)

// ProposeMove applies one tic-tac-toe move to the snapshot. The host
// always plays X and the guest O, fixed for the session's lifetime. A
// winning move records the actor's identity as winner and increments
// their role score; a full board without a winner records a draw;
// otherwise the turn flips to the other participant.
func ProposeMove(s *model.GameSession, actor string, cell int) error {
	if s.GameType != model.GameTicTacToe {
		return ErrWrongGameType
	}
	if err := checkParticipant(s, actor); err != nil {
		return err
	}
	if s.Winner != "" {
		return ErrGameOver
	}
	if cell < 0 || cell >= len(s.Board) {
		return ErrInvalidCell
	}
	if s.Board[cell] != "" {
		return ErrCellOccupied
	}
	if s.Turn != actor {
		return ErrNotYourTurn
	}

	role := RoleOf(s, actor)
	symbol := symbolHost
	if role == model.RoleGuest {
		symbol = symbolGuest
	}
	s.Board[cell] = symbol

	switch {
	case boardWon(s.Board, symbol):
		s.Winner = actor
		s.Scores[role]++
	case boardFull(s.Board):
		s.Winner = model.WinnerDraw
	default:
		s.Turn = model.OtherMember(s.ChatID, actor)
	}
	return nil
}

// ResetBoard starts a rematch: empty board, no winner, and the turn
// handed back to the host unconditionally. Scores persist.
func ResetBoard(s *model.GameSession) error {
	if s.GameType != model.GameTicTacToe {
		return ErrWrongGameType
	}
	s.Board = make([]string, 9)
	s.Winner = ""
	s.Turn = s.HostID
	return nil
}

func boardWon(board []string, symbol string) bool {
	for _, t := range winningTriples {
		if board[t[0]] == symbol && board[t[1]] == symbol && board[t[2]] == symbol {
			return true
		}
	}
	return false
}

func boardFull(board []string) bool {
	for _, cell := range board {
		if cell == "" {
			return false
		}
	}
	return true
}
