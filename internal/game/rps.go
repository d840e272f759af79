package game

import "vibechat/internal/model"

// SubmitChoice records one rock-paper-scissors choice. A role's choice
// locks once recorded; re-submission is rejected. The submission that
// completes the round also resolves it in the same snapshot, so the
// round winner becomes visible to both participants atomically. The
// returned flag tells the caller the round is complete and a deferred
// ClearRound should be scheduled.
func SubmitChoice(s *model.GameSession, actor string, choice model.RPSChoice) (bool, error) {
	if s.GameType != model.GameRPS {
		return false, ErrWrongGameType
	}
	if err := checkParticipant(s, actor); err != nil {
		return false, err
	}
	switch choice {
	case model.RPSRock, model.RPSPaper, model.RPSScissors:
	default:
		return false, ErrInvalidChoice
	}
	if s.RoundWinner != "" {
		return false, ErrRoundOver
	}

	role := RoleOf(s, actor)
	if s.Choices[role] != "" {
		return false, ErrAlreadyChosen
	}
	if s.Choices == nil {
		s.Choices = map[model.Role]model.RPSChoice{}
	}
	s.Choices[role] = choice

	other := Opponent(role)
	otherChoice := s.Choices[other]
	if otherChoice == "" {
		return false, nil
	}

	switch {
	case choice == otherChoice:
		s.RoundWinner = model.WinnerDraw
	case beats(choice, otherChoice):
		s.RoundWinner = string(role)
		s.Scores[role]++
	default:
		s.RoundWinner = string(other)
		s.Scores[other]++
	}
	return true, nil
}

// ClearRound resets the round-scoped fields for the next round. Scores
// persist. Clearing an already-cleared round is a harmless no-op, so
// both participants may race to schedule it.
func ClearRound(s *model.GameSession) error {
	if s.GameType != model.GameRPS {
		return ErrWrongGameType
	}
	s.Choices = map[model.Role]model.RPSChoice{}
	s.RoundWinner = ""
	return nil
}

// beats reports whether a defeats b under the fixed cyclic dominance:
// rock beats scissors, scissors beats paper, paper beats rock.
func beats(a, b model.RPSChoice) bool {
	switch a {
	case model.RPSRock:
		return b == model.RPSScissors
	case model.RPSScissors:
		return b == model.RPSPaper
	case model.RPSPaper:
		return b == model.RPSRock
	}
	return false
}
