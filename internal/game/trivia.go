package game

import "vibechat/internal/model"

// SubmitAnswer records one trivia answer for the current question. A
// role answers each question at most once; a correct answer scores
// immediately. The returned flag tells the caller both roles have now
// answered and a deferred AdvanceQuestion should be scheduled.
func SubmitAnswer(s *model.GameSession, actor string, answer string) (bool, error) {
	if s.GameType != model.GameTrivia {
		return false, ErrWrongGameType
	}
	if s.Status == model.GameFinished {
		return false, ErrGameFinished
	}
	if err := checkParticipant(s, actor); err != nil {
		return false, err
	}
	if answer == "" {
		return false, ErrInvalidAnswer
	}

	role := RoleOf(s, actor)
	if s.Answers[role] != "" {
		return false, ErrAlreadyAnswered
	}
	if s.Answers == nil {
		s.Answers = map[model.Role]string{}
	}
	s.Answers[role] = answer

	if answer == TriviaQuestions[s.CurrentQIndex].Correct {
		s.Scores[role] += TriviaPointsPerCorrect
	}

	return s.Answers[Opponent(role)] != "", nil
}

// AdvanceQuestion moves to the next question and clears both answers,
// or finishes the game if the current question was the last. The final
// score comparison is left to the presentation layer.
func AdvanceQuestion(s *model.GameSession) error {
	if s.GameType != model.GameTrivia {
		return ErrWrongGameType
	}
	if s.Status == model.GameFinished {
		return nil
	}
	if s.CurrentQIndex >= len(TriviaQuestions)-1 {
		s.Status = model.GameFinished
		return nil
	}
	s.CurrentQIndex++
	s.Answers = map[model.Role]string{}
	return nil
}
