package game

import (
	"errors"
	"testing"

	"vibechat/internal/model"
)

func TestTriviaScoring(t *testing.T) {
	correct := TriviaQuestions[0].Correct

	tests := []struct {
		name   string
		answer string
		score  int
	}{
		{"correct answer scores", correct, TriviaPointsPerCorrect},
		{"wrong answer scores nothing", "not-" + correct, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := activeSession(t, model.GameTrivia)

			both, err := SubmitAnswer(s, hostID, tt.answer)
			if err != nil {
				t.Fatalf("submit answer: %v", err)
			}
			if both {
				t.Fatal("reported both answered after a single answer")
			}
			if s.Scores[model.RoleHost] != tt.score {
				t.Fatalf("expected host score %d, got %d", tt.score, s.Scores[model.RoleHost])
			}
		})
	}
}

func TestTriviaDoubleAnswerRejected(t *testing.T) {
	s := activeSession(t, model.GameTrivia)

	if _, err := SubmitAnswer(s, hostID, TriviaQuestions[0].Correct); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if _, err := SubmitAnswer(s, hostID, "anything"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if s.Scores[model.RoleHost] != TriviaPointsPerCorrect {
		t.Fatalf("score changed on rejected answer: %d", s.Scores[model.RoleHost])
	}
}

func TestTriviaBothAnsweredFlag(t *testing.T) {
	s := activeSession(t, model.GameTrivia)

	if _, err := SubmitAnswer(s, hostID, TriviaQuestions[0].Correct); err != nil {
		t.Fatalf("host answer: %v", err)
	}
	both, err := SubmitAnswer(s, guestID, "wrong")
	if err != nil {
		t.Fatalf("guest answer: %v", err)
	}
	if !both {
		t.Fatal("expected both-answered flag after the second answer")
	}
}

func TestAdvanceQuestionClearsAnswers(t *testing.T) {
	s := activeSession(t, model.GameTrivia)
	if _, err := SubmitAnswer(s, hostID, TriviaQuestions[0].Correct); err != nil {
		t.Fatalf("host answer: %v", err)
	}
	if _, err := SubmitAnswer(s, guestID, "wrong"); err != nil {
		t.Fatalf("guest answer: %v", err)
	}

	if err := AdvanceQuestion(s); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if s.CurrentQIndex != 1 {
		t.Fatalf("expected question index 1, got %d", s.CurrentQIndex)
	}
	if len(s.Answers) != 0 {
		t.Fatalf("expected answers cleared, got %v", s.Answers)
	}
	if s.Status != model.GameActive {
		t.Fatalf("expected session still active, got %q", s.Status)
	}
}

func TestLastQuestionFinishesGame(t *testing.T) {
	s := activeSession(t, model.GameTrivia)
	s.CurrentQIndex = len(TriviaQuestions) - 1

	if _, err := SubmitAnswer(s, hostID, "a"); err != nil {
		t.Fatalf("host answer: %v", err)
	}
	if _, err := SubmitAnswer(s, guestID, "b"); err != nil {
		t.Fatalf("guest answer: %v", err)
	}

	if err := AdvanceQuestion(s); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.Status != model.GameFinished {
		t.Fatalf("expected finished status, got %q", s.Status)
	}
	if s.CurrentQIndex != len(TriviaQuestions)-1 {
		t.Fatalf("index advanced past the last question: %d", s.CurrentQIndex)
	}

	// Terminal state absorbs everything.
	if _, err := SubmitAnswer(s, hostID, "again"); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}
	if err := AdvanceQuestion(s); err != nil {
		t.Fatalf("advance on finished session must be a no-op, got %v", err)
	}
	if s.Status != model.GameFinished {
		t.Fatalf("status regressed: %q", s.Status)
	}
}

func TestTriviaEmptyAnswerRejected(t *testing.T) {
	s := activeSession(t, model.GameTrivia)
	if _, err := SubmitAnswer(s, hostID, ""); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
}
