package game

// TriviaPointsPerCorrect is awarded for each correct trivia answer.
const TriviaPointsPerCorrect = 10

// TriviaQuestion is one entry of the fixed, globally shared question
// list. The same list applies to every session and is never persisted
// per-session; sessions only carry an index into it.
type TriviaQuestion struct {
	Prompt  string   `json:"q"`
	Options []string `json:"a"`
	Correct string   `json:"-"`
}

// TriviaQuestions is the shared ordered question list.
var TriviaQuestions = []TriviaQuestion{
	{
		Prompt:  "What is the capital of France?",
		Options: []string{"Paris", "London", "Berlin", "Madrid"},
		Correct: "Paris",
	},
	{
		Prompt:  "Which planet is known as the Red Planet?",
		Options: []string{"Venus", "Mars", "Jupiter", "Saturn"},
		Correct: "Mars",
	},
	{
		Prompt:  "What is 2 + 2?",
		Options: []string{"3", "4", "5", "6"},
		Correct: "4",
	},
	{
		Prompt:  "Who wrote 'Romeo and Juliet'?",
		Options: []string{"Dickens", "Shakespeare", "Hemingway", "Austen"},
		Correct: "Shakespeare",
	},
	{
		Prompt:  "What is the largest ocean?",
		Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"},
		Correct: "Pacific",
	},
}
