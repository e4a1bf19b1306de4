// Package quiz implements the configure → generate → answer → score quiz
// lifecycle over a summarization's text.
package quiz

import "fmt"

// Difficulty levels accepted by the generator.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question types accepted by the generator.
const (
	TypeMultipleChoice = "mcq"
	TypeTrueFalse      = "true-false"
)

// Bounds on the requested question count.
const (
	MinQuestions = 3
	MaxQuestions = 15
)

// Question is one generated quiz question. Correct is always a member of
// Choices; the generator rejects responses where it is not.
type Question struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty"`
	Concept     string   `json:"concept"`
}

// Config is the user-chosen quiz setup.
type Config struct {
	NumQuestions int    `json:"numQuestions"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"questionType"`
}

// DefaultConfig mirrors the setup screen's initial values.
func DefaultConfig() Config {
	return Config{
		NumQuestions: 5,
		Difficulty:   DifficultyMedium,
		QuestionType: TypeMultipleChoice,
	}
}

// Validate checks the config against the accepted bounds and enums.
func (c Config) Validate() error {
	if c.NumQuestions < MinQuestions || c.NumQuestions > MaxQuestions {
		return fmt.Errorf("numQuestions must be between %d and %d, got %d", MinQuestions, MaxQuestions, c.NumQuestions)
	}
	switch c.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	switch c.QuestionType {
	case TypeMultipleChoice, TypeTrueFalse:
	default:
		return fmt.Errorf("unknown question type %q", c.QuestionType)
	}
	return nil
}

// ValidationError describes why a generated question set was rejected.
// Index is -1 when the failure is not tied to a single question.
type ValidationError struct {
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid quiz response: %s", e.Message)
	}
	return fmt.Sprintf("invalid question at index %d: %s", e.Index, e.Message)
}
