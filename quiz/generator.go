package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/studybuddyhq/studybuddy-api/ai"
)

// Generator produces a question set for a summary and config. A stateless
// client: any failure is returned at call time, never at construction.
type Generator interface {
	Generate(ctx context.Context, cfg Config, summary string) ([]Question, error)
}

// AIGenerator implements Generator against the completion provider.
type AIGenerator struct {
	provider *ai.Provider
}

func NewAIGenerator(provider *ai.Provider) *AIGenerator {
	return &AIGenerator{provider: provider}
}

// quizResponse is the raw model output before validation.
type quizResponse struct {
	Questions []Question `json:"questions"`
}

func (g *AIGenerator) Generate(ctx context.Context, cfg Config, summary string) ([]Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	responseText, err := g.provider.Complete(ctx, buildPrompt(cfg, summary))
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	questions, err := ParseQuestions(responseText)
	if err != nil {
		return nil, err
	}
	if err := ValidateQuestions(questions, cfg); err != nil {
		return nil, err
	}

	if len(questions) != cfg.NumQuestions {
		log.Printf("Generated %d questions instead of %d", len(questions), cfg.NumQuestions)
	}

	return questions, nil
}

// ParseQuestions extracts the embedded JSON object from a completion and
// decodes its questions list. Models often wrap the object in prose or
// markdown fences, so everything outside the outermost braces is ignored.
func ParseQuestions(responseText string) ([]Question, error) {
	start := strings.Index(responseText, "{")
	end := strings.LastIndex(responseText, "}")
	if start < 0 || end < start {
		return nil, &ValidationError{Index: -1, Message: "no valid JSON found in response"}
	}

	var resp quizResponse
	if err := json.Unmarshal([]byte(responseText[start:end+1]), &resp); err != nil {
		return nil, &ValidationError{Index: -1, Message: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if resp.Questions == nil {
		return nil, &ValidationError{Index: -1, Message: "missing questions array"}
	}
	if len(resp.Questions) == 0 {
		return nil, &ValidationError{Index: -1, Message: "no questions were generated"}
	}
	return resp.Questions, nil
}

// ValidateQuestions checks every question for structural soundness:
// required fields present, choices non-empty, the correct answer a member
// of the choices, and for true/false questions exactly the True/False pair.
func ValidateQuestions(questions []Question, cfg Config) error {
	for i, q := range questions {
		if q.ID == "" || q.Question == "" || q.Correct == "" || q.Explanation == "" {
			return &ValidationError{Index: i, Message: "missing required field"}
		}
		if len(q.Choices) == 0 {
			return &ValidationError{Index: i, Message: "empty choices"}
		}
		if !contains(q.Choices, q.Correct) {
			return &ValidationError{Index: i, Message: "correct answer not found in choices"}
		}
		if cfg.QuestionType == TypeTrueFalse && !isTrueFalseChoices(q.Choices) {
			return &ValidationError{Index: i, Message: `true/false choices must be exactly ["True", "False"]`}
		}
	}
	return nil
}

func contains(choices []string, want string) bool {
	for _, c := range choices {
		if c == want {
			return true
		}
	}
	return false
}

func isTrueFalseChoices(choices []string) bool {
	if len(choices) != 2 {
		return false
	}
	return (choices[0] == "True" && choices[1] == "False") ||
		(choices[0] == "False" && choices[1] == "True")
}
