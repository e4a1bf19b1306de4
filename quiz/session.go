package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// Phase is the quiz lifecycle state.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseGenerating Phase = "generating"
	PhaseActive     Phase = "active"
	PhaseResults    Phase = "results"
)

// ErrGenerationInFlight is returned when Generate is called while a
// previous generation has not finished. The triggering control is expected
// to stay disabled until then.
var ErrGenerationInFlight = errors.New("quiz generation already in flight")

// ErrStaleGeneration is returned when a generation completes after the
// session was reset; its result is discarded.
var ErrStaleGeneration = errors.New("quiz generation superseded by reset")

// UnansweredError reports a submit attempt with questions left blank.
type UnansweredError struct {
	Count int
}

func (e *UnansweredError) Error() string {
	return fmt.Sprintf("please answer all questions, %d remaining", e.Count)
}

// QuestionResult is the per-question breakdown of a finished quiz.
type QuestionResult struct {
	Index    int      `json:"index"`
	Question Question `json:"question"`
	Answer   string   `json:"answer"`
	Correct  bool     `json:"correct"`
}

// Results summarizes a finished quiz attempt.
type Results struct {
	Score            int              `json:"score"`
	Total            int              `json:"total"`
	Percentage       int              `json:"percentage"`
	Grade            string           `json:"grade"`
	TimeTakenSeconds int              `json:"timeTakenSeconds"`
	Review           []QuestionResult `json:"review"`
}

// Session drives one quiz lifecycle: setup → generating → active →
// results, with retake and reset loops. Safe for concurrent use; the
// generator call itself runs without the lock held.
type Session struct {
	mu sync.Mutex

	gen       Generator
	phase     Phase
	cfg       Config
	questions []Question
	answers   map[int]string
	startTime time.Time
	endTime   time.Time
	lastErr   error
	attempt   int

	now func() time.Time
}

func NewSession(gen Generator) *Session {
	return &Session{
		gen:     gen,
		phase:   PhaseSetup,
		cfg:     DefaultConfig(),
		answers: make(map[int]string),
		now:     time.Now,
	}
}

// Phase reports the current lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the error sub-state left by a failed configure or generate,
// if any. Cleared on the next configure or generate attempt.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Config returns the current configuration.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Configure replaces the quiz setup. Only allowed before generation.
func (s *Session) Configure(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return fmt.Errorf("cannot configure quiz in %s phase", s.phase)
	}
	s.lastErr = nil
	if err := cfg.Validate(); err != nil {
		s.lastErr = err
		return err
	}
	s.cfg = cfg
	return nil
}

// Generate runs the generator with the configured setup over the summary
// text. On success the session moves to the active phase with a fresh
// start time and cleared answers; on failure it returns to setup with the
// error recorded, ready to retry.
func (s *Session) Generate(ctx context.Context, summary string) error {
	s.mu.Lock()
	if s.phase == PhaseGenerating {
		s.mu.Unlock()
		return ErrGenerationInFlight
	}
	if s.phase != PhaseSetup {
		s.mu.Unlock()
		return fmt.Errorf("cannot generate quiz in %s phase", s.phase)
	}
	if strings.TrimSpace(summary) == "" {
		err := errors.New("no summary content available for quiz generation")
		s.lastErr = err
		s.mu.Unlock()
		return err
	}
	cfg := s.cfg
	attempt := s.attempt
	s.lastErr = nil
	s.phase = PhaseGenerating
	s.mu.Unlock()

	questions, err := s.gen.Generate(ctx, cfg, summary)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt != attempt {
		// Session was reset while the call was in flight; the response
		// must not touch the new session state.
		return ErrStaleGeneration
	}
	if err != nil {
		s.phase = PhaseSetup
		s.lastErr = err
		return err
	}

	s.questions = questions
	s.answers = make(map[int]string)
	s.startTime = s.now()
	s.endTime = time.Time{}
	s.phase = PhaseActive
	return nil
}

// Questions returns the generated question set.
func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	qs := make([]Question, len(s.questions))
	copy(qs, s.questions)
	return qs
}

// Answer records the chosen choice for a question; re-answering
// overwrites.
func (s *Session) Answer(index int, choice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return fmt.Errorf("cannot answer in %s phase", s.phase)
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("question index %d out of range", index)
	}
	if !contains(s.questions[index].Choices, choice) {
		return fmt.Errorf("choice %q is not an option for question %d", choice, index)
	}
	s.answers[index] = choice
	return nil
}

// Answered reports how many questions have an answer.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Submit finishes the attempt. Every question must be answered; otherwise
// an UnansweredError with the exact missing count is returned and the quiz
// stays active.
func (s *Session) Submit() (*Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return nil, fmt.Errorf("cannot submit in %s phase", s.phase)
	}
	if unanswered := len(s.questions) - len(s.answers); unanswered > 0 {
		return nil, &UnansweredError{Count: unanswered}
	}
	s.endTime = s.now()
	s.phase = PhaseResults
	return s.resultsLocked(), nil
}

// Results returns the scored outcome of a finished quiz.
func (s *Session) Results() (*Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseResults {
		return nil, fmt.Errorf("no results in %s phase", s.phase)
	}
	return s.resultsLocked(), nil
}

func (s *Session) resultsLocked() *Results {
	total := len(s.questions)
	score := 0
	review := make([]QuestionResult, 0, total)
	for i, q := range s.questions {
		answer := s.answers[i]
		correct := answer == q.Correct
		if correct {
			score++
		}
		review = append(review, QuestionResult{
			Index:    i,
			Question: q,
			Answer:   answer,
			Correct:  correct,
		})
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) / float64(total) * 100))
	}

	return &Results{
		Score:            score,
		Total:            total,
		Percentage:       percentage,
		Grade:            GradeFor(percentage),
		TimeTakenSeconds: int(math.Round(s.endTime.Sub(s.startTime).Seconds())),
		Review:           review,
	}
}

// GradeFor maps a percentage onto a letter grade.
func GradeFor(percentage int) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}

// Retake clears the answers and reopens the same question set with a fresh
// start time.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseResults {
		return fmt.Errorf("cannot retake in %s phase", s.phase)
	}
	s.answers = make(map[int]string)
	s.startTime = s.now()
	s.endTime = time.Time{}
	s.phase = PhaseActive
	return nil
}

// Reset returns fully to setup: default config, no questions, no answers.
// Any generation still in flight is discarded when it completes.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	s.cfg = DefaultConfig()
	s.questions = nil
	s.answers = make(map[int]string)
	s.startTime = time.Time{}
	s.endTime = time.Time{}
	s.lastErr = nil
	s.phase = PhaseSetup
}
