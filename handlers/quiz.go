package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/studybuddyhq/studybuddy-api/models"
	"github.com/studybuddyhq/studybuddy-api/quiz"
	"github.com/studybuddyhq/studybuddy-api/utils"
)

// POST /api/summarizations/{summarizationID}/quiz
//
// Runs one configure → generate cycle server-side and returns the question
// set. Answering and scoring happen in the client's session; completed
// attempts come back through CreateQuizScore.
func (db *DBHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	summarization, ok := db.ownedSummarization(w, r)
	if !ok {
		return
	}

	if db.AI == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "AI provider not configured")
		return
	}

	cfg := quiz.DefaultConfig()
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			log.Printf("GenerateQuiz: Invalid request body: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	session := quiz.NewSession(quiz.NewAIGenerator(db.AI))
	if err := session.Configure(cfg); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := session.Generate(r.Context(), summarization.Summary); err != nil {
		log.Printf("GenerateQuiz: Generation failed for summarization id=%s: %v", summarization.PublicID, err)
		var verr *quiz.ValidationError
		if errors.As(err, &verr) {
			utils.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		utils.WriteError(w, http.StatusBadGateway, "Quiz generation failed: "+err.Error())
		return
	}

	type QuizResponse struct {
		Questions []quiz.Question `json:"questions"`
		Config    quiz.Config     `json:"config"`
	}
	utils.WriteJSON(w, http.StatusOK, QuizResponse{
		Questions: session.Questions(),
		Config:    session.Config(),
	})
}

// POST /api/summarizations/{summarizationID}/quiz/scores
func (db *DBHandler) CreateQuizScore(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	summarization, ok := db.ownedSummarization(w, r)
	if !ok {
		return
	}

	type CreateScoreRequest struct {
		Score       int    `json:"score"`
		Total       int    `json:"total"`
		TimeSeconds int    `json:"timeSeconds"`
		Difficulty  string `json:"difficulty"`
	}
	var req CreateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateQuizScore: Invalid request body: %v", err)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Total <= 0 || req.Score < 0 || req.Score > req.Total || req.TimeSeconds < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid score values")
		return
	}

	percentage := int(math.Round(float64(req.Score) / float64(req.Total) * 100))

	score := models.QuizScore{
		UserID:          user.ID,
		SummarizationID: summarization.ID,
		Score:           req.Score,
		Total:           req.Total,
		Percentage:      percentage,
		Grade:           quiz.GradeFor(percentage),
		TimeSeconds:     req.TimeSeconds,
		Difficulty:      req.Difficulty,
	}
	if err := db.Create(&score).Error; err != nil {
		log.Printf("CreateQuizScore: Failed to save score: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save score")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, score)
}

// GET /api/notes/{noteID}/quiz/scores
func (db *DBHandler) GetQuizScoresForNote(w http.ResponseWriter, r *http.Request) {
	note, ok := db.ownedNote(w, r)
	if !ok {
		return
	}

	var scores []models.QuizScore
	if err := db.
		Joins("JOIN summarizations ON summarizations.id = quiz_scores.summarization_id").
		Where("summarizations.note_id = ?", note.ID).
		Order("quiz_scores.played_at DESC").
		Find(&scores).Error; err != nil {
		log.Printf("GetQuizScoresForNote: Failed to fetch scores for noteID=%s: %v", note.PublicID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch scores")
		return
	}

	utils.WriteJSON(w, http.StatusOK, scores)
}
