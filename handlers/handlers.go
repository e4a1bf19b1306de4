package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/studybuddyhq/studybuddy-api/ai"
	"github.com/studybuddyhq/studybuddy-api/middleware"
	"github.com/studybuddyhq/studybuddy-api/models"
	"github.com/studybuddyhq/studybuddy-api/study"
)

type DBHandler struct {
	*gorm.DB

	// Segments memoizes study-point derivation per summary text.
	Segments *study.SegmentCache

	// AI is nil when no API key is configured; AI-backed endpoints then
	// refuse with a service-unavailable response instead of crashing.
	AI *ai.Provider
}

func NewDBHandler(db *gorm.DB, provider *ai.Provider) *DBHandler {
	return &DBHandler{
		DB:       db,
		Segments: study.NewSegmentCache(),
		AI:       provider,
	}
}

func userFromRequest(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(middleware.UserContextKey).(*models.User)
	return user, ok && user != nil
}
