package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/studybuddyhq/studybuddy-api/models"
	"github.com/studybuddyhq/studybuddy-api/utils"
)

// GET /api/notes/{noteID}/summarizations
func (db *DBHandler) GetSummarizationsForNote(w http.ResponseWriter, r *http.Request) {
	note, ok := db.ownedNote(w, r)
	if !ok {
		return
	}

	var summarizations []models.Summarization
	if err := db.Where("note_id = ?", note.ID).Order("created_at DESC").Find(&summarizations).Error; err != nil {
		log.Printf("GetSummarizationsForNote: Failed to fetch summarizations for noteID=%s: %v", note.PublicID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch summarizations")
		return
	}

	utils.WriteJSON(w, http.StatusOK, summarizations)
}

// POST /api/notes/{noteID}/summarizations
func (db *DBHandler) CreateSummarization(w http.ResponseWriter, r *http.Request) {
	note, ok := db.ownedNote(w, r)
	if !ok {
		return
	}

	type CreateSummarizationRequest struct {
		InputText string `json:"inputText"`
		Summary   string `json:"summary"`
	}
	var req CreateSummarizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateSummarization: Invalid request body: %v", err)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.InputText) == "" || strings.TrimSpace(req.Summary) == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing inputText or summary")
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateSummarization: Failed to generate publicID: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	summarization := models.Summarization{
		PublicID:  publicID,
		NoteID:    note.ID,
		InputText: req.InputText,
		Summary:   req.Summary,
	}
	if err := db.Create(&summarization).Error; err != nil {
		log.Printf("CreateSummarization: Failed to save summarization for noteID=%s: %v", note.PublicID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save summarization")
		return
	}

	log.Printf("CreateSummarization: Successfully created summarization %s for noteID=%s", publicID, note.PublicID)
	utils.WriteJSON(w, http.StatusCreated, summarization)
}

// DELETE /api/summarizations/{summarizationID}
func (db *DBHandler) DeleteSummarization(w http.ResponseWriter, r *http.Request) {
	summarization, ok := db.ownedSummarization(w, r)
	if !ok {
		return
	}

	if err := db.Where("summarization_id = ?", summarization.ID).Delete(&models.MindMapNodeLayout{}).Error; err != nil {
		log.Printf("DeleteSummarization: Failed to delete node layouts for id=%s: %v", summarization.PublicID, err)
	}
	if err := db.Where("summarization_id = ?", summarization.ID).Delete(&models.QuizScore{}).Error; err != nil {
		log.Printf("DeleteSummarization: Failed to delete quiz scores for id=%s: %v", summarization.PublicID, err)
	}
	if err := db.Delete(summarization).Error; err != nil {
		log.Printf("DeleteSummarization: Failed to delete summarization id=%s: %v", summarization.PublicID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete summarization")
		return
	}

	log.Printf("DeleteSummarization: Successfully deleted summarization id=%s", summarization.PublicID)
	w.WriteHeader(http.StatusNoContent)
}

// ownedSummarization resolves the {summarizationID} path value to a
// summarization whose note is owned by the requesting user, writing the
// error response itself when that fails.
func (db *DBHandler) ownedSummarization(w http.ResponseWriter, r *http.Request) (*models.Summarization, bool) {
	user, ok := userFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	summarizationID := r.PathValue("summarizationID")
	var summarization models.Summarization
	if err := db.Preload("Note").Where("public_id = ?", summarizationID).First(&summarization).Error; err != nil {
		log.Printf("ownedSummarization: Summarization not found for public_id=%s: %v", summarizationID, err)
		utils.WriteError(w, http.StatusNotFound, "Summarization not found")
		return nil, false
	}
	if summarization.Note.UserID != user.ID {
		log.Printf("ownedSummarization: Forbidden access for summarization %s by userID=%d", summarizationID, user.ID)
		utils.WriteError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return &summarization, true
}
