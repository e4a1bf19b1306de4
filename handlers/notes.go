package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/studybuddyhq/studybuddy-api/models"
	"github.com/studybuddyhq/studybuddy-api/utils"
)

// GET /api/notes
func (db *DBHandler) GetNotesForUser(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var notes []models.Note
	if err := db.Where("user_id = ?", user.ID).Order("updated_at DESC").Find(&notes).Error; err != nil {
		log.Printf("GetNotesForUser: Failed to fetch notes for userID=%d: %v", user.ID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}

	utils.WriteJSON(w, http.StatusOK, notes)
}

// POST /api/notes
func (db *DBHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	type CreateNoteRequest struct {
		Title string `json:"title"`
	}
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateNote: Invalid request body: %v", err)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		utils.WriteError(w, http.StatusBadRequest, "Title required")
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateNote: Failed to generate publicID: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	note := models.Note{
		Title:    req.Title,
		PublicID: publicID,
		UserID:   user.ID,
	}
	if err := db.Create(&note).Error; err != nil {
		log.Printf("CreateNote: Failed to create note: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	log.Printf("CreateNote: Successfully created note with publicID=%s for userID=%d", publicID, user.ID)
	utils.WriteJSON(w, http.StatusCreated, note)
}

// GET /api/notes/{noteID}
func (db *DBHandler) GetNoteByID(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := r.PathValue("noteID")
	var note models.Note
	if err := db.Preload("Summarizations", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC")
	}).Where("public_id = ?", noteID).First(&note).Error; err != nil {
		log.Printf("GetNoteByID: Note not found for public_id=%s: %v", noteID, err)
		utils.WriteError(w, http.StatusNotFound, "Note not found")
		return
	}

	if note.UserID != user.ID {
		log.Printf("GetNoteByID: Forbidden access for note %s by userID=%d", noteID, user.ID)
		utils.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	utils.WriteJSON(w, http.StatusOK, note)
}

// PUT /api/notes/{noteID}
func (db *DBHandler) UpdateNoteByID(w http.ResponseWriter, r *http.Request) {
	note, ok := db.ownedNote(w, r)
	if !ok {
		return
	}

	type UpdateNoteRequest struct {
		Title string `json:"title"`
	}
	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("UpdateNoteByID: Invalid request body: %v", err)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		utils.WriteError(w, http.StatusBadRequest, "Title required")
		return
	}

	note.Title = req.Title
	if err := db.Save(note).Error; err != nil {
		log.Printf("UpdateNoteByID: Failed to update noteID=%s: %v", note.PublicID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	log.Printf("UpdateNoteByID: Successfully updated noteID=%s", note.PublicID)
	utils.WriteJSON(w, http.StatusOK, note)
}

// DELETE /api/notes/{noteID}
func (db *DBHandler) DeleteNoteByID(w http.ResponseWriter, r *http.Request) {
	note, ok := db.ownedNote(w, r)
	if !ok {
		return
	}

	// Cascade by hand so sqlite without foreign_keys pragma behaves the
	// same as postgres.
	var sumIDs []uint
	if err := db.Model(&models.Summarization{}).Where("note_id = ?", note.ID).Pluck("id", &sumIDs).Error; err != nil {
		log.Printf("DeleteNoteByID: Failed to collect summarizations for noteID=%s: %v", note.PublicID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}
	if len(sumIDs) > 0 {
		if err := db.Where("summarization_id IN ?", sumIDs).Delete(&models.MindMapNodeLayout{}).Error; err != nil {
			log.Printf("DeleteNoteByID: Failed to delete node layouts for noteID=%s: %v", note.PublicID, err)
		}
		if err := db.Where("summarization_id IN ?", sumIDs).Delete(&models.QuizScore{}).Error; err != nil {
			log.Printf("DeleteNoteByID: Failed to delete quiz scores for noteID=%s: %v", note.PublicID, err)
		}
		if err := db.Where("note_id = ?", note.ID).Delete(&models.Summarization{}).Error; err != nil {
			log.Printf("DeleteNoteByID: Failed to delete summarizations for noteID=%s: %v", note.PublicID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to delete note")
			return
		}
	}

	result := db.Delete(note)
	if result.Error != nil {
		log.Printf("DeleteNoteByID: Failed to delete noteID=%s: %v", note.PublicID, result.Error)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	log.Printf("DeleteNoteByID: Successfully deleted noteID=%s", note.PublicID)
	w.WriteHeader(http.StatusNoContent)
}

// ownedNote resolves the {noteID} path value to a note owned by the
// requesting user, writing the error response itself when that fails.
func (db *DBHandler) ownedNote(w http.ResponseWriter, r *http.Request) (*models.Note, bool) {
	user, ok := userFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	noteID := r.PathValue("noteID")
	var note models.Note
	if err := db.Where("public_id = ?", noteID).First(&note).Error; err != nil {
		log.Printf("ownedNote: Note not found for public_id=%s: %v", noteID, err)
		utils.WriteError(w, http.StatusNotFound, "Note not found")
		return nil, false
	}
	if note.UserID != user.ID {
		log.Printf("ownedNote: Forbidden access for note %s by userID=%d", noteID, user.ID)
		utils.WriteError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return &note, true
}
