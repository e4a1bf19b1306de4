package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddyhq/studybuddy-api/models"
)

func TestCreateSummarization(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")

	body := map[string]string{
		"inputText": "Long source text about cells.",
		"summary":   "Cells are the unit of life.",
	}
	req := newRequest(t, http.MethodPost, "/api/notes/"+note.PublicID+"/summarizations", body, user)
	req.SetPathValue("noteID", note.PublicID)
	rec := httptest.NewRecorder()
	db.CreateSummarization(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	var got models.Summarization
	decodeJSON(t, rec, &got)
	assert.NotEmpty(t, got.PublicID)
	assert.Equal(t, note.ID, got.NoteID)
	assert.Equal(t, "Cells are the unit of life.", got.Summary)
}

func TestCreateSummarization_MissingFields(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")

	for name, body := range map[string]map[string]string{
		"no summary": {"inputText": "source text"},
		"no input":   {"summary": "a summary"},
		"both blank": {"inputText": " ", "summary": "\n"},
	} {
		t.Run(name, func(t *testing.T) {
			req := newRequest(t, http.MethodPost, "/api/notes/"+note.PublicID+"/summarizations", body, user)
			req.SetPathValue("noteID", note.PublicID)
			rec := httptest.NewRecorder()
			db.CreateSummarization(rec, req)
			requireStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestCreateSummarization_ForbiddenOnOthersNote(t *testing.T) {
	db := newTestHandler(t)
	alice := createTestUser(t, db, "auth0|alice")
	bob := createTestUser(t, db, "auth0|bob")
	note := createTestNote(t, db, alice, "Alice's note")

	body := map[string]string{"inputText": "text", "summary": "summary"}
	req := newRequest(t, http.MethodPost, "/api/notes/"+note.PublicID+"/summarizations", body, bob)
	req.SetPathValue("noteID", note.PublicID)
	rec := httptest.NewRecorder()
	db.CreateSummarization(rec, req)

	requireStatus(t, rec, http.StatusForbidden)
}

func TestGetSummarizationsForNote_NewestFirst(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")

	first := createTestSummarization(t, db, note, "input one", "summary one")
	second := createTestSummarization(t, db, note, "input two", "summary two")
	require.NoError(t, db.Model(second).Update("created_at", time.Now().Add(time.Hour)).Error)

	req := newRequest(t, http.MethodGet, "/api/notes/"+note.PublicID+"/summarizations", nil, user)
	req.SetPathValue("noteID", note.PublicID)
	rec := httptest.NewRecorder()
	db.GetSummarizationsForNote(rec, req)

	requireStatus(t, rec, http.StatusOK)
	var got []models.Summarization
	decodeJSON(t, rec, &got)
	require.Len(t, got, 2)
	assert.Equal(t, second.PublicID, got[0].PublicID)
	assert.Equal(t, first.PublicID, got[1].PublicID)
}

func TestDeleteSummarization_RemovesLayoutsAndScores(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")
	sum := createTestSummarization(t, db, note, "input", threeSentenceSummary)

	layout := models.MindMapNodeLayout{SummarizationID: sum.ID, NodeID: "point-0", XPosition: 1, YPosition: 2}
	require.NoError(t, db.Create(&layout).Error)
	score := models.QuizScore{UserID: user.ID, SummarizationID: sum.ID, Score: 4, Total: 5, Percentage: 80, Grade: "A", TimeSeconds: 30}
	require.NoError(t, db.Create(&score).Error)

	req := newRequest(t, http.MethodDelete, "/api/summarizations/"+sum.PublicID, nil, user)
	req.SetPathValue("summarizationID", sum.PublicID)
	rec := httptest.NewRecorder()
	db.DeleteSummarization(rec, req)

	requireStatus(t, rec, http.StatusNoContent)

	var count int64
	db.Model(&models.Summarization{}).Where("id = ?", sum.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.MindMapNodeLayout{}).Where("summarization_id = ?", sum.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.QuizScore{}).Where("summarization_id = ?", sum.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteSummarization_NotFound(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")

	req := newRequest(t, http.MethodDelete, "/api/summarizations/missing", nil, user)
	req.SetPathValue("summarizationID", "missing")
	rec := httptest.NewRecorder()
	db.DeleteSummarization(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestDeleteSummarization_Forbidden(t *testing.T) {
	db := newTestHandler(t)
	alice := createTestUser(t, db, "auth0|alice")
	bob := createTestUser(t, db, "auth0|bob")
	note := createTestNote(t, db, alice, "Alice's note")
	sum := createTestSummarization(t, db, note, "input", "summary")

	req := newRequest(t, http.MethodDelete, "/api/summarizations/"+sum.PublicID, nil, bob)
	req.SetPathValue("summarizationID", sum.PublicID)
	rec := httptest.NewRecorder()
	db.DeleteSummarization(rec, req)

	requireStatus(t, rec, http.StatusForbidden)
}
