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

func TestGenerateQuiz_NoProviderConfigured(t *testing.T) {
	db := newTestHandler(t) // AI is nil
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")
	sum := createTestSummarization(t, db, note, "input", threeSentenceSummary)

	req := newRequest(t, http.MethodPost, "/api/summarizations/"+sum.PublicID+"/quiz", nil, user)
	req.SetPathValue("summarizationID", sum.PublicID)
	rec := httptest.NewRecorder()
	db.GenerateQuiz(rec, req)

	requireStatus(t, rec, http.StatusServiceUnavailable)
}

func TestCreateQuizScore(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")
	sum := createTestSummarization(t, db, note, "input", threeSentenceSummary)

	body := map[string]any{
		"score":       2,
		"total":       3,
		"timeSeconds": 75,
		"difficulty":  "medium",
	}
	req := newRequest(t, http.MethodPost, "/api/summarizations/"+sum.PublicID+"/quiz/scores", body, user)
	req.SetPathValue("summarizationID", sum.PublicID)
	rec := httptest.NewRecorder()
	db.CreateQuizScore(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	var got models.QuizScore
	decodeJSON(t, rec, &got)
	assert.Equal(t, 2, got.Score)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 67, got.Percentage) // 2/3 rounds up
	assert.Equal(t, "C", got.Grade)
	assert.Equal(t, 75, got.TimeSeconds)
	assert.Equal(t, user.ID, got.UserID)
}

func TestCreateQuizScore_InvalidValues(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")
	sum := createTestSummarization(t, db, note, "input", threeSentenceSummary)

	for name, body := range map[string]map[string]any{
		"zero total":        {"score": 0, "total": 0},
		"negative score":    {"score": -1, "total": 5},
		"score over total":  {"score": 6, "total": 5},
		"negative duration": {"score": 3, "total": 5, "timeSeconds": -1},
	} {
		t.Run(name, func(t *testing.T) {
			req := newRequest(t, http.MethodPost, "/api/summarizations/"+sum.PublicID+"/quiz/scores", body, user)
			req.SetPathValue("summarizationID", sum.PublicID)
			rec := httptest.NewRecorder()
			db.CreateQuizScore(rec, req)
			requireStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestGetQuizScoresForNote(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	note := createTestNote(t, db, user, "Cell biology")
	sumOne := createTestSummarization(t, db, note, "input one", "summary one")
	sumTwo := createTestSummarization(t, db, note, "input two", "summary two")

	older := models.QuizScore{
		UserID: user.ID, SummarizationID: sumOne.ID,
		Score: 3, Total: 5, Percentage: 60, Grade: "C", TimeSeconds: 90,
		PlayedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&older).Error)
	newer := models.QuizScore{
		UserID: user.ID, SummarizationID: sumTwo.ID,
		Score: 5, Total: 5, Percentage: 100, Grade: "A+", TimeSeconds: 60,
		PlayedAt: time.Now(),
	}
	require.NoError(t, db.Create(&newer).Error)

	req := newRequest(t, http.MethodGet, "/api/notes/"+note.PublicID+"/quiz/scores", nil, user)
	req.SetPathValue("noteID", note.PublicID)
	rec := httptest.NewRecorder()
	db.GetQuizScoresForNote(rec, req)

	requireStatus(t, rec, http.StatusOK)
	var got []models.QuizScore
	decodeJSON(t, rec, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "A+", got[0].Grade)
	assert.Equal(t, "C", got[1].Grade)
}

func TestGetQuizScoresForNote_ExcludesOtherNotes(t *testing.T) {
	db := newTestHandler(t)
	user := createTestUser(t, db, "auth0|alice")
	noteA := createTestNote(t, db, user, "Note A")
	noteB := createTestNote(t, db, user, "Note B")
	sumA := createTestSummarization(t, db, noteA, "input", "summary")
	sumB := createTestSummarization(t, db, noteB, "input", "summary")

	require.NoError(t, db.Create(&models.QuizScore{
		UserID: user.ID, SummarizationID: sumA.ID,
		Score: 1, Total: 5, Percentage: 20, Grade: "F", TimeSeconds: 10,
	}).Error)
	require.NoError(t, db.Create(&models.QuizScore{
		UserID: user.ID, SummarizationID: sumB.ID,
		Score: 5, Total: 5, Percentage: 100, Grade: "A+", TimeSeconds: 10,
	}).Error)

	req := newRequest(t, http.MethodGet, "/api/notes/"+noteA.PublicID+"/quiz/scores", nil, user)
	req.SetPathValue("noteID", noteA.PublicID)
	rec := httptest.NewRecorder()
	db.GetQuizScoresForNote(rec, req)

	requireStatus(t, rec, http.StatusOK)
	var got []models.QuizScore
	decodeJSON(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, sumA.ID, got[0].SummarizationID)
}
