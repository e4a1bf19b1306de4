package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studybuddyhq/studybuddy-api/config"
	"github.com/studybuddyhq/studybuddy-api/middleware"
	"github.com/studybuddyhq/studybuddy-api/models"
)

func newTestHandler(t *testing.T) *DBHandler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; pin the pool to
	// one so every query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	return NewDBHandler(db, nil)
}

func createTestUser(t *testing.T, db *DBHandler, auth0ID string) *models.User {
	t.Helper()
	user := models.User{
		Auth0ID: auth0ID,
		Name:    "Test User",
		Email:   auth0ID + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestNote(t *testing.T, db *DBHandler, user *models.User, title string) *models.Note {
	t.Helper()
	publicID, err := gonanoid.New()
	require.NoError(t, err)
	note := models.Note{Title: title, PublicID: publicID, UserID: user.ID}
	require.NoError(t, db.Create(&note).Error)
	return &note
}

func createTestSummarization(t *testing.T, db *DBHandler, note *models.Note, inputText, summary string) *models.Summarization {
	t.Helper()
	publicID, err := gonanoid.New()
	require.NoError(t, err)
	s := models.Summarization{
		PublicID:  publicID,
		NoteID:    note.ID,
		InputText: inputText,
		Summary:   summary,
	}
	require.NoError(t, db.Create(&s).Error)
	return &s
}

// newRequest builds a request carrying the resolved user, the way
// SyncUserMiddleware leaves it for the handlers.
func newRequest(t *testing.T, method, target string, body any, user *models.User) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, user))
	}
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v),
		"body: %s", rec.Body.String())
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

// threeSentenceSummary segments into three study points.
var threeSentenceSummary = fmt.Sprintf("%s %s %s",
	"Mitochondria produce most of the cell's energy supply.",
	"Ribosomes assemble proteins from amino acids.",
	"The nucleus stores the cell's genetic material.")
