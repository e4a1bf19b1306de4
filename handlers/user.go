package handlers

import (
	"net/http"

	"github.com/studybuddyhq/studybuddy-api/utils"
)

// GET /api/me
func (db *DBHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}
