package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/studybuddyhq/studybuddy-api/utils"
)

var summaryLengthMap = map[string]string{
	"short":  "very concise (1-2 sentences)",
	"medium": "concise (1 paragraph)",
	"long":   "detailed but still summarized (2-3 paragraphs)",
}

var summaryFormatMap = map[string]string{
	"paragraph": "a coherent paragraph",
	"bullet":    "bullet points",
	"numbered":  "numbered list",
}

var summaryFocusMap = map[string]string{
	"keyPoints":   "focus on the key points and main ideas",
	"detailed":    "include important details along with main ideas",
	"actionItems": "focus on action items and conclusions",
}

// SummarizeRequest carries the text to summarize plus the options exposed
// on the summarize screen.
type SummarizeRequest struct {
	InputText string `json:"inputText"`
	Length    string `json:"length"`
	Format    string `json:"format"`
	Focus     string `json:"focus"`
}

// POST /api/summarize
//
// One AI round trip: the caller saves the returned summary through the
// summarization CRUD when the user accepts it.
func (db *DBHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFromRequest(r); !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if db.AI == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "AI provider not configured")
		return
	}

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Summarize: Invalid request body: %v", err)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.InputText) == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing inputText")
		return
	}

	length, ok := summaryLengthMap[req.Length]
	if !ok {
		length = summaryLengthMap["medium"]
	}
	format, ok := summaryFormatMap[req.Format]
	if !ok {
		format = summaryFormatMap["paragraph"]
	}
	focus, ok := summaryFocusMap[req.Focus]
	if !ok {
		focus = summaryFocusMap["keyPoints"]
	}

	prompt := fmt.Sprintf(`Please summarize the following text according to these specifications:
- Length: %s
- Format: %s
- Focus: %s

Text to summarize:
"%s"

Format the summary with clear, concise points using simple dashes (-) instead of asterisks.
Make each point well-structured and easily readable. Avoid using *** or ** or * for formatting or highlighting.
If the format is bullet points or numbered list, ensure each item is a complete sentence without the asterisks.`,
		length, format, focus, req.InputText)

	summary, err := db.AI.Complete(r.Context(), prompt)
	if err != nil {
		log.Printf("Summarize: Completion failed: %v", err)
		utils.WriteError(w, http.StatusBadGateway, "Failed to generate summary")
		return
	}

	type SummarizeResponse struct {
		Summary string `json:"summary"`
	}
	utils.WriteJSON(w, http.StatusOK, SummarizeResponse{Summary: summary})
}
