package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/studybuddyhq/studybuddy-api/models"
	"github.com/studybuddyhq/studybuddy-api/study"
	"github.com/studybuddyhq/studybuddy-api/utils"
)

// GET /api/summarizations/{summarizationID}/studypoints
func (db *DBHandler) GetStudyPoints(w http.ResponseWriter, r *http.Request) {
	summarization, ok := db.ownedSummarization(w, r)
	if !ok {
		return
	}

	text := study.SourceText(summarization.InputText, summarization.Summary)
	points := db.Segments.Segment(text)

	type StudyPointsResponse struct {
		Points []string `json:"points"`
		Count  int      `json:"count"`
	}
	utils.WriteJSON(w, http.StatusOK, StudyPointsResponse{
		Points: points,
		Count:  len(points),
	})
}

type MindMapResponse struct {
	Nodes      []study.MapNode `json:"nodes"`
	Edges      []study.MapEdge `json:"edges"`
	PointCount int             `json:"pointCount"`
	Message    string          `json:"message,omitempty"`
}

// GET /api/summarizations/{summarizationID}/mindmap
func (db *DBHandler) GetMindMap(w http.ResponseWriter, r *http.Request) {
	summarization, ok := db.ownedSummarization(w, r)
	if !ok {
		return
	}

	mindMap, points, ok := db.buildMindMap(w, summarization)
	if !ok {
		return
	}
	if mindMap == nil {
		utils.WriteJSON(w, http.StatusOK, MindMapResponse{
			Nodes:   []study.MapNode{},
			Edges:   []study.MapEdge{},
			Message: "No summary available",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, MindMapResponse{
		Nodes:      mindMap.Nodes(),
		Edges:      mindMap.Edges(),
		PointCount: len(points),
	})
}

// PUT /api/summarizations/{summarizationID}/mindmap/layout
func (db *DBHandler) UpdateMindMapLayout(w http.ResponseWriter, r *http.Request) {
	summarization, ok := db.ownedSummarization(w, r)
	if !ok {
		return
	}

	mindMap, _, ok := db.buildMindMap(w, summarization)
	if !ok {
		return
	}
	if mindMap == nil {
		utils.WriteError(w, http.StatusBadRequest, "No mind map to lay out")
		return
	}

	type NodeLayoutRequest struct {
		NodeID    string  `json:"nodeID"`
		XPosition float64 `json:"xPosition"`
		YPosition float64 `json:"yPosition"`
	}
	var reqLayouts []NodeLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&reqLayouts); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, req := range reqLayouts {
		// MoveNode rejects ids the derived layout does not contain.
		if !mindMap.MoveNode(req.NodeID, req.XPosition, req.YPosition) {
			utils.WriteError(w, http.StatusBadRequest, "Unknown node id "+req.NodeID)
			return
		}
	}

	// Replace stored overrides wholesale, like a full drag-state save.
	if err := db.Where("summarization_id = ?", summarization.ID).Delete(&models.MindMapNodeLayout{}).Error; err != nil {
		log.Printf("UpdateMindMapLayout: Failed to clear old node layouts: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to clear old node layouts")
		return
	}
	for _, req := range reqLayouts {
		layout := models.MindMapNodeLayout{
			SummarizationID: summarization.ID,
			NodeID:          req.NodeID,
			XPosition:       req.XPosition,
			YPosition:       req.YPosition,
		}
		if err := db.Create(&layout).Error; err != nil {
			log.Printf("UpdateMindMapLayout: Failed to save node layout: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to save node layout")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// buildMindMap derives a summarization's mind map and applies any stored
// drag positions. A nil map (with ok true) means there are no usable
// points. ok is false when the response has already been written.
func (db *DBHandler) buildMindMap(w http.ResponseWriter, summarization *models.Summarization) (*study.MindMap, []string, bool) {
	var note models.Note
	if err := db.Where("id = ?", summarization.NoteID).First(&note).Error; err != nil {
		log.Printf("buildMindMap: Note not found for summarization id=%s: %v", summarization.PublicID, err)
		utils.WriteError(w, http.StatusNotFound, "Note not found")
		return nil, nil, false
	}

	text := study.SourceText(summarization.InputText, summarization.Summary)
	points := db.Segments.Segment(text)
	if len(points) == 0 {
		return nil, nil, true
	}

	mindMap := study.NewMindMap(note.Title)
	mindMap.SetPoints(points)

	var layouts []models.MindMapNodeLayout
	if err := db.Where("summarization_id = ?", summarization.ID).Find(&layouts).Error; err != nil {
		log.Printf("buildMindMap: Failed to fetch node layouts for id=%s: %v", summarization.PublicID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch node layouts")
		return nil, nil, false
	}
	for _, l := range layouts {
		// Stale ids from before a summary edit changed the point set are
		// simply skipped.
		mindMap.MoveNode(l.NodeID, l.XPosition, l.YPosition)
	}

	return mindMap, points, true
}
