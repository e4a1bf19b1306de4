package models

import (
	"gorm.io/gorm"
)

// MindMapNodeLayout stores a user-dragged node position for a
// summarization's mind map. The map itself is derived from the summary
// text on every request; only position overrides are persisted so a drag
// survives recomputation.
type MindMapNodeLayout struct {
	gorm.Model
	SummarizationID uint    `gorm:"not null;index"`
	NodeID          string  `gorm:"not null;size:50"`
	XPosition       float64 `gorm:"not null"`
	YPosition       float64 `gorm:"not null"`
}
