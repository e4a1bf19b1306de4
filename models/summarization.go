package models

import "gorm.io/gorm"

// Summarization is one input/summary text pair attached to a note.
// Immutable once created except by deletion.
type Summarization struct {
	gorm.Model
	PublicID  string `gorm:"size:100;uniqueIndex"`
	NoteID    uint   `gorm:"not null;index"`
	Note      Note   `gorm:"foreignKey:NoteID" json:"-"`
	InputText string `gorm:"not null;type:text"`
	Summary   string `gorm:"not null;type:text"`

	NodeLayouts []MindMapNodeLayout `gorm:"foreignKey:SummarizationID;constraint:OnDelete:CASCADE" json:"-"`
	QuizScores  []QuizScore         `gorm:"foreignKey:SummarizationID;constraint:OnDelete:CASCADE" json:"-"`
}
