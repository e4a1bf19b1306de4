package models

import "gorm.io/gorm"

// Note is a user-owned titled container for summarizations
type Note struct {
	gorm.Model
	Title    string `gorm:"not null;size:200"`
	PublicID string `gorm:"size:100;uniqueIndex"`
	UserID   uint   `gorm:"not null;index"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`

	Summarizations []Summarization `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}
