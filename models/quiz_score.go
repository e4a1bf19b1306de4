package models

import (
	"time"
)

// QuizScore records one completed quiz attempt against a summarization.
type QuizScore struct {
	ID              uint          `gorm:"primaryKey"`
	UserID          uint          `gorm:"not null;index"`
	User            User          `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	SummarizationID uint          `gorm:"not null;index"`
	Summarization   Summarization `gorm:"foreignKey:SummarizationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Score           int           `gorm:"not null"`
	Total           int           `gorm:"not null"`
	Percentage      int           `gorm:"not null"`
	Grade           string        `gorm:"not null;size:2"`
	TimeSeconds     int           `gorm:"not null"`
	Difficulty      string        `gorm:"size:10"`
	PlayedAt        time.Time     `gorm:"autoCreateTime"`
}
