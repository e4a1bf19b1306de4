package models

import "gorm.io/gorm"

// User represents a user in the system. Users are provisioned lazily the
// first time a new identity-provider subject shows up.
type User struct {
	gorm.Model
	Auth0ID   string `gorm:"unique;not null;size:100"`
	Name      string `gorm:"size:100"`
	Email     string `gorm:"size:200"`
	AvatarURL string `gorm:"size:500"`

	Notes []Note `gorm:"foreignKey:UserID"`
}
