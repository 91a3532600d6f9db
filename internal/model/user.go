package model

import "time"

// User represents a registered account. The password hash is never exposed in JSON.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations; dependent rows are removed by the schema's cascade rules.
	Boards []Board `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tasks  []Task  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
