package model

import "time"

// Board is a named collection of tasks owned by exactly one user.
type Board struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Deleting a board removes its tasks via the foreign key cascade.
	Tasks []Task `json:"-" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// BoardWithCount pairs a board with the number of tasks attached to it.
type BoardWithCount struct {
	Board
	TasksCount int64 `json:"tasks_count"`
}
