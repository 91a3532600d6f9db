package model

import "time"

// TaskStatus enumerates the allowed task states. Any value may transition to any
// other; there is no enforced linear progression.
type TaskStatus string

const (
	StatusPlanned    TaskStatus = "planned"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task belongs to one board and one owning user. Email is a denormalized copy of
// the owner's email taken at creation time.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	BoardID     uint       `json:"board_id" gorm:"not null;index"`
	Name        string     `json:"name" gorm:"size:255;not null"`
	Description *string    `json:"description,omitempty" gorm:"size:2000"`
	Status      TaskStatus `json:"status" gorm:"size:32;not null;default:'planned'"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Email       string     `json:"email" gorm:"size:255;not null"`
	CreatedAt   time.Time  `json:"created_at"`
}
