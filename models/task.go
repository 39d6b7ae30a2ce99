package models

import "time"

// Task is one maintenance task assigned to a user. Status is a one-way
// transition from open to closed; ClosedAt is set exactly once when the
// assigned user closes the task.
type Task struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Line          string     `gorm:"not null" json:"line"`
	Machine       string     `gorm:"not null" json:"machine"`
	Description   string     `gorm:"not null" json:"description"`
	AssignedToID  uint       `gorm:"column:assigned_to;not null" json:"assigned_to"`
	Status        string     `gorm:"not null;default:'open'" json:"status"`
	Documentation string     `json:"documentation"`
	Points        int        `gorm:"not null;default:1" json:"points"`
	Frequency     string     `json:"frequency"`
	CreatedAt     time.Time  `json:"created_at"`
	ClosedAt      *time.Time `json:"closed_at"`
}
