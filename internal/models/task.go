package models

import "time"

// Status and priority are free-form; these are only the values
// assigned when a task is created without one.
const (
	DefaultStatus   = "pending"
	DefaultPriority = "medium"
)

type Task struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Priority    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
