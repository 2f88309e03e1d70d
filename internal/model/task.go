package model

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "New"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether the status is one of the known enum values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task represents a to-do item owned by exactly one user.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description,omitempty" gorm:"size:500"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'New';index"`
	OwnerID     uint       `json:"owner_id" gorm:"not null;index"`
}
