package models

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a unit of work on a project board. Status is always one of
// the four board columns; priority is always one of the three levels.
type Task struct {
	BaseModel
	ProjectID   uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name        string       `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(50);not null;default:'to_do'" validate:"required"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(50);not null;default:'medium'" validate:"required"`
	Deadline    *time.Time   `json:"deadline"`
	CreatedBy   uuid.UUID    `json:"created_by" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Project   Project          `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Creator   User             `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Assignees []TaskAssignment `json:"assignees,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// IsAssignedTo reports whether the given user appears in the task's assignment list
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	for _, a := range t.Assignees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
