package models

import (
	"github.com/google/uuid"
)

// TaskAssignment is the many-to-many link between a task and a responsible
// user. Uniqueness is enforced per (task, user) pair.
type TaskAssignment struct {
	BaseModel
	TaskID uuid.UUID `json:"task_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_assignments_task_user" validate:"required"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_assignments_task_user" validate:"required"`

	// Relationships
	Task Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TaskAssignment
func (TaskAssignment) TableName() string {
	return "task_assignments"
}
