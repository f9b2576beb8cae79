package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMembership links a user to a project. A nil LeftAt means the
// membership is active; leaving a project sets LeftAt instead of deleting
// the row so history is preserved.
type ProjectMembership struct {
	BaseModel
	ProjectID uuid.UUID   `json:"project_id" gorm:"type:uuid;not null;index:idx_memberships_project_user" validate:"required"`
	UserID    uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index:idx_memberships_project_user" validate:"required"`
	Role      ProjectRole `json:"role" gorm:"type:varchar(50);not null;default:'member'"`
	JoinedAt  time.Time   `json:"joined_at" gorm:"not null"`
	LeftAt    *time.Time  `json:"left_at,omitempty"`

	// Relationships
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ProjectMembership
func (ProjectMembership) TableName() string {
	return "project_memberships"
}

// IsActive reports whether the membership has not been ended
func (m *ProjectMembership) IsActive() bool {
	return m.LeftAt == nil
}
