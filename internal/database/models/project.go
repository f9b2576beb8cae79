package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a managed project with a single team leader
type Project struct {
	BaseModel
	Name         string        `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description  string        `json:"description" gorm:"type:text"`
	Status       ProjectStatus `json:"status" gorm:"type:varchar(50);not null;default:'active'" validate:"required"`
	Deadline     *time.Time    `json:"deadline"`
	Priority     TaskPriority  `json:"priority" gorm:"type:varchar(50);default:'medium'"`
	CreatedBy    uuid.UUID     `json:"created_by" gorm:"type:uuid;not null;index" validate:"required"`
	TeamLeaderID uuid.UUID     `json:"team_leader_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Creator     User                `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	TeamLeader  User                `json:"team_leader,omitempty" gorm:"foreignKey:TeamLeaderID"`
	Memberships []ProjectMembership `json:"memberships,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tasks       []Task              `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}

// IsArchived reports whether the project has been soft-closed
func (p *Project) IsArchived() bool {
	return p.Status == ProjectStatusArchived
}
