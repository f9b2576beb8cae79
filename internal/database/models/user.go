package models

// User represents an authenticated portal employee
type User struct {
	BaseModel
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Name         string   `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	AvatarURL    string   `json:"avatar_url" gorm:"size:500"`
	Role         UserRole `json:"role" gorm:"type:varchar(50);not null;default:'team_member'" validate:"required"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	IsActive     bool     `json:"is_active" gorm:"default:true"`

	// Relationships
	Memberships []ProjectMembership `json:"memberships,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Assignments []TaskAssignment    `json:"assignments,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user holds the global manager role
func (u *User) IsManager() bool {
	return u.Role == UserRoleManager
}
