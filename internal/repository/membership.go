package repository

import (
	"time"

	"makeitall-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipRepository handles database operations for project memberships
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create creates a new project membership
func (r *MembershipRepository) Create(membership *models.ProjectMembership) error {
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now()
	}
	return r.db.Create(membership).Error
}

// GetActive retrieves the active membership of a user on a project
func (r *MembershipRepository) GetActive(projectID, userID uuid.UUID) (*models.ProjectMembership, error) {
	var membership models.ProjectMembership
	err := r.db.First(&membership, "project_id = ? AND user_id = ? AND left_at IS NULL", projectID, userID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// HasActive reports whether a user holds an active membership on a project
func (r *MembershipRepository) HasActive(projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ? AND left_at IS NULL", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActiveByProject retrieves all active memberships of a project with users preloaded
func (r *MembershipRepository) ListActiveByProject(projectID uuid.UUID) ([]models.ProjectMembership, error) {
	var memberships []models.ProjectMembership
	err := r.db.Preload("User").
		Where("project_id = ? AND left_at IS NULL", projectID).
		Order("joined_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// End closes the active membership of a user on a project by setting left_at
func (r *MembershipRepository) End(projectID, userID uuid.UUID) error {
	result := r.db.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ? AND left_at IS NULL", projectID, userID).
		Update("left_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
