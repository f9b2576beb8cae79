package repository

import (
	"makeitall-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetAll retrieves all projects with pagination
func (r *ProjectRepository) GetAll(limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetVisibleToUser retrieves projects where the user is creator, team leader,
// or holds an active membership.
func (r *ProjectRepository) GetVisibleToUser(userID uuid.UUID, limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{}).
		Where(`created_by = ? OR team_leader_id = ? OR id IN (
			SELECT project_id FROM project_memberships WHERE user_id = ? AND left_at IS NULL
		)`, userID, userID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// SetStatus sets the status of a project
func (r *ProjectRepository) SetStatus(projectID uuid.UUID, status models.ProjectStatus) error {
	return r.db.Model(&models.Project{}).Where("id = ?", projectID).Update("status", status).Error
}
