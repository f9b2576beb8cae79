package repository

import (
	"makeitall-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmails(emails []string) ([]models.User, error)
	GetAll(limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetAll(limit, offset int) ([]models.Project, int64, error)
	GetVisibleToUser(userID uuid.UUID, limit, offset int) ([]models.Project, int64, error)
	Update(project *models.Project) error
	SetStatus(projectID uuid.UUID, status models.ProjectStatus) error
}

// MembershipRepositoryInterface defines the interface for project membership operations
type MembershipRepositoryInterface interface {
	Create(membership *models.ProjectMembership) error
	GetActive(projectID, userID uuid.UUID) (*models.ProjectMembership, error)
	HasActive(projectID, userID uuid.UUID) (bool, error)
	ListActiveByProject(projectID uuid.UUID) ([]models.ProjectMembership, error)
	End(projectID, userID uuid.UUID) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task, assigneeIDs []uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Task, error)
	GetByProjectID(projectID uuid.UUID) ([]models.Task, error)
	GetByProjectIDForAssignee(projectID, userID uuid.UUID) ([]models.Task, error)
	GetByAssignee(userID uuid.UUID) ([]models.Task, error)
	Update(task *models.Task) error
	UpdateStatus(id uuid.UUID, status models.TaskStatus) error
	UpdatePriority(id uuid.UUID, priority models.TaskPriority) error
	ReplaceAssignments(taskID uuid.UUID, assigneeIDs []uuid.UUID) error
	Delete(id uuid.UUID) error
}
