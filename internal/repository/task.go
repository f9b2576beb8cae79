package repository

import (
	"makeitall-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks and their assignments
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a task and its assignment rows in a single transaction
func (r *TaskRepository) Create(task *models.Task, assigneeIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		for _, userID := range assigneeIDs {
			assignment := &models.TaskAssignment{
				TaskID: task.ID,
				UserID: userID,
			}
			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a task with assignees and their users preloaded
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("Assignees.User").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByProjectID retrieves all tasks of a project with assignees preloaded
func (r *TaskRepository) GetByProjectID(projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Assignees.User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByProjectIDForAssignee retrieves only the project's tasks assigned to the given user
func (r *TaskRepository) GetByProjectIDForAssignee(projectID, userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Assignees.User").
		Where("project_id = ? AND id IN (SELECT task_id FROM task_assignments WHERE user_id = ?)", projectID, userID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByAssignee retrieves all tasks assigned to a user across projects
func (r *TaskRepository) GetByAssignee(userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Assignees.User").
		Where("id IN (SELECT task_id FROM task_assignments WHERE user_id = ?)", userID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task's own fields (not its assignments)
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Omit("Assignees").Save(task).Error
}

// UpdateStatus sets the status of a task
func (r *TaskRepository) UpdateStatus(id uuid.UUID, status models.TaskStatus) error {
	result := r.db.Model(&models.Task{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePriority sets the priority of a task
func (r *TaskRepository) UpdatePriority(id uuid.UUID, priority models.TaskPriority) error {
	result := r.db.Model(&models.Task{}).Where("id = ?", id).Update("priority", priority)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceAssignments swaps the task's assignment set for the given users in a transaction
func (r *TaskRepository) ReplaceAssignments(taskID uuid.UUID, assigneeIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TaskAssignment{}, "task_id = ?", taskID).Error; err != nil {
			return err
		}
		for _, userID := range assigneeIDs {
			assignment := &models.TaskAssignment{
				TaskID: taskID,
				UserID: userID,
			}
			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a task and its assignment rows in a single transaction so no
// orphaned assignments survive.
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TaskAssignment{}, "task_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Task{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
