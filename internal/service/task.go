package service

import (
	"errors"
	"fmt"
	"time"

	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/database/models"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/logger"
	"makeitall-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles business logic for tasks and their assignments.
// Every mutation passes through the access guard before touching the store.
type TaskService struct {
	taskRepo          repository.TaskRepositoryInterface
	userRepo          repository.UserRepositoryInterface
	membershipRepo    repository.MembershipRepositoryInterface
	guard             *AccessGuard
	validator         *validator.Validate
	allowPastDeadline bool
	log               *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repository.TaskRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	membershipRepo repository.MembershipRepositoryInterface,
	guard *AccessGuard,
	validator *validator.Validate,
	allowPastDeadline bool,
) *TaskService {
	return &TaskService{
		taskRepo:          taskRepo,
		userRepo:          userRepo,
		membershipRepo:    membershipRepo,
		guard:             guard,
		validator:         validator,
		allowPastDeadline: allowPastDeadline,
		log:               logger.New(),
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	ProjectID      uuid.UUID  `json:"project_id" validate:"required"`
	Name           string     `json:"name" validate:"required,min=1,max=200"`
	Description    string     `json:"description,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	Status         string     `json:"status,omitempty"`
	Deadline       *time.Time `json:"deadline" validate:"required"`
	AssigneeEmails []string   `json:"assignee_emails" validate:"required,min=1,dive,email"`
	// AddMissingMembers records the caller's confirmed intent to add
	// non-member assignees to the project as members.
	AddMissingMembers bool `json:"add_missing_members,omitempty"`
}

// UpdateTaskRequest represents the request to update a task's fields
type UpdateTaskRequest struct {
	Name              string     `json:"name" validate:"required,min=1,max=200"`
	Description       string     `json:"description,omitempty"`
	Priority          string     `json:"priority,omitempty"`
	Deadline          *time.Time `json:"deadline" validate:"required"`
	AssigneeEmails    []string   `json:"assignee_emails" validate:"required,min=1,dive,email"`
	AddMissingMembers bool       `json:"add_missing_members,omitempty"`
}

// AssigneeResponse is the embedded assignee object rendered on task cards
type AssigneeResponse struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID          uuid.UUID           `json:"id"`
	ProjectID   uuid.UUID           `json:"project_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Deadline    *time.Time          `json:"deadline"`
	CreatedAt   string              `json:"created_at"`
	CreatedBy   uuid.UUID           `json:"created_by"`
	Assignees   []AssigneeResponse  `json:"assignees"`
}

// TaskListResponse represents a caller-scoped list of tasks
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// ListProjectTasks returns the caller-scoped task list for a project:
// callers with manage rights see every task, everyone else sees only the
// tasks they are assigned to.
func (s *TaskService) ListProjectTasks(projectID uuid.UUID, caller auth.Identity) (*TaskListResponse, error) {
	decision, err := s.guard.CheckAccess(projectID, caller)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if decision.CanManageProject {
		tasks, err = s.taskRepo.GetByProjectID(projectID)
	} else {
		tasks, err = s.taskRepo.GetByProjectIDForAssignee(projectID, caller.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *s.toResponse(&task)
	}

	return &TaskListResponse{Tasks: responses, Total: len(responses)}, nil
}

// ListAssignedTasks returns every task assigned to the caller across projects
// (the personal to-do view).
func (s *TaskService) ListAssignedTasks(caller auth.Identity) (*TaskListResponse, error) {
	tasks, err := s.taskRepo.GetByAssignee(caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *s.toResponse(&task)
	}

	return &TaskListResponse{Tasks: responses, Total: len(responses)}, nil
}

// Create creates a task with its assignments. Requires manage rights on the
// project. Assignees who are not yet project members are rejected unless the
// caller confirmed adding them, in which case membership is ensured first.
func (s *TaskService) Create(req *CreateTaskRequest, caller auth.Identity) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	decision, err := s.guard.CheckAccess(req.ProjectID, caller)
	if err != nil {
		return nil, err
	}
	if !decision.CanManageProject {
		return nil, apperrors.ErrManageRightsNeeded
	}

	if !s.allowPastDeadline && req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return nil, &apperrors.ValidationError{Field: "deadline", Message: "deadline must not be in the past"}
	}

	assignees, err := s.resolveAssignees(decision.Project, req.AssigneeEmails, req.AddMissingMembers)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.NormalizeTaskStatus(req.Status),
		Priority:    models.NormalizeTaskPriority(req.Priority),
		Deadline:    req.Deadline,
		CreatedBy:   caller.ID,
	}

	assigneeIDs := make([]uuid.UUID, len(assignees))
	for i, user := range assignees {
		assigneeIDs[i] = user.ID
	}

	if err := s.taskRepo.Create(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"task_id":    task.ID,
		"project_id": task.ProjectID,
		"created_by": caller.Email,
	}).Info("task created")

	created, err := s.taskRepo.GetByID(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload created task: %w", err)
	}
	return s.toResponse(created), nil
}

// Update replaces a task's fields and assignment set. Requires manage rights.
func (s *TaskService) Update(taskID uuid.UUID, req *UpdateTaskRequest, caller auth.Identity) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}

	decision, err := s.guard.CheckAccess(task.ProjectID, caller)
	if err != nil {
		return nil, err
	}
	if !decision.CanManageProject {
		return nil, apperrors.ErrManageRightsNeeded
	}

	if !s.allowPastDeadline && req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return nil, &apperrors.ValidationError{Field: "deadline", Message: "deadline must not be in the past"}
	}

	assignees, err := s.resolveAssignees(decision.Project, req.AssigneeEmails, req.AddMissingMembers)
	if err != nil {
		return nil, err
	}

	task.Name = req.Name
	task.Description = req.Description
	task.Deadline = req.Deadline
	if req.Priority != "" {
		task.Priority = models.NormalizeTaskPriority(req.Priority)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	assigneeIDs := make([]uuid.UUID, len(assignees))
	for i, user := range assignees {
		assigneeIDs[i] = user.ID
	}
	if err := s.taskRepo.ReplaceAssignments(task.ID, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to replace assignments: %w", err)
	}

	updated, err := s.taskRepo.GetByID(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated task: %w", err)
	}
	return s.toResponse(updated), nil
}

// UpdateStatus moves a task to a new board column. Callers with manage
// rights may move any task to any status. An assignee without manage rights
// may only perform the self-complete transition: to_do or in_progress to
// review. Everything else is rejected without touching the task.
func (s *TaskService) UpdateStatus(taskID uuid.UUID, rawStatus string, caller auth.Identity) (*TaskResponse, error) {
	newStatus, ok := models.ParseTaskStatus(rawStatus)
	if !ok {
		return nil, &apperrors.ValidationError{Field: "new_status", Message: "unrecognized status value"}
	}

	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}

	decision, err := s.guard.CheckAccess(task.ProjectID, caller)
	if err != nil {
		return nil, err
	}

	if !decision.CanManageProject {
		if !s.isSelfComplete(task, newStatus, caller) {
			return nil, apperrors.ErrSelfCompleteDenied
		}
	}

	if err := s.taskRepo.UpdateStatus(task.ID, newStatus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"task_id": task.ID,
		"from":    task.Status,
		"to":      newStatus,
		"user":    caller.Email,
	}).Info("task status changed")

	task.Status = newStatus
	return s.toResponse(task), nil
}

// MarkComplete performs the assignee self-complete transition to review.
func (s *TaskService) MarkComplete(taskID uuid.UUID, caller auth.Identity) (*TaskResponse, error) {
	return s.UpdateStatus(taskID, string(models.TaskStatusReview), caller)
}

// UpdatePriority sets a task's priority. Manage rights only; there is no
// self-service priority change.
func (s *TaskService) UpdatePriority(taskID uuid.UUID, rawPriority string, caller auth.Identity) (*TaskResponse, error) {
	priority := models.NormalizeTaskPriority(rawPriority)

	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}

	decision, err := s.guard.CheckAccess(task.ProjectID, caller)
	if err != nil {
		return nil, err
	}
	if !decision.CanManageProject {
		return nil, apperrors.ErrManageRightsNeeded
	}

	if err := s.taskRepo.UpdatePriority(task.ID, priority); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update priority: %w", err)
	}

	task.Priority = priority
	return s.toResponse(task), nil
}

// Delete removes a task and its assignment rows. Manage rights only.
func (s *TaskService) Delete(taskID uuid.UUID, caller auth.Identity) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}

	decision, err := s.guard.CheckAccess(task.ProjectID, caller)
	if err != nil {
		return err
	}
	if !decision.CanManageProject {
		return apperrors.ErrManageRightsNeeded
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"task_id": task.ID,
		"user":    caller.Email,
	}).Info("task deleted")

	return nil
}

// isSelfComplete reports whether the caller may perform the requested move
// without manage rights: assignee on the task, current status in
// {to_do, in_progress}, target status review.
func (s *TaskService) isSelfComplete(task *models.Task, newStatus models.TaskStatus, caller auth.Identity) bool {
	if newStatus != models.TaskStatusReview {
		return false
	}
	if task.Status != models.TaskStatusToDo && task.Status != models.TaskStatusInProgress {
		return false
	}
	return task.IsAssignedTo(caller.ID)
}

// resolveAssignees maps assignee emails to users and enforces the membership
// invariant. Non-member assignees either abort the mutation with the list of
// offending emails, or are added as members when the caller confirmed it.
func (s *TaskService) resolveAssignees(project *models.Project, emails []string, addMissing bool) ([]models.User, error) {
	users, err := s.userRepo.GetByEmails(emails)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignees: %w", err)
	}

	byEmail := make(map[string]models.User, len(users))
	for _, user := range users {
		byEmail[user.Email] = user
	}
	var unknown []string
	for _, email := range emails {
		if _, ok := byEmail[email]; !ok {
			unknown = append(unknown, email)
		}
	}
	if len(unknown) > 0 {
		return nil, &apperrors.ValidationError{Field: "assignee_emails", Message: "unknown users: " + unknown[0]}
	}

	var missing []string
	resolved := make([]models.User, 0, len(users))
	for _, email := range emails {
		user := byEmail[email]
		resolved = append(resolved, user)

		if user.ID == project.CreatedBy || user.ID == project.TeamLeaderID {
			continue
		}
		active, err := s.membershipRepo.HasActive(project.ID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if !active {
			missing = append(missing, email)
		}
	}

	if len(missing) > 0 && !addMissing {
		return nil, &apperrors.AssigneesNotMembersError{Emails: missing}
	}

	// Explicit two-step: ensure membership first, then assign.
	if len(missing) > 0 {
		for _, email := range missing {
			user := byEmail[email]
			if err := s.ensureMembership(project.ID, user.ID); err != nil {
				return nil, err
			}
			s.log.WithFields(map[string]interface{}{
				"project_id": project.ID,
				"user":       email,
			}).Info("added assignee as project member")
		}
	}

	return resolved, nil
}

// ensureMembership creates an active member-role membership if none exists
func (s *TaskService) ensureMembership(projectID, userID uuid.UUID) error {
	active, err := s.membershipRepo.HasActive(projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if active {
		return nil
	}
	membership := &models.ProjectMembership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      models.ProjectRoleMember,
		JoinedAt:  time.Now(),
	}
	if err := s.membershipRepo.Create(membership); err != nil {
		return fmt.Errorf("failed to add project member: %w", err)
	}
	return nil
}

func (s *TaskService) getTask(taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *TaskService) toResponse(task *models.Task) *TaskResponse {
	assignees := make([]AssigneeResponse, len(task.Assignees))
	for i, assignment := range task.Assignees {
		assignees[i] = AssigneeResponse{
			ID:     assignment.UserID,
			Email:  assignment.User.Email,
			Name:   assignment.User.Name,
			Avatar: assignment.User.AvatarURL,
		}
	}

	return &TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		CreatedBy:   task.CreatedBy,
		Assignees:   assignees,
	}
}
