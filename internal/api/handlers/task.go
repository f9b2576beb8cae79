package handlers

import (
	"errors"
	"net/http"

	"makeitall-backend/internal/auth"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations. Mutation responses
// use the board's success envelope so the client can distinguish a rejected
// mutation from a transport failure.
type TaskHandler struct {
	taskService service.TaskServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// UpdateStatusRequest carries a UI-facing status token
type UpdateStatusRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
}

// UpdatePriorityRequest carries a UI-facing priority token
type UpdatePriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

// ListProjectTasks handles GET /projects/:id/tasks
// @Summary List tasks for a project
// @Description Managers and the project's team leader see all tasks; members see only tasks assigned to them
// @Tags tasks
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.TaskListResponse "Caller-scoped task list"
// @Failure 403 {object} map[string]interface{} "Not a project member"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	tasks, err := h.taskService.ListProjectTasks(projectID, caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListAssignedTasks handles GET /tasks/assigned
// @Summary List tasks assigned to the caller
// @Tags tasks
// @Produce json
// @Success 200 {object} service.TaskListResponse "Tasks assigned to the caller"
// @Security BearerAuth
// @Router /tasks/assigned [get]
func (h *TaskHandler) ListAssignedTasks(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	tasks, err := h.taskService.ListAssignedTasks(caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /projects/:id/tasks
// @Summary Create a task
// @Description Requires manage rights on the project. Non-member assignees are rejected unless add_missing_members is set
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} map[string]interface{} "success envelope with task"
// @Failure 400 {object} map[string]interface{} "Missing name, deadline or assignees"
// @Failure 403 {object} map[string]interface{} "No manage rights"
// @Failure 409 {object} map[string]interface{} "Assignees not project members"
// @Security BearerAuth
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid project ID"})
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	req.ProjectID = projectID

	task, err := h.taskService.Create(&req, caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "task_id": task.ID, "task": task})
}

// UpdateTask handles PUT /tasks/:id
// @Summary Update a task's fields and assignment set
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param task body service.UpdateTaskRequest true "Updated task data"
// @Success 200 {object} map[string]interface{} "success envelope with task"
// @Failure 403 {object} map[string]interface{} "No manage rights"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid task ID"})
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	task, err := h.taskService.Update(taskID, &req, caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// UpdateStatus handles PATCH /tasks/:id/status
// @Summary Move a task to a new status
// @Description Manage rights allow any transition; assignees may only move their own to_do/in_progress tasks to review
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param status body UpdateStatusRequest true "Target status"
// @Success 200 {object} map[string]interface{} "success envelope"
// @Failure 403 {object} map[string]interface{} "Transition not permitted"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid task ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, req.NewStatus, caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// MarkComplete handles POST /tasks/:id/complete
// @Summary Assignee self-complete
// @Description Moves the caller's own to_do/in_progress task to review
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 200 {object} map[string]interface{} "success envelope"
// @Failure 403 {object} map[string]interface{} "Not an eligible assignee"
// @Security BearerAuth
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) MarkComplete(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid task ID"})
		return
	}

	task, err := h.taskService.MarkComplete(taskID, caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// UpdatePriority handles PATCH /tasks/:id/priority
// @Summary Change a task's priority
// @Description Manage rights only; there is no self-service priority change
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param priority body UpdatePriorityRequest true "Target priority"
// @Success 200 {object} map[string]interface{} "success envelope"
// @Failure 403 {object} map[string]interface{} "No manage rights"
// @Security BearerAuth
// @Router /tasks/{id}/priority [patch]
func (h *TaskHandler) UpdatePriority(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid task ID"})
		return
	}

	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	task, err := h.taskService.UpdatePriority(taskID, req.Priority, caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// DeleteTask handles DELETE /tasks/:id
// @Summary Delete a task
// @Description Removes the task and its assignment rows
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 200 {object} map[string]interface{} "success envelope"
// @Failure 403 {object} map[string]interface{} "No manage rights"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid task ID"})
		return
	}

	if err := h.taskService.Delete(taskID, caller); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondTaskError maps service errors onto the success envelope with the
// right HTTP status. Authorization failures are explicit rejections, never
// silent no-ops.
func respondTaskError(c *gin.Context, err error) {
	var authzErr *apperrors.AuthorizationError
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var notMembersErr *apperrors.AssigneesNotMembersError
	var validatorErrs validator.ValidationErrors

	switch {
	case errors.As(err, &notMembersErr):
		c.JSON(http.StatusConflict, gin.H{
			"success":         false,
			"message":         notMembersErr.Error(),
			"missing_members": notMembersErr.Emails,
		})
	case errors.As(err, &authzErr):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": authzErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundErr.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Error()})
	case errors.As(err, &validatorErrs):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}
