package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"makeitall-backend/internal/auth"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectService service.ProjectServiceInterface
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService service.ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// MemberRequest identifies a user to add or remove by email
type MemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateProject handles POST /projects
// @Summary Create a new project
// @Description Managers create projects and designate the single team leader
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project data"
// @Success 201 {object} service.ProjectResponse "Created project"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Caller is not a manager"
// @Failure 404 {object} map[string]interface{} "Team leader not found"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(&req, caller)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject handles GET /projects/:id
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse "Project"
// @Failure 403 {object} map[string]interface{} "Not a project member"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	project, err := h.projectService.Get(id, caller)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects handles GET /projects
// @Summary List projects visible to the caller
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.ProjectListResponse "Visible projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	projects, err := h.projectService.List(caller, page, pageSize)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// CloseProject handles POST /projects/:id/close
// @Summary Archive a project
// @Description Soft-close; managers only, team leaders cannot archive their own project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse "Archived project"
// @Failure 403 {object} map[string]interface{} "Caller may not close projects"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/close [post]
func (h *ProjectHandler) CloseProject(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	project, err := h.projectService.Close(id, caller)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListMembers handles GET /projects/:id/members
// @Summary List active project members
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {array} service.MemberResponse "Active members"
// @Security BearerAuth
// @Router /projects/{id}/members [get]
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	members, err := h.projectService.ListMembers(id, caller)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// AddMember handles POST /projects/:id/members
// @Summary Add a project member
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param member body MemberRequest true "User email"
// @Success 201 {object} service.MemberResponse "New membership"
// @Failure 403 {object} map[string]interface{} "No manage rights"
// @Failure 409 {object} map[string]interface{} "Already a member"
// @Security BearerAuth
// @Router /projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.projectService.AddMember(id, req.Email, caller)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// RemoveMember handles DELETE /projects/:id/members
// @Summary End a user's project membership
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param member body MemberRequest true "User email"
// @Success 204 "Membership ended"
// @Failure 403 {object} map[string]interface{} "No manage rights"
// @Failure 404 {object} map[string]interface{} "No active membership"
// @Security BearerAuth
// @Router /projects/{id}/members [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.RemoveMember(id, req.Email, caller); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func respondProjectError(c *gin.Context, err error) {
	var authzErr *apperrors.AuthorizationError
	var notFoundErr *apperrors.NotFoundError
	var existsErr *apperrors.AlreadyExistsError

	switch {
	case errors.As(err, &authzErr):
		c.JSON(http.StatusForbidden, gin.H{"error": authzErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &existsErr):
		c.JSON(http.StatusConflict, gin.H{"error": existsErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
