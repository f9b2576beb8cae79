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

// ProjectService handles business logic for projects and memberships
type ProjectService struct {
	projectRepo    repository.ProjectRepositoryInterface
	membershipRepo repository.MembershipRepositoryInterface
	userRepo       repository.UserRepositoryInterface
	guard          *AccessGuard
	validator      *validator.Validate
	log            *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repository.ProjectRepositoryInterface,
	membershipRepo repository.MembershipRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	guard *AccessGuard,
	validator *validator.Validate,
) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		guard:          guard,
		validator:      validator,
		log:            logger.New(),
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name            string     `json:"name" validate:"required,min=1,max=200"`
	Description     string     `json:"description,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Priority        string     `json:"priority,omitempty"`
	TeamLeaderEmail string     `json:"team_leader_email" validate:"required,email"`
}

// ProjectResponse represents the response for project operations
type ProjectResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Status       models.ProjectStatus `json:"status"`
	Deadline     *time.Time           `json:"deadline"`
	Priority     models.TaskPriority  `json:"priority"`
	CreatedBy    uuid.UUID            `json:"created_by"`
	TeamLeaderID uuid.UUID            `json:"team_leader_id"`
	CreatedAt    string               `json:"created_at"`
}

// ProjectListResponse represents a list of projects visible to the caller
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int64             `json:"total"`
}

// MemberResponse represents an active project member
type MemberResponse struct {
	UserID   uuid.UUID          `json:"user_id"`
	Email    string             `json:"email"`
	Name     string             `json:"name"`
	Role     models.ProjectRole `json:"role"`
	JoinedAt string             `json:"joined_at"`
}

// Create creates a new project. Only global managers may create projects;
// the designated team leader gains a leader-role membership.
func (s *ProjectService) Create(req *CreateProjectRequest, caller auth.Identity) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if caller.Role != models.UserRoleManager {
		return nil, apperrors.ErrManageRightsNeeded
	}

	leader, err := s.userRepo.GetByEmail(req.TeamLeaderEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up team leader: %w", err)
	}

	project := &models.Project{
		Name:         req.Name,
		Description:  req.Description,
		Status:       models.ProjectStatusActive,
		Deadline:     req.Deadline,
		Priority:     models.NormalizeTaskPriority(req.Priority),
		CreatedBy:    caller.ID,
		TeamLeaderID: leader.ID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	membership := &models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    leader.ID,
		Role:      models.ProjectRoleTeamLeader,
		JoinedAt:  time.Now(),
	}
	if err := s.membershipRepo.Create(membership); err != nil {
		return nil, fmt.Errorf("failed to create team leader membership: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"project_id": project.ID,
		"created_by": caller.Email,
	}).Info("project created")

	return s.toResponse(project), nil
}

// Get retrieves a single project the caller has access to
func (s *ProjectService) Get(projectID uuid.UUID, caller auth.Identity) (*ProjectResponse, error) {
	decision, err := s.guard.CheckAccess(projectID, caller)
	if err != nil {
		return nil, err
	}
	return s.toResponse(decision.Project), nil
}

// List retrieves projects visible to the caller: managers see all projects,
// everyone else sees projects they created, lead, or actively belong to.
func (s *ProjectService) List(caller auth.Identity, page, pageSize int) (*ProjectListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var projects []models.Project
	var total int64
	var err error
	if caller.Role == models.UserRoleManager {
		projects, total, err = s.projectRepo.GetAll(pageSize, offset)
	} else {
		projects, total, err = s.projectRepo.GetVisibleToUser(caller.ID, pageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		responses[i] = *s.toResponse(&project)
	}

	return &ProjectListResponse{Projects: responses, Total: total}, nil
}

// Close archives a project. Only managers hold the close capability; a team
// leader cannot archive the project they lead.
func (s *ProjectService) Close(projectID uuid.UUID, caller auth.Identity) (*ProjectResponse, error) {
	decision, err := s.guard.CheckAccess(projectID, caller)
	if err != nil {
		return nil, err
	}
	if !decision.CanCloseProject {
		return nil, apperrors.ErrCloseRightsNeeded
	}

	if err := s.projectRepo.SetStatus(projectID, models.ProjectStatusArchived); err != nil {
		return nil, fmt.Errorf("failed to archive project: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"project_id": projectID,
		"user":       caller.Email,
	}).Info("project archived")

	decision.Project.Status = models.ProjectStatusArchived
	return s.toResponse(decision.Project), nil
}

// AddMember adds a user to a project with member role. Requires manage
// rights; adding an existing active member is rejected.
func (s *ProjectService) AddMember(projectID uuid.UUID, email string, caller auth.Identity) (*MemberResponse, error) {
	decision, err := s.guard.CheckAccess(projectID, caller)
	if err != nil {
		return nil, err
	}
	if !decision.CanManageProject {
		return nil, apperrors.ErrManageRightsNeeded
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	active, err := s.membershipRepo.HasActive(projectID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if active {
		return nil, apperrors.ErrMembershipExists
	}

	membership := &models.ProjectMembership{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      models.ProjectRoleMember,
		JoinedAt:  time.Now(),
	}
	if err := s.membershipRepo.Create(membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return &MemberResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     membership.Role,
		JoinedAt: membership.JoinedAt.Format(time.RFC3339),
	}, nil
}

// RemoveMember ends a user's active membership on a project. Requires manage
// rights; the membership row is kept with left_at set.
func (s *ProjectService) RemoveMember(projectID uuid.UUID, email string, caller auth.Identity) error {
	decision, err := s.guard.CheckAccess(projectID, caller)
	if err != nil {
		return err
	}
	if !decision.CanManageProject {
		return apperrors.ErrManageRightsNeeded
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.membershipRepo.End(projectID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMembershipNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// ListMembers lists the active members of a project the caller has access to
func (s *ProjectService) ListMembers(projectID uuid.UUID, caller auth.Identity) ([]MemberResponse, error) {
	if _, err := s.guard.CheckAccess(projectID, caller); err != nil {
		return nil, err
	}

	memberships, err := s.membershipRepo.ListActiveByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	responses := make([]MemberResponse, len(memberships))
	for i, membership := range memberships {
		responses[i] = MemberResponse{
			UserID:   membership.UserID,
			Email:    membership.User.Email,
			Name:     membership.User.Name,
			Role:     membership.Role,
			JoinedAt: membership.JoinedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}

func (s *ProjectService) toResponse(project *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:           project.ID,
		Name:         project.Name,
		Description:  project.Description,
		Status:       project.Status,
		Deadline:     project.Deadline,
		Priority:     project.Priority,
		CreatedBy:    project.CreatedBy,
		TeamLeaderID: project.TeamLeaderID,
		CreatedAt:    project.CreatedAt.Format(time.RFC3339),
	}
}
