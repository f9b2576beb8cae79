package service

import (
	"errors"
	"fmt"

	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/database/models"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessDecision carries the role-derived capabilities of a user on a
// specific project. It is computed fresh for every guarded operation.
type AccessDecision struct {
	Project               *models.Project `json:"project"`
	IsManager             bool            `json:"is_manager"`
	IsTeamLeaderOfProject bool            `json:"is_team_leader_of_project"`
	CanManageProject      bool            `json:"can_manage_project"`
	CanCloseProject       bool            `json:"can_close_project"`
}

// AccessGuard decides project membership and capabilities. It is read-only:
// every task store mutation must pass through CheckAccess first.
type AccessGuard struct {
	projectRepo    repository.ProjectRepositoryInterface
	membershipRepo repository.MembershipRepositoryInterface
}

// NewAccessGuard creates a new access guard
func NewAccessGuard(projectRepo repository.ProjectRepositoryInterface, membershipRepo repository.MembershipRepositoryInterface) *AccessGuard {
	return &AccessGuard{
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
	}
}

// CheckAccess resolves the project and derives the caller's capabilities on it.
// Returns ErrProjectNotFound if the project does not exist and
// ErrProjectAccessDenied if the caller is neither creator, team leader, nor an
// active member. Managers always pass the membership check since they can see
// every project.
func (g *AccessGuard) CheckAccess(projectID uuid.UUID, caller auth.Identity) (*AccessDecision, error) {
	project, err := g.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	isManager := caller.Role == models.UserRoleManager
	isTeamLeader := project.TeamLeaderID == caller.ID
	isCreator := project.CreatedBy == caller.ID

	onProject := isCreator || isTeamLeader
	if !onProject && !isManager {
		onProject, err = g.membershipRepo.HasActive(projectID, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
	}

	if !isManager && !onProject {
		return nil, apperrors.ErrProjectAccessDenied
	}

	return &AccessDecision{
		Project:               project,
		IsManager:             isManager,
		IsTeamLeaderOfProject: isTeamLeader,
		CanManageProject:      isManager || isTeamLeader,
		CanCloseProject:       isManager,
	}, nil
}
