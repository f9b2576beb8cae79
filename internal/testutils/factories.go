package testutils

import (
	"fmt"
	"time"

	"makeitall-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		// Unique email per user to avoid unique index conflicts
		Email:    fmt.Sprintf("user-%s@test.com", id.String()[:8]),
		Name:     "Test User",
		Role:     models.UserRoleTeamMember,
		IsActive: true,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role models.UserRole) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// Manager creates a test user with the manager role
func (f *UserFactory) Manager() *models.User {
	return f.WithRole(models.UserRoleManager)
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create() *models.Project {
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Project",
		Description: "A test project",
		Status:      models.ProjectStatusActive,
		Priority:    models.TaskPriorityMedium,
		CreatedBy:   uuid.New(),
	}
}

// WithCreator sets the creating user for the project
func (f *ProjectFactory) WithCreator(userID uuid.UUID) *models.Project {
	project := f.Create()
	project.CreatedBy = userID
	return project
}

// WithTeamLeader sets the team leader for the project
func (f *ProjectFactory) WithTeamLeader(userID uuid.UUID) *models.Project {
	project := f.Create()
	project.TeamLeaderID = userID
	return project
}

// Archived creates an archived test project
func (f *ProjectFactory) Archived() *models.Project {
	project := f.Create()
	project.Status = models.ProjectStatusArchived
	return project
}

// MembershipFactory provides methods to create test ProjectMembership data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Create creates an active member-role membership linking a project and a user
func (f *MembershipFactory) Create(projectID, userID uuid.UUID) *models.ProjectMembership {
	return &models.ProjectMembership{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID: projectID,
		UserID:    userID,
		Role:      models.ProjectRoleMember,
		JoinedAt:  time.Now(),
	}
}

// Ended creates a membership that has already been ended
func (f *MembershipFactory) Ended(projectID, userID uuid.UUID) *models.ProjectMembership {
	m := f.Create(projectID, userID)
	left := time.Now()
	m.LeftAt = &left
	return m
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task with default values
func (f *TaskFactory) Create(projectID uuid.UUID) *models.Task {
	deadline := time.Now().Add(7 * 24 * time.Hour)
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:   projectID,
		Name:        "Test Task",
		Description: "A test task",
		Status:      models.TaskStatusToDo,
		Priority:    models.TaskPriorityMedium,
		Deadline:    &deadline,
		CreatedBy:   uuid.New(),
	}
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(projectID uuid.UUID, status models.TaskStatus) *models.Task {
	task := f.Create(projectID)
	task.Status = status
	return task
}

// WithAssignee attaches an assignment row for the given user
func (f *TaskFactory) WithAssignee(projectID, userID uuid.UUID) *models.Task {
	task := f.Create(projectID)
	task.Assignees = []models.TaskAssignment{
		{
			BaseModel: models.BaseModel{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			TaskID: task.ID,
			UserID: userID,
		},
	}
	return task
}

// FactorySet provides access to all factories
type FactorySet struct {
	User       *UserFactory
	Project    *ProjectFactory
	Membership *MembershipFactory
	Task       *TaskFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:       NewUserFactory(),
		Project:    NewProjectFactory(),
		Membership: NewMembershipFactory(),
		Task:       NewTaskFactory(),
	}
}

// CreateProjectWithTeam creates a manager, a team leader, a member, a project
// led by the leader and an active membership for the member.
func (fs *FactorySet) CreateProjectWithTeam() (*models.User, *models.User, *models.User, *models.Project, *models.ProjectMembership) {
	manager := fs.User.Manager()
	leader := fs.User.WithRole(models.UserRoleTeamLeader)
	member := fs.User.Create()

	project := fs.Project.WithCreator(manager.ID)
	project.TeamLeaderID = leader.ID

	membership := fs.Membership.Create(project.ID, member.ID)

	return manager, leader, member, project, membership
}
