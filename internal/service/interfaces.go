package service

import (
	"makeitall-backend/internal/auth"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// TaskServiceInterface defines the interface for task service operations
type TaskServiceInterface interface {
	ListProjectTasks(projectID uuid.UUID, caller auth.Identity) (*TaskListResponse, error)
	ListAssignedTasks(caller auth.Identity) (*TaskListResponse, error)
	Create(req *CreateTaskRequest, caller auth.Identity) (*TaskResponse, error)
	Update(taskID uuid.UUID, req *UpdateTaskRequest, caller auth.Identity) (*TaskResponse, error)
	UpdateStatus(taskID uuid.UUID, rawStatus string, caller auth.Identity) (*TaskResponse, error)
	MarkComplete(taskID uuid.UUID, caller auth.Identity) (*TaskResponse, error)
	UpdatePriority(taskID uuid.UUID, rawPriority string, caller auth.Identity) (*TaskResponse, error)
	Delete(taskID uuid.UUID, caller auth.Identity) error
}

// ProjectServiceInterface defines the interface for project service operations
type ProjectServiceInterface interface {
	Create(req *CreateProjectRequest, caller auth.Identity) (*ProjectResponse, error)
	Get(projectID uuid.UUID, caller auth.Identity) (*ProjectResponse, error)
	List(caller auth.Identity, page, pageSize int) (*ProjectListResponse, error)
	Close(projectID uuid.UUID, caller auth.Identity) (*ProjectResponse, error)
	AddMember(projectID uuid.UUID, email string, caller auth.Identity) (*MemberResponse, error)
	RemoveMember(projectID uuid.UUID, email string, caller auth.Identity) error
	ListMembers(projectID uuid.UUID, caller auth.Identity) ([]MemberResponse, error)
}
