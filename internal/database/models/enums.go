package models

// UserRole represents the global role of a portal user
type UserRole string

const (
	UserRoleTeamMember          UserRole = "team_member"
	UserRoleTechnicalSpecialist UserRole = "technical_specialist"
	UserRoleTeamLeader          UserRole = "team_leader"
	UserRoleManager             UserRole = "manager"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleTeamMember, UserRoleTechnicalSpecialist, UserRoleTeamLeader, UserRoleManager:
		return true
	}
	return false
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// IsValid checks if the ProjectStatus is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusArchived:
		return true
	}
	return false
}

// ProjectRole represents the role within a project context
type ProjectRole string

const (
	ProjectRoleTeamLeader ProjectRole = "team_leader"
	ProjectRoleMember     ProjectRole = "member"
)

// TaskStatus represents the board column a task lives in
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "to_do"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the TaskStatus is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	}
	return false
}

// AllTaskStatuses lists the four board columns in display order
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusToDo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted}
}

// NormalizeTaskStatus maps UI-facing status tokens to canonical values.
// Unrecognized tokens fall back to to_do.
func NormalizeTaskStatus(raw string) TaskStatus {
	switch raw {
	case "todo", "to_do", "to-do":
		return TaskStatusToDo
	case "inprogress", "in_progress", "in-progress":
		return TaskStatusInProgress
	case "review", "in_review":
		return TaskStatusReview
	case "completed", "done", "complete":
		return TaskStatusCompleted
	default:
		return TaskStatusToDo
	}
}

// ParseTaskStatus maps a UI-facing status token to its canonical value,
// reporting false for unrecognized tokens instead of falling back.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	switch raw {
	case "todo", "to_do", "to-do":
		return TaskStatusToDo, true
	case "inprogress", "in_progress", "in-progress":
		return TaskStatusInProgress, true
	case "review", "in_review":
		return TaskStatusReview, true
	case "completed", "done", "complete":
		return TaskStatusCompleted, true
	default:
		return "", false
	}
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the TaskPriority is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// NormalizeTaskPriority maps UI-facing priority tokens to canonical values.
// Unrecognized tokens fall back to medium.
func NormalizeTaskPriority(raw string) TaskPriority {
	switch raw {
	case "low":
		return TaskPriorityLow
	case "medium", "normal", "":
		return TaskPriorityMedium
	case "high", "urgent":
		return TaskPriorityHigh
	default:
		return TaskPriorityMedium
	}
}
