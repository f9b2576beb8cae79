package errors

import (
	"fmt"
	"strings"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for AuthorizationError
func (e *AuthorizationError) Is(target error) bool {
	t, ok := target.(*AuthorizationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// AssigneesNotMembersError is returned when a task mutation references
// assignees who hold no active membership on the task's project. The emails
// let the client surface a confirmation listing who would be newly added.
type AssigneesNotMembersError struct {
	Emails []string
}

func (e *AssigneesNotMembersError) Error() string {
	return fmt.Sprintf("assignees are not project members: %s", strings.Join(e.Emails, ", "))
}

// Entity Not Found Errors
var (
	ErrUserNotFound       = &NotFoundError{Entity: "user"}
	ErrProjectNotFound    = &NotFoundError{Entity: "project"}
	ErrTaskNotFound       = &NotFoundError{Entity: "task"}
	ErrMembershipNotFound = &NotFoundError{Entity: "project membership"}
	ErrAssignmentNotFound = &NotFoundError{Entity: "task assignment"}
)

// Already Exists Errors
var (
	ErrUserExists       = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrMembershipExists = &AlreadyExistsError{Entity: "project membership", Context: "for this user"}
	ErrAssignmentExists = &AlreadyExistsError{Entity: "task assignment", Context: "for this user"}
)

// Authorization Errors
var (
	ErrProjectAccessDenied = &AuthorizationError{Message: "you are not a member of this project"}
	ErrManageRightsNeeded  = &AuthorizationError{Message: "only managers or the project's team leader may perform this action"}
	ErrCloseRightsNeeded   = &AuthorizationError{Message: "only managers may close a project"}
	ErrSelfCompleteDenied  = &AuthorizationError{Message: "assignees may only move their own to-do or in-progress tasks to review"}
)

// Authentication Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid email or password"}
)
