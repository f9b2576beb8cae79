package auth

import (
	"makeitall-backend/internal/database/models"

	"github.com/google/uuid"
)

// Identity is the authenticated user attached to every request. It carries
// the global session role; per-project capabilities are derived by the
// access guard, never stored here.
type Identity struct {
	ID    uuid.UUID       `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
}

// IsManager reports whether the identity holds the global manager role
func (i Identity) IsManager() bool {
	return i.Role == models.UserRoleManager
}
