package service

import "taskbox/internal/domain/entity"

// OwnershipGuard decides whether an authenticated identity may touch an
// owned resource. The policy is strict equality on the owner field, applied
// uniformly to read-one, update and delete. Callers must report a denial
// exactly like an absent resource so the two cannot be told apart.
type OwnershipGuard struct{}

// NewOwnershipGuard is the constructor for OwnershipGuard.
func NewOwnershipGuard() *OwnershipGuard {
	return &OwnershipGuard{}
}

// Authorize reports whether identity owns the todo.
func (g *OwnershipGuard) Authorize(identity *entity.Identity, todo *entity.Todo) bool {
	if identity == nil || todo == nil {
		return false
	}

	return todo.OwnerID == identity.ID
}
