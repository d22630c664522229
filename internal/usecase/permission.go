package usecase

import (
	"github.com/google/uuid"

	"movie-reviews/internal/data/entity"
)

// CanModify reports whether a user may mutate a resource owned by
// ownerID. Owners and admins may; everyone else gets read-only access.
func CanModify(userID uuid.UUID, role entity.UserRole, ownerID uuid.UUID) bool {
	if role == entity.RoleAdmin {
		return true
	}
	return userID == ownerID
}
