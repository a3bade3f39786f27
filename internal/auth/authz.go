package auth

import (
	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/model"
)

// CanMutate reports whether the caller may mutate a resource: they
// must own it or be an admin. The caller of this check has already
// confirmed the resource exists, so a false result surfaces as
// Forbidden rather than NotFound.
func CanMutate(resourceOwnerID, callerID uuid.UUID, callerRole string) bool {
	return resourceOwnerID == callerID || callerRole == model.RoleAdmin
}
