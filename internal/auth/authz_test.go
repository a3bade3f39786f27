package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/model"
)

func TestCanMutate(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		caller   uuid.UUID
		role     string
		expected bool
	}{
		{"owner may mutate", owner, model.RoleUser, true},
		{"admin may mutate anything", other, model.RoleAdmin, true},
		{"other user may not", other, model.RoleUser, false},
		{"unknown role is not admin", other, "MODERATOR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutate(owner, tt.caller, tt.role); got != tt.expected {
				t.Errorf("CanMutate = %v, expected %v", got, tt.expected)
			}
		})
	}
}
