package usecase

import (
	"testing"

	"movie-reviews/internal/data/entity"

	"github.com/google/uuid"
)

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		userID  uuid.UUID
		role    entity.UserRole
		ownerID uuid.UUID
		want    bool
	}{
		{"owner can modify", owner, entity.RoleUser, owner, true},
		{"other user cannot modify", other, entity.RoleUser, owner, false},
		{"admin can modify anything", other, entity.RoleAdmin, owner, true},
		{"admin owner can modify", owner, entity.RoleAdmin, owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(tt.userID, tt.role, tt.ownerID); got != tt.want {
				t.Errorf("CanModify() = %v, want %v", got, tt.want)
			}
		})
	}
}
