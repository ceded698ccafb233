package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unlock_bot/internal/models"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name   string
		viewer models.Viewer
		cfg    models.UnlockConfig
		want   bool
	}{
		{"unrestricted member", member, models.UnlockConfig{}, true},
		{"unrestricted bare user", bareUser, models.UnlockConfig{}, true},
		{"member with role", member, allowedR9, true},
		{"member without role", noRole, allowedR9, false},
		{"bare user is never a member", models.Viewer{UserID: "1", RoleIDs: []models.RoleID{9}}, allowedR9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.viewer, tt.cfg))
		})
	}
}
