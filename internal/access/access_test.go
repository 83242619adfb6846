package access

import (
	"testing"

	"anoa.com/edusphere/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestCapabilityAllows(t *testing.T) {
	roles := []string{entity.RoleNone, entity.RolePending, entity.RoleRejected, entity.RoleTeacher, entity.RoleAdmin}

	tests := []struct {
		cap  Capability
		want map[string]bool
	}{
		{Public, map[string]bool{"": true, "pending": true, "rejected": true, "teacher": true, "admin": true}},
		{Authenticated, map[string]bool{"": true, "pending": true, "rejected": true, "teacher": true, "admin": true}},
		{Teacher, map[string]bool{"teacher": true, "admin": true}},
		{Admin, map[string]bool{"admin": true}},
	}

	for _, tt := range tests {
		t.Run(tt.cap.String(), func(t *testing.T) {
			for _, role := range roles {
				assert.Equal(t, tt.want[role], tt.cap.Allows(role), "role %q", role)
			}
		})
	}
}

func TestCapabilityNeeds(t *testing.T) {
	assert.False(t, Public.NeedsToken())
	assert.True(t, Authenticated.NeedsToken())
	assert.False(t, Authenticated.NeedsRole())
	assert.True(t, Teacher.NeedsRole())
	assert.True(t, Admin.NeedsRole())
}
