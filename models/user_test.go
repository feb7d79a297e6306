package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "coordinator", "evaluator", "participant"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Role(valid), role)
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestRoleIsStaff(t *testing.T) {
	assert.True(t, RoleCoordinator.IsStaff())
	assert.True(t, RoleEvaluator.IsStaff())
	assert.False(t, RoleAdmin.IsStaff())
	assert.False(t, RoleParticipant.IsStaff())
}
