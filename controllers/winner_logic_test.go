package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

func TestCleanupUserRevertsStaff(t *testing.T) {
	hackathonID := primitive.NewObjectID()

	for _, role := range []models.Role{models.RoleCoordinator, models.RoleEvaluator} {
		user := models.User{Role: role, CurrentHackathon: &hackathonID}

		assert.True(t, cleanupUser(&user), role)
		assert.Equal(t, models.RoleParticipant, user.Role)
		assert.Nil(t, user.CurrentHackathon)
	}
}

func TestCleanupUserDetachesNonStaff(t *testing.T) {
	hackathonID := primitive.NewObjectID()

	for _, role := range []models.Role{models.RoleParticipant, models.RoleAdmin} {
		user := models.User{Role: role, CurrentHackathon: &hackathonID}

		assert.False(t, cleanupUser(&user), role)
		assert.Equal(t, role, user.Role, "non-staff roles are preserved")
		assert.Nil(t, user.CurrentHackathon)
	}
}

func TestCleanupCompleteness(t *testing.T) {
	hackathonID := primitive.NewObjectID()
	users := []models.User{
		{Role: models.RoleCoordinator, CurrentHackathon: &hackathonID},
		{Role: models.RoleEvaluator, CurrentHackathon: &hackathonID},
		{Role: models.RoleEvaluator, CurrentHackathon: &hackathonID},
		{Role: models.RoleParticipant, CurrentHackathon: &hackathonID},
	}

	var reverted int
	for i := range users {
		if cleanupUser(&users[i]) {
			reverted++
		}
	}

	assert.Equal(t, 3, reverted)
	for _, u := range users {
		assert.False(t, u.Role.IsStaff(), "no staff role may survive cleanup")
		assert.Nil(t, u.CurrentHackathon, "no user may stay attached")
	}
}

func TestCleanupUserIdempotent(t *testing.T) {
	hackathonID := primitive.NewObjectID()
	user := models.User{Role: models.RoleEvaluator, CurrentHackathon: &hackathonID}

	assert.True(t, cleanupUser(&user))
	assert.False(t, cleanupUser(&user), "second pass changes nothing")
	assert.Equal(t, models.RoleParticipant, user.Role)
}
