package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

func lockedTeam(holder primitive.ObjectID, startedAt time.Time) *models.Team {
	return &models.Team{
		ID:                  primitive.NewObjectID(),
		EvaluationStatus:    models.EvaluationBeingEvaluated,
		AssignedEvaluator:   &holder,
		EvaluationStartedAt: &startedAt,
	}
}

func TestSelectDecisionGrantsAvailableTeam(t *testing.T) {
	team := &models.Team{ID: primitive.NewObjectID(), EvaluationStatus: models.EvaluationAvailable}
	assert.Equal(t, selectGrant, selectDecision(team, primitive.NewObjectID()))

	// Teams created before the lock fields existed have no status at all.
	blank := &models.Team{ID: primitive.NewObjectID()}
	assert.Equal(t, selectGrant, selectDecision(blank, primitive.NewObjectID()))
}

func TestSelectDecisionExclusivity(t *testing.T) {
	holder := primitive.NewObjectID()
	other := primitive.NewObjectID()
	team := lockedTeam(holder, time.Now())

	assert.Equal(t, selectHeldByOther, selectDecision(team, other))

	// A losing select must leave the team untouched.
	require.NotNil(t, team.AssignedEvaluator)
	assert.Equal(t, holder, *team.AssignedEvaluator)
	assert.Equal(t, models.EvaluationBeingEvaluated, team.EvaluationStatus)
}

func TestSelectDecisionIdempotentForHolder(t *testing.T) {
	holder := primitive.NewObjectID()
	team := lockedTeam(holder, time.Now())

	assert.Equal(t, selectAlreadyHeld, selectDecision(team, holder))
}

func TestSelectDecisionRejectsCompletedTeam(t *testing.T) {
	holder := primitive.NewObjectID()
	team := &models.Team{
		ID:                primitive.NewObjectID(),
		EvaluationStatus:  models.EvaluationCompleted,
		AssignedEvaluator: &holder,
	}

	// Even the evaluator who scored it cannot re-lock a completed team.
	assert.Equal(t, selectCompleted, selectDecision(team, holder))
	assert.Equal(t, selectCompleted, selectDecision(team, primitive.NewObjectID()))
}
