package controllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/apperr"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

func TestSelectTeamLockExclusivity(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second select by a different evaluator conflicts", func(mt *mtest.T) {
		TeamCollection = mt.Coll
		UserCollection = mt.Coll

		hackathonID := primitive.NewObjectID()
		teamID := primitive.NewObjectID()
		holderID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "hackathon_portal.teams", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: teamID},
				{Key: "hackathon_id", Value: hackathonID},
				{Key: "evaluation_status", Value: models.EvaluationBeingEvaluated},
				{Key: "assigned_evaluator", Value: holderID},
			}),
			mtest.CreateCursorResponse(0, "hackathon_portal.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: holderID},
				{Key: "name", Value: "Jordan"},
				{Key: "role", Value: "evaluator"},
			}),
		)

		evaluator := &models.User{
			ID:               primitive.NewObjectID(),
			Role:             models.RoleEvaluator,
			CurrentHackathon: &hackathonID,
		}
		team, appErr := SelectTeam(context.Background(), evaluator, teamID)

		require.NotNil(mt, appErr)
		assert.Nil(mt, team)
		assert.Equal(mt, apperr.KindConflict, appErr.Kind)
		assert.Contains(mt, appErr.Message, "Jordan")
	})
}

func TestAnnounceWinnersOneShot(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second announce conflicts before any write", func(mt *mtest.T) {
		HackathonCollection = mt.Coll

		hackathonID := primitive.NewObjectID()
		firstID := primitive.NewObjectID()
		secondID := primitive.NewObjectID()
		thirdID := primitive.NewObjectID()

		// Only the hackathon read is queued; a write attempt would fail the
		// test by exhausting the mock responses.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "hackathon_portal.hackathons", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: hackathonID},
				{Key: "status", Value: models.HackathonCompleted},
				{Key: "completed_reason", Value: models.ReasonWinnersAnnounced},
				{Key: "winners", Value: bson.D{
					{Key: "first_place", Value: firstID},
					{Key: "second_place", Value: secondID},
					{Key: "third_place", Value: thirdID},
				}},
			}),
		)

		hackathon, reverted, appErr := AnnounceWinners(context.Background(),
			hackathonID, primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID())

		require.NotNil(mt, appErr)
		assert.Equal(mt, apperr.KindConflict, appErr.Kind)
		assert.Nil(mt, hackathon)
		assert.Zero(mt, reverted)
	})
}

func TestGetQuestionNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing question maps to not-found", func(mt *mtest.T) {
		QuestionCollection = mt.Coll

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "hackathon_portal.questions", mtest.FirstBatch),
		)

		question, appErr := GetQuestion(context.Background(), primitive.NewObjectID())

		require.NotNil(mt, appErr)
		assert.Nil(mt, question)
		assert.Equal(mt, apperr.KindNotFound, appErr.Kind)
	})
}
