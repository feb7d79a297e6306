package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/apperr"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/middleware"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

// respondErr translates an apperr into the HTTP response. Internal detail is
// logged, never returned.
func respondErr(c *gin.Context, err *apperr.Error) {
	if err.Kind == apperr.KindInternal {
		log.Printf("internal error: %v", err)
	}
	c.JSON(err.HTTPStatus(), gin.H{"error": err.UserMessage()})
}

func findTeamInHackathon(ctx context.Context, teamID, hackathonID primitive.ObjectID) (*models.Team, *apperr.Error) {
	var team models.Team
	err := TeamCollection.FindOne(ctx, bson.M{"_id": teamID, "hackathon_id": hackathonID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("team not found in your hackathon")
		}
		return nil, apperr.Internal("failed to load team", err)
	}
	return &team, nil
}

// selectOutcome is the verdict on one select attempt against the team's
// current lock state.
type selectOutcome int

const (
	selectGrant selectOutcome = iota
	selectAlreadyHeld
	selectHeldByOther
	selectCompleted
)

// selectDecision arbitrates a select attempt. It never mutates the team; the
// grant itself happens in a conditional update keyed on the same state.
func selectDecision(team *models.Team, evaluatorID primitive.ObjectID) selectOutcome {
	if team.LockedBy(evaluatorID) {
		return selectAlreadyHeld
	}
	switch team.EvaluationStatus {
	case models.EvaluationCompleted:
		return selectCompleted
	case models.EvaluationBeingEvaluated:
		return selectHeldByOther
	}
	return selectGrant
}

// SelectTeam grants the evaluator an exclusive lock on the team. Selection
// also promotes the team to evaluation-ready so an evaluator can start the
// moment a team exists. The mutation is a single conditional update; two
// concurrent selects cannot both win.
func SelectTeam(ctx context.Context, evaluator *models.User, teamID primitive.ObjectID) (*models.Team, *apperr.Error) {
	if evaluator.CurrentHackathon == nil {
		return nil, apperr.NotFound("no hackathon assigned to evaluator")
	}
	hackathonID := *evaluator.CurrentHackathon

	team, appErr := findTeamInHackathon(ctx, teamID, hackathonID)
	if appErr != nil {
		return nil, appErr
	}

	switch selectDecision(team, evaluator.ID) {
	case selectAlreadyHeld:
		return team, nil
	case selectCompleted:
		return nil, apperr.Conflict("team has already been evaluated")
	case selectHeldByOther:
		return nil, apperr.Conflict("team is being evaluated by %s", holderName(ctx, team.AssignedEvaluator))
	}

	now := time.Now()
	set := bson.M{
		"assigned_evaluator":    evaluator.ID,
		"evaluation_status":     models.EvaluationBeingEvaluated,
		"evaluation_started_at": now,
		"ready_for_evaluation":  true,
	}
	if !team.ReadyForEvaluation {
		set["evaluation_ready_at"] = now
	}

	filter := bson.M{
		"_id":          teamID,
		"hackathon_id": hackathonID,
		"$or": []bson.M{
			{"evaluation_status": models.EvaluationAvailable},
			{"evaluation_status": bson.M{"$in": bson.A{nil, ""}}},
		},
	}

	var updated models.Team
	err := TeamCollection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost the race; report whoever holds the lock now.
			current, loadErr := findTeamInHackathon(ctx, teamID, hackathonID)
			if loadErr != nil {
				return nil, loadErr
			}
			if current.EvaluationStatus == models.EvaluationCompleted {
				return nil, apperr.Conflict("team has already been evaluated")
			}
			return nil, apperr.Conflict("team is being evaluated by %s", holderName(ctx, current.AssignedEvaluator))
		}
		return nil, apperr.Internal("failed to lock team", err)
	}
	return &updated, nil
}

func holderName(ctx context.Context, evaluatorID *primitive.ObjectID) string {
	if evaluatorID == nil {
		return "another evaluator"
	}
	var holder models.User
	if err := UserCollection.FindOne(ctx, bson.M{"_id": evaluatorID}).Decode(&holder); err != nil {
		return "another evaluator"
	}
	return holder.Name
}

// ReleaseTeam resets the team's evaluation lock. Only the holder may release;
// the stale-lock reclaimer is the one actor allowed to break that rule.
func ReleaseTeam(ctx context.Context, evaluator *models.User, teamID primitive.ObjectID) (*models.Team, *apperr.Error) {
	var team models.Team
	err := TeamCollection.FindOne(ctx, bson.M{"_id": teamID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("team not found")
		}
		return nil, apperr.Internal("failed to load team", err)
	}

	if team.AssignedEvaluator != nil && *team.AssignedEvaluator != evaluator.ID {
		return nil, apperr.Forbidden("team is locked by a different evaluator")
	}

	var updated models.Team
	err = TeamCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": teamID},
		bson.M{
			"$set":   bson.M{"evaluation_status": models.EvaluationAvailable},
			"$unset": bson.M{"assigned_evaluator": "", "evaluation_started_at": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, apperr.Internal("failed to release team", err)
	}
	return &updated, nil
}

// ReclaimStaleLocks force-releases every lock older than the staleness
// threshold. Evaluators who drop offline never call release; without this a
// team would stay locked forever.
func ReclaimStaleLocks(ctx context.Context, hub *models.Hub) (int64, error) {
	cutoff := time.Now().Add(-models.StaleLockThreshold)

	result, err := TeamCollection.UpdateMany(ctx,
		bson.M{
			"evaluation_status":     models.EvaluationBeingEvaluated,
			"evaluation_started_at": bson.M{"$lte": cutoff},
		},
		bson.M{
			"$set":   bson.M{"evaluation_status": models.EvaluationAvailable},
			"$unset": bson.M{"assigned_evaluator": "", "evaluation_started_at": ""},
		},
	)
	if err != nil {
		return 0, err
	}
	if result.ModifiedCount > 0 {
		log.Printf("reclaimed %d stale evaluation locks", result.ModifiedCount)
		if hub != nil {
			hub.Notify(models.EventLocksReclaimed, gin.H{"count": result.ModifiedCount})
		}
	}
	return result.ModifiedCount, nil
}

// ReconnectEvaluator re-attaches the evaluator to an eligible hackathon: their
// current one if it is still open, otherwise the earliest-starting open
// hackathon with evaluator capacity left.
func ReconnectEvaluator(ctx context.Context, evaluator *models.User) (*models.Hackathon, *apperr.Error) {
	if evaluator.CurrentHackathon != nil {
		var hackathon models.Hackathon
		err := HackathonCollection.FindOne(ctx, bson.M{"_id": evaluator.CurrentHackathon}).Decode(&hackathon)
		if err == nil && hackathon.Status != models.HackathonCompleted {
			return &hackathon, nil
		}
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, apperr.Internal("failed to load hackathon", err)
		}
	}

	cursor, err := HackathonCollection.Find(ctx,
		bson.M{"status": bson.M{"$in": bson.A{models.HackathonUpcoming, models.HackathonActive}}},
		options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}),
	)
	if err != nil {
		return nil, apperr.Internal("failed to list hackathons", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var hackathon models.Hackathon
		if err := cursor.Decode(&hackathon); err != nil {
			continue
		}
		if hackathon.Limits.MaxEvaluators > 0 {
			attached, err := UserCollection.CountDocuments(ctx, bson.M{
				"current_hackathon": hackathon.ID,
				"role":              models.RoleEvaluator,
			})
			if err != nil {
				return nil, apperr.Internal("failed to count evaluators", err)
			}
			if attached >= int64(hackathon.Limits.MaxEvaluators) {
				continue
			}
		}
		_, err := UserCollection.UpdateOne(ctx,
			bson.M{"_id": evaluator.ID},
			bson.M{"$set": bson.M{"current_hackathon": hackathon.ID}},
		)
		if err != nil {
			return nil, apperr.Internal("failed to attach evaluator", err)
		}
		return &hackathon, nil
	}
	return nil, apperr.NotFound("no eligible hackathon to reconnect to")
}

// SelectTeamHandler handles POST /api/evaluator/teams/:id/select.
func SelectTeamHandler(hub *models.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
			return
		}
		evaluator := middleware.CurrentUser(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		team, appErr := SelectTeam(ctx, evaluator, teamID)
		if appErr != nil {
			respondErr(c, appErr)
			return
		}

		hub.Notify(models.EventTeamLocked, gin.H{
			"team_id":      team.ID.Hex(),
			"evaluator_id": evaluator.ID.Hex(),
		})
		c.JSON(http.StatusOK, gin.H{"message": "team selected for evaluation", "team": team})
	}
}

// ReleaseTeamHandler handles POST /api/evaluator/teams/:id/release.
func ReleaseTeamHandler(hub *models.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
			return
		}
		evaluator := middleware.CurrentUser(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		team, appErr := ReleaseTeam(ctx, evaluator, teamID)
		if appErr != nil {
			respondErr(c, appErr)
			return
		}

		hub.Notify(models.EventTeamReleased, gin.H{
			"team_id":      team.ID.Hex(),
			"evaluator_id": evaluator.ID.Hex(),
		})
		c.JSON(http.StatusOK, gin.H{"message": "team released", "team": team})
	}
}

// EvaluatorDashboardHandler returns the evaluator's hackathon, its teams with
// lock state, the caller's own scores, and per-team aggregates.
func EvaluatorDashboardHandler(c *gin.Context) {
	evaluator := middleware.CurrentUser(c)
	if evaluator.CurrentHackathon == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no hackathon assigned to evaluator"})
		return
	}
	hackathonID := *evaluator.CurrentHackathon

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var hackathon models.Hackathon
	if err := HackathonCollection.FindOne(ctx, bson.M{"_id": hackathonID}).Decode(&hackathon); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "hackathon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hackathon"})
		return
	}

	var teams []models.Team
	cursor, err := TeamCollection.Find(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load teams"})
		return
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &teams); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode teams"})
		return
	}

	aggregates, err := AggregateScores(ctx, hackathonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate scores"})
		return
	}

	ownScores, err := ScoresByEvaluator(ctx, hackathonID, evaluator.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load evaluator scores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hackathon":  hackathon,
		"teams":      teams,
		"ownScores":  ownScores,
		"aggregates": aggregates,
	})
}

// ReconnectEvaluatorHandler handles POST /api/evaluator/reconnect.
func ReconnectEvaluatorHandler(c *gin.Context) {
	evaluator := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	hackathon, appErr := ReconnectEvaluator(ctx, evaluator)
	if appErr != nil {
		respondErr(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "evaluator reconnected", "hackathon": hackathon})
}

// ReclaimLocksHandler lets an admin trigger stale-lock reclamation manually.
func ReclaimLocksHandler(hub *models.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		count, err := ReclaimStaleLocks(ctx, hub)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reclaim stale locks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "stale locks reclaimed", "count": count})
	}
}
