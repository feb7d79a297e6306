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

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

// participationCounts holds the membership tallies a hackathon needs to go
// active, counted by current_hackathon attachment.
type participationCounts struct {
	Teams        int64
	Coordinators int64
	Evaluators   int64
}

func (p participationCounts) viable() bool {
	return p.Teams >= models.MinTeams &&
		p.Coordinators >= models.MinCoordinators &&
		p.Evaluators >= models.MinEvaluators
}

type statusDecision struct {
	Status  string
	Reason  string
	Changed bool
}

// nextStatus encodes the lifecycle state machine. End time always wins over
// the activation rule; completed is terminal. The winners check is a backstop
// for the announcement protocol, which normally completes the hackathon itself.
func nextStatus(h *models.Hackathon, counts participationCounts, now time.Time) statusDecision {
	if h.Status == models.HackathonCompleted {
		return statusDecision{Status: h.Status}
	}
	if h.HasWinners() {
		return statusDecision{Status: models.HackathonCompleted, Reason: models.ReasonWinnersAnnounced, Changed: true}
	}
	if !now.Before(h.EndDate) {
		return statusDecision{Status: models.HackathonCompleted, Reason: models.ReasonTimeEnded, Changed: true}
	}
	if h.Status == models.HackathonUpcoming && !now.Before(h.StartDate) {
		if !counts.viable() {
			return statusDecision{Status: models.HackathonCompleted, Reason: models.ReasonInsufficientParticipants, Changed: true}
		}
		return statusDecision{Status: models.HackathonActive, Changed: true}
	}
	return statusDecision{Status: h.Status}
}

func countParticipation(ctx context.Context, hackathonID primitive.ObjectID) (participationCounts, error) {
	var counts participationCounts
	var err error

	counts.Teams, err = TeamCollection.CountDocuments(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		return counts, err
	}
	counts.Coordinators, err = UserCollection.CountDocuments(ctx, bson.M{
		"current_hackathon": hackathonID,
		"role":              models.RoleCoordinator,
	})
	if err != nil {
		return counts, err
	}
	counts.Evaluators, err = UserCollection.CountDocuments(ctx, bson.M{
		"current_hackathon": hackathonID,
		"role":              models.RoleEvaluator,
	})
	return counts, err
}

// UpdateHackathonStatuses sweeps every non-completed hackathon and brings its
// status in line with the clock and participation counts. Per-hackathon
// failures are logged and the sweep moves on.
func UpdateHackathonStatuses(ctx context.Context, hub *models.Hub) {
	now := time.Now()

	cursor, err := HackathonCollection.Find(ctx, bson.M{"status": bson.M{"$ne": models.HackathonCompleted}})
	if err != nil {
		log.Printf("status sweep: failed to list hackathons: %v", err)
		return
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var hackathon models.Hackathon
		if err := cursor.Decode(&hackathon); err != nil {
			log.Printf("status sweep: failed to decode hackathon: %v", err)
			continue
		}
		if err := updateOneHackathon(ctx, &hackathon, now, hub); err != nil {
			log.Printf("status sweep: hackathon %s: %v", hackathon.ID.Hex(), err)
		}
	}
	if err := cursor.Err(); err != nil {
		log.Printf("status sweep: cursor error: %v", err)
	}
}

func updateOneHackathon(ctx context.Context, hackathon *models.Hackathon, now time.Time, hub *models.Hub) error {
	var counts participationCounts
	// Counts only matter at the activation decision point.
	if hackathon.Status == models.HackathonUpcoming && !now.Before(hackathon.StartDate) && now.Before(hackathon.EndDate) && !hackathon.HasWinners() {
		var err error
		counts, err = countParticipation(ctx, hackathon.ID)
		if err != nil {
			return err
		}
	}

	decision := nextStatus(hackathon, counts, now)
	if decision.Changed {
		update := bson.M{"status": decision.Status}
		if decision.Reason != "" {
			update["completed_reason"] = decision.Reason
		}
		_, err := HackathonCollection.UpdateOne(ctx, bson.M{"_id": hackathon.ID}, bson.M{"$set": update})
		if err != nil {
			return err
		}
		log.Printf("hackathon %s: %s -> %s (%s)", hackathon.ID.Hex(), hackathon.Status, decision.Status, decision.Reason)
		if hub != nil {
			hub.Notify(models.EventStatusChanged, gin.H{
				"hackathon_id": hackathon.ID.Hex(),
				"status":       decision.Status,
				"reason":       decision.Reason,
			})
		}
	}

	// Registration closing makes rosters final, independent of the transition above.
	if hackathon.RegistrationDeadline.Before(now) {
		if err := markTeamsEvaluationReady(ctx, hackathon.ID, now, hub); err != nil {
			return err
		}
	}
	return nil
}

// markTeamsEvaluationReady promotes every not-yet-ready team of the hackathon.
// Readiness is monotonic; teams already ready are left untouched.
func markTeamsEvaluationReady(ctx context.Context, hackathonID primitive.ObjectID, now time.Time, hub *models.Hub) error {
	result, err := TeamCollection.UpdateMany(ctx,
		bson.M{"hackathon_id": hackathonID, "ready_for_evaluation": false},
		bson.M{"$set": bson.M{"ready_for_evaluation": true, "evaluation_ready_at": now}},
	)
	if err != nil {
		return err
	}
	if result.ModifiedCount > 0 && hub != nil {
		hub.Notify(models.EventTeamsReady, gin.H{
			"hackathon_id": hackathonID.Hex(),
			"count":        result.ModifiedCount,
		})
	}
	return nil
}

// GetHackathonHandler returns one hackathon with its current status and winners.
func GetHackathonHandler(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hackathon id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var hackathon models.Hackathon
	if err := HackathonCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&hackathon); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "hackathon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hackathon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hackathon": hackathon})
}

// StatusSweepHandler lets an admin force a status sweep outside the timer.
func StatusSweepHandler(hub *models.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		UpdateHackathonStatuses(ctx, hub)
		c.JSON(http.StatusOK, gin.H{"message": "status sweep completed"})
	}
}
