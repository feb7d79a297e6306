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

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/apperr"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

// WinnersInput is the request body for a winner announcement.
type WinnersInput struct {
	FirstPlace  string `json:"firstPlace"`
	SecondPlace string `json:"secondPlace"`
	ThirdPlace  string `json:"thirdPlace"`
}

// AnnounceWinners freezes the podium, completes the hackathon, and detaches
// everyone from it. Announcement is one-shot; a second call conflicts.
func AnnounceWinners(ctx context.Context, hackathonID, first, second, third primitive.ObjectID) (*models.Hackathon, int64, *apperr.Error) {
	var hackathon models.Hackathon
	err := HackathonCollection.FindOne(ctx, bson.M{"_id": hackathonID}).Decode(&hackathon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, 0, apperr.NotFound("hackathon not found")
		}
		return nil, 0, apperr.Internal("failed to load hackathon", err)
	}

	if hackathon.Winners.AnySet() {
		return nil, 0, apperr.Conflict("winners have already been announced")
	}

	for _, teamID := range []primitive.ObjectID{first, second, third} {
		count, err := TeamCollection.CountDocuments(ctx, bson.M{"_id": teamID, "hackathon_id": hackathonID})
		if err != nil {
			return nil, 0, apperr.Internal("failed to verify winning team", err)
		}
		if count == 0 {
			return nil, 0, apperr.NotFound("winning team %s not found in hackathon", teamID.Hex())
		}
	}

	evaluated, err := EvaluationCollection.CountDocuments(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		return nil, 0, apperr.Internal("failed to count evaluations", err)
	}
	if evaluated == 0 {
		return nil, 0, apperr.InvalidInput("cannot announce winners before any team has been evaluated")
	}

	now := time.Now()
	err = HackathonCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": hackathonID},
		bson.M{"$set": bson.M{
			"winners.first_place":  first,
			"winners.second_place": second,
			"winners.third_place":  third,
			"status":               models.HackathonCompleted,
			"completed_reason":     models.ReasonWinnersAnnounced,
			"winners_announced_at": now,
		}},
	).Decode(&hackathon)
	if err != nil {
		return nil, 0, apperr.Internal("failed to record winners", err)
	}
	hackathon.Winners = models.Winners{FirstPlace: &first, SecondPlace: &second, ThirdPlace: &third}
	hackathon.Status = models.HackathonCompleted
	hackathon.CompletedReason = models.ReasonWinnersAnnounced
	hackathon.WinnersAnnouncedAt = &now

	reverted, err := CleanupHackathonUsers(ctx, hackathonID)
	if err != nil {
		return nil, 0, apperr.Internal("winners recorded but cleanup failed", err)
	}
	return &hackathon, reverted, nil
}

// cleanupUser applies the detach protocol to one user in memory: staff roles
// revert to participant, everyone loses their hackathon attachment. Reports
// whether the role was reverted.
func cleanupUser(user *models.User) bool {
	reverted := false
	if user.Role.IsStaff() {
		user.Role = models.RoleParticipant
		reverted = true
	}
	user.CurrentHackathon = nil
	return reverted
}

// CleanupHackathonUsers reverts coordinator and evaluator roles to participant
// and detaches every user from the hackathon. Idempotent; the completed sweep
// re-runs it to catch partial failures and post-announcement stragglers.
func CleanupHackathonUsers(ctx context.Context, hackathonID primitive.ObjectID) (int64, error) {
	cursor, err := UserCollection.Find(ctx, bson.M{"current_hackathon": hackathonID})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var reverted int64
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			log.Printf("cleanup: failed to decode user: %v", err)
			continue
		}

		changed := cleanupUser(&user)
		update := bson.M{"$unset": bson.M{"current_hackathon": ""}}
		if changed {
			update["$set"] = bson.M{"role": user.Role}
		}
		if _, err := UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
			log.Printf("cleanup: user %s: %v", user.ID.Hex(), err)
			continue
		}
		if changed {
			reverted++
		}
	}
	return reverted, cursor.Err()
}

// CleanupCompletedHackathons re-runs user cleanup for every completed
// hackathon whose winners were announced.
func CleanupCompletedHackathons(ctx context.Context) (int64, error) {
	cursor, err := HackathonCollection.Find(ctx, bson.M{
		"status":               models.HackathonCompleted,
		"winners_announced_at": bson.M{"$ne": nil},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var total int64
	for cursor.Next(ctx) {
		var hackathon models.Hackathon
		if err := cursor.Decode(&hackathon); err != nil {
			log.Printf("cleanup sweep: failed to decode hackathon: %v", err)
			continue
		}
		reverted, err := CleanupHackathonUsers(ctx, hackathon.ID)
		if err != nil {
			log.Printf("cleanup sweep: hackathon %s: %v", hackathon.ID.Hex(), err)
			continue
		}
		total += reverted
	}
	return total, cursor.Err()
}

// AnnounceWinnersHandler handles POST /api/hackathons/:id/winners.
func AnnounceWinnersHandler(hub *models.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hackathonID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hackathon id"})
			return
		}

		var input WinnersInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid winners payload: " + err.Error()})
			return
		}
		if input.FirstPlace == "" || input.SecondPlace == "" || input.ThirdPlace == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "all three winning teams are required"})
			return
		}
		first, err1 := primitive.ObjectIDFromHex(input.FirstPlace)
		second, err2 := primitive.ObjectIDFromHex(input.SecondPlace)
		third, err3 := primitive.ObjectIDFromHex(input.ThirdPlace)
		if err1 != nil || err2 != nil || err3 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id in winners payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		hackathon, reverted, appErr := AnnounceWinners(ctx, hackathonID, first, second, third)
		if appErr != nil {
			respondErr(c, appErr)
			return
		}

		hub.Notify(models.EventWinnersAnnounced, gin.H{
			"hackathon_id": hackathonID.Hex(),
			"winners":      hackathon.Winners,
		})
		c.JSON(http.StatusOK, gin.H{
			"message":       "winners announced",
			"hackathon":     hackathon,
			"rolesReverted": reverted,
		})
	}
}

// CleanupCompletedHandler lets an admin force the completed-hackathon cleanup sweep.
func CleanupCompletedHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	reverted, err := CleanupCompletedHackathons(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleanup sweep completed", "rolesReverted": reverted})
}
