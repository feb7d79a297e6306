package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/apperr"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/middleware"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

// ScoreInput is the request body for a score submission.
type ScoreInput struct {
	CriterionScores []models.CriterionScore `json:"criterionScores"`
	Feedback        string                  `json:"feedback"`
}

// scoreTotal is the arithmetic mean of the criterion values.
func scoreTotal(criteria []models.CriterionScore) float64 {
	if len(criteria) == 0 {
		return 0
	}
	var sum float64
	for _, cs := range criteria {
		sum += cs.Value
	}
	return sum / float64(len(criteria))
}

// mergeScore upserts one evaluator's score into the list: an existing score
// by the same evaluator is overwritten in place, anyone else's appends.
func mergeScore(scores []models.Score, incoming models.Score) []models.Score {
	for i, s := range scores {
		if s.EvaluatorID == incoming.EvaluatorID {
			scores[i] = incoming
			return scores
		}
	}
	return append(scores, incoming)
}

// evaluationAverage is the mean of score totals, unweighted by evaluator.
func evaluationAverage(scores []models.Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Total
	}
	return sum / float64(len(scores))
}

// SubmitScore records one evaluator's judgment of one team. Resubmission by
// the same evaluator overwrites the existing score, never duplicates it.
// Submitting also finalizes the team's evaluation lock in the submitter's
// favor, closing the loop begun by select.
func SubmitScore(ctx context.Context, evaluator *models.User, teamID primitive.ObjectID, input ScoreInput) (*models.Evaluation, *apperr.Error) {
	if len(input.CriterionScores) == 0 {
		return nil, apperr.InvalidInput("at least one criterion score is required")
	}
	for _, cs := range input.CriterionScores {
		if cs.Criterion == "" {
			return nil, apperr.InvalidInput("criterion name must not be empty")
		}
	}
	if evaluator.CurrentHackathon == nil {
		return nil, apperr.NotFound("no hackathon assigned to evaluator")
	}
	hackathonID := *evaluator.CurrentHackathon

	team, appErr := findTeamInHackathon(ctx, teamID, hackathonID)
	if appErr != nil {
		return nil, appErr
	}

	now := time.Now()
	score := models.Score{
		EvaluatorID: evaluator.ID,
		HackathonID: hackathonID,
		Criteria:    input.CriterionScores,
		Total:       scoreTotal(input.CriterionScores),
		Feedback:    input.Feedback,
		SubmittedAt: now,
	}

	// Find-or-create the team's Evaluation, then upsert by evaluator.
	var evaluation models.Evaluation
	err := EvaluationCollection.FindOne(ctx, bson.M{"hackathon_id": hackathonID, "team_id": teamID}).Decode(&evaluation)
	switch {
	case err == mongo.ErrNoDocuments:
		evaluation = models.Evaluation{
			HackathonID: hackathonID,
			QuestionID:  team.QuestionID,
			TeamID:      teamID,
			Scores:      []models.Score{score},
			CreatedAt:   now,
		}
		result, err := EvaluationCollection.InsertOne(ctx, &evaluation)
		if err != nil {
			return nil, apperr.Internal("failed to record score", err)
		}
		if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
			evaluation.ID = oid
		}
	case err != nil:
		return nil, apperr.Internal("failed to load evaluation", err)
	default:
		evaluation.Scores = mergeScore(evaluation.Scores, score)
		_, err = EvaluationCollection.UpdateOne(ctx,
			bson.M{"_id": evaluation.ID},
			bson.M{"$set": bson.M{"scores": evaluation.Scores}},
		)
		if err != nil {
			return nil, apperr.Internal("failed to update score", err)
		}
	}

	// Scoring completes the team's evaluation and, like select, is sufficient
	// cause for readiness.
	teamSet := bson.M{
		"evaluation_status":    models.EvaluationCompleted,
		"assigned_evaluator":   evaluator.ID,
		"ready_for_evaluation": true,
	}
	if !team.ReadyForEvaluation {
		teamSet["evaluation_ready_at"] = now
	}
	_, err = TeamCollection.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{"$set": teamSet, "$unset": bson.M{"evaluation_started_at": ""}},
	)
	if err != nil {
		return nil, apperr.Internal("failed to finalize team evaluation", err)
	}

	return &evaluation, nil
}

// TeamAggregate is the derived overall standing of one team. It is recomputed
// on every read; scores are mutable, so caching it durably would go stale.
type TeamAggregate struct {
	TeamID          primitive.ObjectID `json:"teamId"`
	AverageScore    float64            `json:"averageScore"`
	EvaluationCount int                `json:"evaluationCount"`
	Evaluators      []string           `json:"evaluators"`
}

// AggregateScores averages each team's score totals across all evaluators.
func AggregateScores(ctx context.Context, hackathonID primitive.ObjectID) ([]TeamAggregate, error) {
	cursor, err := EvaluationCollection.Find(ctx, bson.M{"hackathon_id": hackathonID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var evaluations []models.Evaluation
	if err := cursor.All(ctx, &evaluations); err != nil {
		return nil, err
	}

	evaluatorIDs := make([]primitive.ObjectID, 0)
	seen := make(map[primitive.ObjectID]bool)
	for _, ev := range evaluations {
		for _, s := range ev.Scores {
			if !seen[s.EvaluatorID] {
				seen[s.EvaluatorID] = true
				evaluatorIDs = append(evaluatorIDs, s.EvaluatorID)
			}
		}
	}

	names := make(map[primitive.ObjectID]string, len(evaluatorIDs))
	if len(evaluatorIDs) > 0 {
		userCursor, err := UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": evaluatorIDs}})
		if err != nil {
			return nil, err
		}
		defer userCursor.Close(ctx)
		var users []models.User
		if err := userCursor.All(ctx, &users); err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	aggregates := make([]TeamAggregate, 0, len(evaluations))
	for _, ev := range evaluations {
		agg := TeamAggregate{
			TeamID:          ev.TeamID,
			AverageScore:    evaluationAverage(ev.Scores),
			EvaluationCount: len(ev.Scores),
			Evaluators:      make([]string, 0, len(ev.Scores)),
		}
		for _, s := range ev.Scores {
			if name, ok := names[s.EvaluatorID]; ok {
				agg.Evaluators = append(agg.Evaluators, name)
			}
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

// EvaluatorScore pairs a team with the score the evaluator gave it.
type EvaluatorScore struct {
	TeamID primitive.ObjectID `json:"teamId"`
	Score  models.Score       `json:"score"`
}

// ScoresByEvaluator returns every score the evaluator has submitted in the hackathon.
func ScoresByEvaluator(ctx context.Context, hackathonID, evaluatorID primitive.ObjectID) ([]EvaluatorScore, error) {
	cursor, err := EvaluationCollection.Find(ctx, bson.M{
		"hackathon_id":        hackathonID,
		"scores.evaluator_id": evaluatorID,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	scores := make([]EvaluatorScore, 0)
	for cursor.Next(ctx) {
		var ev models.Evaluation
		if err := cursor.Decode(&ev); err != nil {
			return nil, err
		}
		for _, s := range ev.Scores {
			if s.EvaluatorID == evaluatorID {
				scores = append(scores, EvaluatorScore{TeamID: ev.TeamID, Score: s})
			}
		}
	}
	return scores, cursor.Err()
}

// SubmitScoreHandler handles POST /api/evaluator/teams/:id/score.
func SubmitScoreHandler(hub *models.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
			return
		}
		var input ScoreInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score payload: " + err.Error()})
			return
		}
		evaluator := middleware.CurrentUser(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		evaluation, appErr := SubmitScore(ctx, evaluator, teamID, input)
		if appErr != nil {
			respondErr(c, appErr)
			return
		}

		hub.Notify(models.EventScoreSubmitted, gin.H{
			"team_id":      teamID.Hex(),
			"evaluator_id": evaluator.ID.Hex(),
		})
		c.JSON(http.StatusOK, gin.H{"message": "score recorded", "evaluation": evaluation})
	}
}
