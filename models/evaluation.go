package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CriterionScore struct {
	Criterion string  `json:"criterion" bson:"criterion"`
	Value     float64 `json:"value" bson:"value"`
}

// Score is one evaluator's judgment of one team. Total is the arithmetic
// mean of the criterion values, not a weighted sum.
type Score struct {
	EvaluatorID primitive.ObjectID `json:"evaluatorId" bson:"evaluator_id"`
	HackathonID primitive.ObjectID `json:"hackathonId" bson:"hackathon_id"`
	Criteria    []CriterionScore   `json:"criteria" bson:"criteria"`
	Total       float64            `json:"total" bson:"total"`
	Feedback    string             `json:"feedback" bson:"feedback"`
	SubmittedAt time.Time          `json:"submittedAt" bson:"submitted_at"`
}

// Evaluation collects every evaluator's Score for one team. There is exactly
// one Evaluation per (hackathon, team) pair, created on first score submission.
type Evaluation struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	HackathonID primitive.ObjectID  `json:"hackathonId" bson:"hackathon_id"`
	QuestionID  *primitive.ObjectID `json:"questionId,omitempty" bson:"question_id,omitempty"`
	TeamID      primitive.ObjectID  `json:"teamId" bson:"team_id"`
	Scores      []Score             `json:"scores" bson:"scores"`
	CreatedAt   time.Time           `json:"createdAt" bson:"created_at"`
}
