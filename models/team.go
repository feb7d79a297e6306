package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Evaluation lock states for a team.
const (
	EvaluationAvailable      = "available"
	EvaluationBeingEvaluated = "being_evaluated"
	EvaluationCompleted      = "completed"
)

// A lock older than this is considered abandoned and may be reclaimed.
const StaleLockThreshold = 30 * time.Minute

type Submission struct {
	URL         string    `json:"url" bson:"url"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submitted_at"`
}

type Team struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name                string               `json:"name" bson:"name"`
	HackathonID         primitive.ObjectID   `json:"hackathonId" bson:"hackathon_id"`
	QuestionID          *primitive.ObjectID  `json:"questionId,omitempty" bson:"question_id,omitempty"`
	Members             []primitive.ObjectID `json:"members" bson:"members"`
	MidSubmission       *Submission          `json:"midSubmission,omitempty" bson:"mid_submission,omitempty"`
	GithubSubmission    *Submission          `json:"githubSubmission,omitempty" bson:"github_submission,omitempty"`
	ReadyForEvaluation  bool                 `json:"readyForEvaluation" bson:"ready_for_evaluation"`
	EvaluationReadyAt   *time.Time           `json:"evaluationReadyAt,omitempty" bson:"evaluation_ready_at,omitempty"`
	AssignedEvaluator   *primitive.ObjectID  `json:"assignedEvaluator,omitempty" bson:"assigned_evaluator,omitempty"`
	EvaluationStatus    string               `json:"evaluationStatus" bson:"evaluation_status"`
	EvaluationStartedAt *time.Time           `json:"evaluationStartedAt,omitempty" bson:"evaluation_started_at,omitempty"`
}

// LockedBy reports whether the team is currently being evaluated by evaluatorID.
func (t *Team) LockedBy(evaluatorID primitive.ObjectID) bool {
	return t.EvaluationStatus == EvaluationBeingEvaluated &&
		t.AssignedEvaluator != nil && *t.AssignedEvaluator == evaluatorID
}

// LockIsStale reports whether the team's lock has outlived the staleness threshold.
func (t *Team) LockIsStale(now time.Time) bool {
	return t.EvaluationStatus == EvaluationBeingEvaluated &&
		t.EvaluationStartedAt != nil &&
		now.Sub(*t.EvaluationStartedAt) >= StaleLockThreshold
}
