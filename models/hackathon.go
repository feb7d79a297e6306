package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hackathon lifecycle statuses.
const (
	HackathonUpcoming  = "upcoming"
	HackathonActive    = "active"
	HackathonCompleted = "completed"
)

// Reasons a hackathon can reach the completed status.
const (
	ReasonTimeEnded                = "time_ended"
	ReasonInsufficientParticipants = "insufficient_participants"
	ReasonWinnersAnnounced         = "winners_announced"
)

// Minimum participation required for a hackathon to go active.
const (
	MinTeams        = 3
	MinCoordinators = 1
	MinEvaluators   = 1
)

type HackathonLimits struct {
	MaxParticipants int `json:"maxParticipants" bson:"max_participants"`
	MaxTeams        int `json:"maxTeams" bson:"max_teams"`
	MaxCoordinators int `json:"maxCoordinators" bson:"max_coordinators"`
	MaxEvaluators   int `json:"maxEvaluators" bson:"max_evaluators"`
	MaxTeamSize     int `json:"maxTeamSize" bson:"max_team_size"`
}

// Winners is either fully unset or fully set; once set the hackathon is completed.
type Winners struct {
	FirstPlace  *primitive.ObjectID `json:"firstPlace,omitempty" bson:"first_place,omitempty"`
	SecondPlace *primitive.ObjectID `json:"secondPlace,omitempty" bson:"second_place,omitempty"`
	ThirdPlace  *primitive.ObjectID `json:"thirdPlace,omitempty" bson:"third_place,omitempty"`
}

type Hackathon struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name                 string             `json:"name" bson:"name"`
	RegistrationDeadline time.Time          `json:"registrationDeadline" bson:"registration_deadline"`
	StartDate            time.Time          `json:"startDate" bson:"start_date"`
	MidSubmissionDate    time.Time          `json:"midSubmissionDate" bson:"mid_submission_date"`
	EndDate              time.Time          `json:"endDate" bson:"end_date"`
	Limits               HackathonLimits    `json:"limits" bson:"limits"`
	Status               string             `json:"status" bson:"status"`
	CompletedReason      string             `json:"completedReason,omitempty" bson:"completed_reason,omitempty"`
	Winners              Winners            `json:"winners" bson:"winners"`
	WinnersAnnouncedAt   *time.Time         `json:"winnersAnnouncedAt,omitempty" bson:"winners_announced_at,omitempty"`
	CreatedAt            time.Time          `json:"createdAt" bson:"created_at"`
}

// AnySet reports whether any podium slot is filled. The fields are either
// all unset or all set; a partially-filled podium still blocks announcement.
func (w Winners) AnySet() bool {
	return w.FirstPlace != nil || w.SecondPlace != nil || w.ThirdPlace != nil
}

// HasWinners reports whether winners have been announced.
func (h *Hackathon) HasWinners() bool {
	return h.Winners.FirstPlace != nil
}
