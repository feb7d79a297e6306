package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is the problem statement a team works on, with the criteria
// evaluators score against. Read-only from this service's point of view.
type Question struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	HackathonID primitive.ObjectID `json:"hackathonId" bson:"hackathon_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Criteria    []string           `json:"criteria" bson:"criteria"`
}
