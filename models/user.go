package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a closed set; free-form role strings invite typo bugs.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleEvaluator   Role = "evaluator"
	RoleParticipant Role = "participant"
)

// ParseRole maps a stored role string onto the closed enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleCoordinator, RoleEvaluator, RoleParticipant:
		return Role(s), true
	}
	return "", false
}

// IsStaff reports whether the role is reverted to participant on cleanup.
func (r Role) IsStaff() bool {
	return r == RoleCoordinator || r == RoleEvaluator
}

type User struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name             string              `json:"name" bson:"name"`
	Email            string              `json:"email" bson:"email"`
	Role             Role                `json:"role" bson:"role"`
	CurrentHackathon *primitive.ObjectID `json:"currentHackathon,omitempty" bson:"current_hackathon,omitempty"`
}
