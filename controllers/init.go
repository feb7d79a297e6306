package controllers

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB collections
var (
	HackathonCollection  *mongo.Collection
	TeamCollection       *mongo.Collection
	UserCollection       *mongo.Collection
	EvaluationCollection *mongo.Collection
	QuestionCollection   *mongo.Collection
)

func SetHackathonCollection(db *mongo.Database) {
	HackathonCollection = db.Collection("hackathons")
}

func SetTeamCollection(db *mongo.Database) {
	TeamCollection = db.Collection("teams")
}

func SetUserCollection(db *mongo.Database) {
	UserCollection = db.Collection("users")
}

// SetEvaluationCollection initializes the evaluations collection. The unique
// compound index enforces one Evaluation per (hackathon, team) pair.
func SetEvaluationCollection(db *mongo.Database) {
	EvaluationCollection = db.Collection("evaluations")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "hackathon_id", Value: 1}, {Key: "team_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := EvaluationCollection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		log.Fatalf("Failed to create unique index on evaluations: %v", err)
	}
}

func SetQuestionCollection(db *mongo.Database) {
	QuestionCollection = db.Collection("questions")
}
