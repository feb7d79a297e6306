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
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

// GetQuestion retrieves a question by id. Questions are read-only here;
// criteria CRUD lives in another service.
func GetQuestion(ctx context.Context, id primitive.ObjectID) (*models.Question, *apperr.Error) {
	var question models.Question
	err := QuestionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("question not found")
		}
		return nil, apperr.Internal("failed to load question", err)
	}
	return &question, nil
}

// GetQuestionHandler handles GET /api/questions/:id.
func GetQuestionHandler(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	question, appErr := GetQuestion(ctx, id)
	if appErr != nil {
		respondErr(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question})
}

// GetQuestionsHandler handles GET /api/questions, optionally filtered by hackathon.
func GetQuestionsHandler(c *gin.Context) {
	filter := bson.M{}
	if hex := c.Query("hackathon"); hex != "" {
		hackathonID, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hackathon id"})
			return
		}
		filter["hackathon_id"] = hackathonID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := QuestionCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load questions"})
		return
	}
	defer cursor.Close(ctx)

	questions := make([]models.Question, 0)
	if err := cursor.All(ctx, &questions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}
