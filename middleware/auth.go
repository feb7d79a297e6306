package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

// Context keys populated by Principal.
const (
	UserKey = "current_user"
	RoleKey = "user_role"
)

var userCollection *mongo.Collection

// SetUserCollection wires the users collection; authentication itself happens
// upstream, this layer only resolves the already-verified principal.
func SetUserCollection(db *mongo.Database) {
	userCollection = db.Collection("users")
}

// Principal resolves the X-User-ID header to a user document and stores it
// in the request context.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-ID")
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			c.Abort()
			return
		}
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			c.Abort()
			return
		}

		role, ok := models.ParseRole(string(user.Role))
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "unrecognized role"})
			c.Abort()
			return
		}

		c.Set(UserKey, &user)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Admin always passes.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get(RoleKey)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "no role in request context"})
			c.Abort()
			return
		}
		role := roleAny.(models.Role)

		allowed := role == models.RoleAdmin
		for _, r := range roles {
			if role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the principal stored by Principal.
func CurrentUser(c *gin.Context) *models.User {
	u, _ := c.Get(UserKey)
	user, _ := u.(*models.User)
	return user
}
