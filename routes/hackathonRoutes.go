package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/controllers"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/middleware"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

func HackathonRoutes(r *gin.Engine, hub *models.Hub) {
	api := r.Group("/api")
	api.Use(middleware.Principal())
	{
		api.GET("/hackathons/:id", controllers.GetHackathonHandler)
		api.GET("/questions/:id", controllers.GetQuestionHandler)
		api.GET("/questions", controllers.GetQuestionsHandler)
		api.POST("/hackathons/:id/winners",
			middleware.RequireRole(models.RoleEvaluator, models.RoleAdmin),
			controllers.AnnounceWinnersHandler(hub))
	}
}
