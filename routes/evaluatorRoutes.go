package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/controllers"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/middleware"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

func EvaluatorRoutes(r *gin.Engine, hub *models.Hub) {
	evaluator := r.Group("/api/evaluator")
	evaluator.Use(middleware.Principal(), middleware.RequireRole(models.RoleEvaluator))
	{
		evaluator.POST("/teams/:id/select", controllers.SelectTeamHandler(hub))
		evaluator.POST("/teams/:id/release", controllers.ReleaseTeamHandler(hub))
		evaluator.POST("/teams/:id/score", controllers.SubmitScoreHandler(hub))
		evaluator.GET("/dashboard", controllers.EvaluatorDashboardHandler)
		evaluator.POST("/reconnect", controllers.ReconnectEvaluatorHandler)
	}
}
