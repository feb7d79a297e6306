package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/controllers"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/middleware"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

func AdminRoutes(r *gin.Engine, hub *models.Hub) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.Principal(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/status-sweep", controllers.StatusSweepHandler(hub))
		admin.POST("/reclaim-locks", controllers.ReclaimLocksHandler(hub))
		admin.POST("/cleanup-completed", controllers.CleanupCompletedHandler)
	}
}
