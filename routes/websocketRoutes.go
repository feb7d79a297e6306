package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/websocket"
)

func WebSocketRoutes(r *gin.Engine, hub *models.Hub) {
	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, c.Writer, c.Request)
	})
}
