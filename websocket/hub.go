package websocket

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/controllers"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for simplicity; adjust in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWs upgrades the connection, pushes a snapshot of open hackathons so
// dashboards render immediately, and then registers the client with the hub.
// The snapshot is written before the pumps start: once WritePump owns the
// connection, nothing else may write to it, and once the hub may close
// client.Send, nothing else may send on it.
func ServeWs(h *models.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	if err := writeSnapshot(conn); err != nil {
		log.Println("Failed to send hackathon snapshot:", err)
		conn.Close()
		return
	}

	client := &models.Client{Conn: conn, Send: make(chan models.WSMessage, 256)}
	h.Register <- client

	go client.WritePump()
	go client.ReadPump(h)
}

func writeSnapshot(conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := controllers.HackathonCollection.Find(ctx,
		bson.M{"status": bson.M{"$ne": models.HackathonCompleted}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var hackathons []models.Hackathon
	if err := cursor.All(ctx, &hackathons); err != nil {
		return err
	}

	return conn.WriteJSON(models.WSMessage{Event: "hackathons_snapshot", Data: hackathons})
}
