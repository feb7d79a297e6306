package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/controllers"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/db"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/middleware"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/routes"
	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/scheduler"
)

func main() {
	godotenv.Load()

	// Connect to the database
	db.ConnectDB()
	database := db.GetDB()

	// Initialize the WebSocket hub
	hub := models.NewHub()
	go hub.Run()

	// Initialize all collections
	controllers.SetHackathonCollection(database)
	controllers.SetTeamCollection(database)
	controllers.SetUserCollection(database)
	controllers.SetEvaluationCollection(database)
	controllers.SetQuestionCollection(database)
	middleware.SetUserCollection(database)

	// Background sweeps: status updates plus completed-hackathon cleanup on
	// one timer, stale-lock reclamation on its own, slower timer.
	sched := scheduler.New(
		envDuration("STATUS_SWEEP_SECONDS", 30, time.Second),
		envDuration("RECLAIM_SWEEP_MINUTES", 10, time.Minute),
		func() {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			controllers.UpdateHackathonStatuses(ctx, hub)
			if _, err := controllers.CleanupCompletedHackathons(ctx); err != nil {
				log.Printf("cleanup sweep failed: %v", err)
			}
		},
		func() {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			if _, err := controllers.ReclaimStaleLocks(ctx, hub); err != nil {
				log.Printf("stale-lock reclaim failed: %v", err)
			}
		},
	)
	sched.Start()
	defer sched.Stop()

	// Initialize routes
	r := gin.Default()
	r.Use(cors.Default())

	routes.WebSocketRoutes(r, hub)
	routes.EvaluatorRoutes(r, hub)
	routes.HackathonRoutes(r, hub)
	routes.AdminRoutes(r, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Println("Server running on port", port)
	r.Run(":" + port)
}

func envDuration(name string, fallback int, unit time.Duration) time.Duration {
	if raw := os.Getenv(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return time.Duration(n) * unit
		}
		log.Printf("invalid %s=%q, using default %d", name, raw, fallback)
	}
	return time.Duration(fallback) * unit
}
