package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gad-officerhub/internal/adapters/http/middleware"
	"gad-officerhub/internal/adapters/http/routes"
	"gad-officerhub/internal/adapters/persistence/models"
	"gad-officerhub/internal/adapters/persistence/session"
	"gad-officerhub/internal/config"
	"gad-officerhub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "gad-officerhub/docs" // Swagger docs
)

// @title GAD OfficerHub API
// @version 1.0
// @description Officer profile backend: SPARK feed reconciliation, profile completion tracking and master data administration.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email gad-support@kerala.gov.in

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host officerhub.gad.kerala.gov.in
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	// Note: This only migrates owned tables, NOT the legacy spark_deputations feed
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed master data and demo accounts
	if err := config.SeedAll(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Session store backs the per-session profile documents
	sessions := session.NewStore()

	// Nightly maintenance: prune idle sessions
	maxIdle := time.Duration(cfg.Profile.SessionIdleHours) * time.Hour
	cronService := services.NewCronService(sessions, maxIdle)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron scheduler: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GAD OfficerHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, cfg and session store for dependency injection)
	routes.Setup(app, db, cfg, sessions)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
