package routes

import (
	"gad-officerhub/internal/adapters/http/handlers"
	"gad-officerhub/internal/adapters/http/middleware"
	"gad-officerhub/internal/adapters/persistence/repositories"
	"gad-officerhub/internal/adapters/persistence/session"
	"gad-officerhub/internal/config"
	"gad-officerhub/internal/core/domain"
	"gad-officerhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, sessions *session.Store) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	masters := repositories.NewMasters(db)
	deputationRepo := repositories.NewCentralDeputationRepository(db)
	sparkRepo := repositories.NewSparkDeputationRepository(db)

	// Initialize services
	lookupService := services.NewLookupService(
		masters.States,
		masters.TenureTypes,
		masters.Ministries,
		masters.Departments,
		masters.Organisations,
		masters.DeputationTypes,
	)
	deputationService := services.NewDeputationService(deputationRepo, sparkRepo, lookupService, sessions)
	progressService := services.NewProgressService(cfg.Profile.Sections, sessions)
	exportService := services.NewExportService()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(cfg, userRepo, sessions)
	masterHandler := handlers.NewMasterHandler(masters, exportService)
	deputationHandler := handlers.NewDeputationHandler(deputationService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (stricter rate limit on login)
	auth := apiV1.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Master data: reads for any authenticated role, mutations admin only
	mastersGroup := apiV1.Group("/masters",
		middleware.AuthMiddleware(cfg),
		middleware.MasterDataCache(),
	)
	masterHandler.Register(mastersGroup, middleware.AdminOnly())

	// Officer profile routes (session-scoped, never cached)
	officer := apiV1.Group("/officer",
		middleware.AuthMiddleware(cfg),
		middleware.RoleMiddleware(domain.RoleOfficer, domain.RoleAdmin),
		middleware.NoCacheHeaders(),
	)
	officer.Get("/central-deputation", deputationHandler.List)
	officer.Post("/central-deputation", deputationHandler.Create)
	officer.Put("/central-deputation/:id", deputationHandler.Update)
	officer.Delete("/central-deputation/:id", deputationHandler.Delete)

	// Clerk routes act on a target officer's profile
	clerk := apiV1.Group("/clerk",
		middleware.AuthMiddleware(cfg),
		middleware.ClerkOrAdmin(),
		middleware.NoCacheHeaders(),
	)
	clerk.Get("/central_deputation/:officerId", deputationHandler.ListFor)
	clerk.Post("/central_deputation/:officerId", deputationHandler.CreateFor)
	clerk.Put("/central_deputation/:officerId/:id", deputationHandler.UpdateFor)
	clerk.Delete("/central_deputation/:officerId/:id", deputationHandler.DeleteFor)

	// Profile completion routes
	profile := apiV1.Group("/profile",
		middleware.AuthMiddleware(cfg),
		middleware.NoCacheHeaders(),
	)
	profile.Get("/progress", progressHandler.Overview)
	profile.Put("/progress/:section", progressHandler.Report)
	profile.Post("/progress/:section/loaded", progressHandler.MarkLoaded)
	profile.Delete("/progress", progressHandler.Reset)
}
