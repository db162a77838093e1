package router

import (
	"log"

	"github.com/careloop/health-blog/backend/internal/handlers"
	"github.com/careloop/health-blog/backend/internal/middleware"
	"github.com/careloop/health-blog/backend/internal/models"
	"github.com/careloop/health-blog/backend/internal/repositories"
	"github.com/careloop/health-blog/backend/internal/storage"
	"github.com/careloop/health-blog/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := db.AutoMigrate(
		&models.User{},
		&models.BlogPost{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded images are served as static media.
	e.Static("/media", cfg.UploadDir)

	// --- Initialize repositories and collaborators ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresBlogPostRepository(db)
	imageStore := storage.NewLocalImageStore(cfg.UploadDir)

	// --- Anonymous routes ---
	authHandler := handlers.NewAuthHandler(userRepo, imageStore, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// --- Authenticated routes ---
	app := e.Group("")
	app.Use(middleware.SessionAuth(cfg.JWTSecret))

	dashboardHandler := handlers.NewDashboardHandler(userRepo, postRepo)
	dashboardHandler.RegisterDashboardRoutes(app)
	log.Println("Dashboard routes configured.")

	blogHandler := handlers.NewBlogHandler(postRepo, userRepo, imageStore)
	blogHandler.RegisterBlogRoutes(app)
	log.Println("Blog routes configured.")

	log.Println("All routes configured.")
}
