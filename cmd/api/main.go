package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/roamly/travel-buddy-backend/internal/auth"
	"github.com/roamly/travel-buddy-backend/internal/config"
	"github.com/roamly/travel-buddy-backend/internal/database"
	"github.com/roamly/travel-buddy-backend/internal/handler"
	appMiddleware "github.com/roamly/travel-buddy-backend/internal/middleware"
	"github.com/roamly/travel-buddy-backend/internal/repository"
	"github.com/roamly/travel-buddy-backend/internal/service"
	"github.com/roamly/travel-buddy-backend/internal/storage"
)

func main() {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations in dev environment
	if cfg.Environment == "dev" {
		log.Println("Running database migrations...")
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	}

	// Validate JWT secrets are configured
	if cfg.JWTSecret == "" || cfg.RefreshSecret == "" {
		log.Fatal("JWT_SECRET and REFRESH_TOKEN_SECRET environment variables are required")
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize Google Drive service (optional - only if credentials are configured)
	var uploader service.PhotoUploader
	if cfg.GDriveCredentialsPath != "" && cfg.GDriveTokenPath != "" && cfg.GDriveFolderID != "" {
		gdriveService, err := storage.NewGDriveService(cfg.GDriveCredentialsPath, cfg.GDriveTokenPath, cfg.GDriveFolderID)
		if err != nil {
			log.Printf("Warning: Failed to initialize Google Drive service: %v", err)
			log.Println("Photo uploads will be disabled")
		} else {
			log.Println("Google Drive service initialized successfully")
			uploader = gdriveService
		}
	} else {
		log.Println("Google Drive credentials not configured, photo uploads disabled")
	}

	// Initialize store, services and handlers
	store := repository.New(db)
	authService := service.NewAuthService(store, jwtManager)
	userService := service.NewUserService(store, uploader)
	tripService := service.NewTripService(store, uploader)
	buddyService := service.NewBuddyService(store)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tripHandler := handler.NewTripHandler(tripService, cfg.DeepLinkBaseURL)
	buddyHandler := handler.NewBuddyHandler(buddyService)

	// Initialize router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public routes
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.JWTAuth(jwtManager))
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		r.Route("/users", func(r chi.Router) {
			// Public route - registration
			r.Post("/", userHandler.Register)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.JWTAuth(jwtManager))
				r.Get("/", userHandler.List)
				r.Put("/me", userHandler.UpdateMe)
			})
		})

		r.Route("/trips", func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(jwtManager))
			r.Post("/", tripHandler.Create)
			r.Get("/", tripHandler.List)
			r.Get("/{tripId}", tripHandler.GetByID)
			r.Put("/{tripId}", tripHandler.Update)
			r.Delete("/{tripId}", tripHandler.Delete)
			r.Get("/{tripId}/qr", tripHandler.GenerateQR)
			r.Post("/{tripId}/request", buddyHandler.SendRequest)
			r.Patch("/{tripId}/{buddyId}/respond", buddyHandler.Respond)
		})

		r.Route("/travel-buddies", func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(jwtManager))
			r.Get("/{tripId}", buddyHandler.ListCandidates)
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s (env: %s)", port, cfg.Environment)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
