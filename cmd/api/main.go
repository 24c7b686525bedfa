package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/bloghub/docs"
	"github.com/fkhayef/bloghub/internal/auth"
	"github.com/fkhayef/bloghub/internal/config"
	"github.com/fkhayef/bloghub/internal/database"
	"github.com/fkhayef/bloghub/internal/post"
	"github.com/fkhayef/bloghub/internal/user"
	mw "github.com/fkhayef/bloghub/pkg/middleware"
)

// @title        Bloghub API
// @version      1.0
// @description  A blogging platform backend with JWT authentication
// @BasePath     /api

// @securityDefinitions.apikey BearerAuth
// @in    header
// @name  Authorization
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Post feature
	postRepo := post.NewRepository(db)
	postService := post.NewService(postRepo)

	// User feature (post repo injected for author pages and stats)
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, postRepo)

	// Auth feature
	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService)

	// Bearer-token middleware resolves the actor through the user service
	requireAuth := mw.RequireAuth(tokens, userService)

	postHandler := post.NewHandler(postService, requireAuth)
	userHandler := user.NewHandler(userService, requireAuth)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/posts", postHandler.Routes())
		r.Mount("/users", userHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
