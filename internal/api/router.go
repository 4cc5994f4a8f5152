package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/leafguard/leafguard-be/internal/api/handlers"
	"github.com/leafguard/leafguard-be/internal/auth"
	"github.com/leafguard/leafguard-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	corsOrigin string,
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	classificationService services.ClassificationServiceProvider,
	health *handlers.HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	classificationHandler := handlers.NewClassificationHandler(classificationService)

	r.Get("/healthz", health.Check)

	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens))
		r.Get("/profile", authHandler.Profile)
	})

	// Public analytics consumed by the dashboard before login.
	r.Get("/classifications", classificationHandler.List)
	r.Get("/summary", classificationHandler.Summary)
	r.Get("/recent-uploads", classificationHandler.RecentUploads)

	return r
}
