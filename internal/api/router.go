package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/icares/memberportal/internal/api/handlers"
	"github.com/icares/memberportal/internal/api/middleware"
	"github.com/icares/memberportal/internal/config"
	"github.com/icares/memberportal/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(services.Auth, cfg)
	authHandler := handlers.NewAuthHandler(services.Auth, services.User, cfg)
	profileHandler := handlers.NewProfileHandler(services.User, services.Auth)

	r.Get("/", homeHandler.Index)
	r.Get("/logout", authHandler.Logout)

	// Login and registration bounce authenticated visitors to /profile
	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfAuthenticated(services.Auth, cfg, "/profile"))
		r.Get("/login", authHandler.LoginPage)
		r.Post("/login", authHandler.Login)
		r.Get("/register", authHandler.RegisterPage)
		r.Post("/register", authHandler.Register)
	})

	// Protected pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(services.Auth, cfg, "/login"))
		r.Get("/profile", profileHandler.Show)
		r.Post("/profile", profileHandler.Update)
	})

	return r
}
