package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/sharebnb/internal/config"
	"github.com/crucial707/sharebnb/internal/handlers"
	"github.com/crucial707/sharebnb/internal/middleware"
	"github.com/crucial707/sharebnb/internal/repo"
)

// newRouter wires repositories, handlers, and the middleware chain. Split out
// of main so the full HTTP surface can be exercised in tests against a mock DB.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	listingRepo := repo.NewListingRepo(database)
	bookingRepo := repo.NewBookingRepo(database)

	secret := []byte(cfg.JWTSecret)
	ttl := time.Duration(cfg.JWTExpireHours) * time.Hour

	authH := &handlers.AuthHandler{Users: userRepo, Secret: secret, TokenTTL: ttl}
	userH := &handlers.UserHandler{Repo: userRepo, Secret: secret, TokenTTL: ttl}
	listingH := &handlers.ListingHandler{Repo: listingRepo}
	bookingH := &handlers.BookingHandler{Repo: bookingRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Prometheus)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         86400,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Signup and login share a tighter per-IP limit than the rest of the API.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/auth/login", authH.Login)
		r.Post("/users", userH.CreateUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWT(secret))
		r.Get("/me", userH.Me)
	})

	r.Get("/users", userH.ListUsers)
	r.Get("/users/{username}", userH.GetUser)
	r.Patch("/users/{username}", userH.UpdateUser)
	r.Delete("/users/{username}", userH.DeleteUser)

	r.Route("/listings", func(r chi.Router) {
		r.Post("/", listingH.CreateListing)
		r.Get("/", listingH.ListListings)
		r.Get("/{title}", listingH.GetListing)
		r.Patch("/{title}", listingH.UpdateListing)
		r.Delete("/{title}", listingH.DeleteListing)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingH.CreateBooking)
		r.Get("/", bookingH.ListBookings)
		r.Get("/{id}", bookingH.GetBooking)
		r.Patch("/{id}", bookingH.UpdateBooking)
		r.Delete("/{id}", bookingH.DeleteBooking)
	})

	return r
}
