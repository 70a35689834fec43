package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"fasalmitra/internal/handlers"
	"fasalmitra/internal/middleware"
)

func New(
	basicAuth *middleware.BasicAuth,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	seasonHandler *handlers.SeasonHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"FasalMitra API","status":"running","api":"/api"}`))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Middleware)
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(basicAuth.Middleware)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Use(basicAuth.Middleware)
			r.Post("/", chatHandler.Send)
			r.Get("/history", chatHandler.History)
		})

		// ──── Season Routes ────
		r.Route("/seasons", func(r chi.Router) {
			r.Use(basicAuth.Middleware)
			r.Post("/", seasonHandler.Create)
			r.Get("/", seasonHandler.List)
		})

		r.Route("/crop", func(r chi.Router) {
			r.Use(basicAuth.Middleware)
			r.Get("/current-season", seasonHandler.Current)
		})

		// ──── Placeholder Routes ────
		r.Group(func(r chi.Router) {
			r.Use(basicAuth.Middleware)
			r.Get("/tasks/", handlers.Tasks)
			r.Get("/greenhouse/sensors", handlers.GreenhouseSensors)
			r.Get("/market/prices", handlers.MarketPrices)
			r.Get("/weather/{location}", handlers.Weather)
		})
	})

	return r
}
