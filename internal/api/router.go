package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yamdb/yamdb-backend/internal/api/handlers"
	"github.com/yamdb/yamdb-backend/internal/auth"
	"github.com/yamdb/yamdb-backend/internal/config"
	"github.com/yamdb/yamdb-backend/internal/metrics"
	"github.com/yamdb/yamdb-backend/internal/middleware"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	AuthSvc    *services.AuthService
	UserSvc    *services.UserService
	CatalogSvc *services.CatalogService
	ReviewSvc  *services.ReviewService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(chimw.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	am := middleware.NewAuthMiddleware(d.TM)

	authH := handlers.NewAuthHandler(d.AuthSvc)
	usersH := handlers.NewUsersHandler(d.UserSvc)
	catsH := handlers.NewCategoriesHandler(d.CatalogSvc)
	genresH := handlers.NewGenresHandler(d.CatalogSvc)
	titlesH := handlers.NewTitlesHandler(d.CatalogSvc)
	reviewsH := handlers.NewReviewsHandler(d.ReviewSvc)
	commentsH := handlers.NewCommentsHandler(d.ReviewSvc)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", authH.Signup)
		r.Post("/auth/token", authH.Token)

		// categories & genres: public read, admin write, no retrieve/update
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catsH.List)
			r.Group(func(r chi.Router) {
				r.Use(am.Auth, middleware.RequireAdmin)
				r.Post("/", catsH.Create)
				r.Delete("/{slug}", catsH.Delete)
			})
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genresH.List)
			r.Group(func(r chi.Router) {
				r.Use(am.Auth, middleware.RequireAdmin)
				r.Post("/", genresH.Create)
				r.Delete("/{slug}", genresH.Delete)
			})
		})

		r.Route("/titles", func(r chi.Router) {
			r.Get("/", titlesH.List)
			r.Get("/{titleID}", titlesH.Get)
			r.Group(func(r chi.Router) {
				r.Use(am.Auth, middleware.RequireAdmin)
				r.Post("/", titlesH.Create)
				r.Patch("/{titleID}", titlesH.Patch)
				r.Delete("/{titleID}", titlesH.Delete)
			})

			r.Route("/{titleID}/reviews", func(r chi.Router) {
				r.Get("/", reviewsH.List)
				r.Get("/{reviewID}", reviewsH.Get)
				r.Group(func(r chi.Router) {
					r.Use(am.Auth)
					r.Post("/", reviewsH.Create)
					r.Patch("/{reviewID}", reviewsH.Patch)
					r.Delete("/{reviewID}", reviewsH.Delete)
				})

				r.Route("/{reviewID}/comments", func(r chi.Router) {
					r.Get("/", commentsH.List)
					r.Get("/{commentID}", commentsH.Get)
					r.Group(func(r chi.Router) {
						r.Use(am.Auth)
						r.Post("/", commentsH.Create)
						r.Patch("/{commentID}", commentsH.Patch)
						r.Delete("/{commentID}", commentsH.Delete)
					})
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(am.Auth)
			r.Get("/me", usersH.Me)
			r.Patch("/me", usersH.PatchMe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", usersH.List)
				r.Post("/", usersH.Create)
				r.Get("/{username}", usersH.Get)
				r.Patch("/{username}", usersH.Patch)
				r.Delete("/{username}", usersH.Delete)
			})
		})
	})

	return r
}
