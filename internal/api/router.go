package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/nmalet/blog-backend/internal/api/handlers"
	"github.com/nmalet/blog-backend/internal/auth"
	"github.com/nmalet/blog-backend/internal/config"
	"github.com/nmalet/blog-backend/internal/media"
	"github.com/nmalet/blog-backend/internal/metrics"
	"github.com/nmalet/blog-backend/internal/middleware"
	repo "github.com/nmalet/blog-backend/internal/repository"
	"github.com/nmalet/blog-backend/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	TM      *auth.TokenManager
	Users   repo.Users
	UserSvc *services.UserService
	PostSvc *services.PostService
	Media   media.Store
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	authMW := middleware.NewAuthMiddleware(d.TM)
	adminMW := middleware.NewAdminMiddleware(d.Users)

	session := handlers.NewSessionHandler(d.UserSvc, d.TM)
	posts := handlers.NewPostsHandler(d.PostSvc)
	users := handlers.NewUsersHandler(d.UserSvc, d.Media)
	admin := handlers.NewAdminHandler(d.UserSvc)
	home := handlers.NewHomeHandler(d.PostSvc, d.UserSvc)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// public
	r.Post("/register", session.Register)
	r.Post("/login", session.Login)
	r.Post("/logout", session.Logout)
	r.With(authMW.Optional).Get("/", home.Index)
	r.Get("/posts", posts.List)
	r.Get("/post/{id}", posts.Get)

	// session required
	r.Group(func(r chi.Router) {
		r.Use(authMW.Require)
		r.Post("/posts", posts.Create)
		r.Put("/posts/{id}", posts.Update)
		r.Delete("/posts/{id}", posts.Delete)
		r.Post("/posts/{id}/comments", posts.AddComment)
		r.Get("/user", users.Me)
		r.Post("/user/update", users.Update)
	})

	// admin only
	r.Group(func(r chi.Router) {
		r.Use(authMW.Require, adminMW.Require)
		r.Put("/admin/users/{id}", admin.SetTitle)
		r.Get("/admin", admin.Page("admin"))
		r.Get("/create-post", admin.Page("create-post"))
		r.Get("/update-user-role", admin.Page("update-user-role"))
	})

	return r
}
