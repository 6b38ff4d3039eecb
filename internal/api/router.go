package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"taskboard/internal/api/handler"
	"taskboard/internal/api/middleware"
	"taskboard/internal/app/service"
)

func NewRouter(
	authService *service.AuthService,
	taskService *service.TaskService,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.StripSlashes)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API routes: JSON errors, Basic auth on every request.
	taskHandler := handler.NewTaskHandler(taskService, logger)
	requireAuth := middleware.BasicAuth(authService, logger)

	r.Route("/tasks", func(tasks chi.Router) {
		tasks.Use(middleware.JSONRecoverer(logger))
		tasks.Use(requireAuth)
		taskHandler.RegisterRoutes(tasks)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.JSONRecoverer(logger))
		api.Route("/tareas", func(tareas chi.Router) {
			tareas.Use(requireAuth)
			taskHandler.RegisterCRUDRoutes(tareas)
		})
	})

	// Web routes (public, HTML)
	r.Group(func(web chi.Router) {
		web.Use(chiMiddleware.Recoverer)
		handler.NewWebHandler(taskService, logger).RegisterRoutes(web)
	})

	return r
}
