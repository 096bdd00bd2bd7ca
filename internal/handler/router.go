package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/service"
)

// NewRouter wires every route. Resource routes sit behind the authenticator;
// auth and health do not.
func NewRouter(auth *AuthHandler, tasks *TaskHandler, projects *ProjectHandler, authSvc *service.AuthService, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(Authenticator(authSvc))

		r.Route("/api/tasks", func(r chi.Router) {
			r.Post("/", tasks.Create)
			r.Get("/", tasks.List)
			r.Get("/{id}", tasks.Get)
			r.Patch("/{id}", tasks.Update)
			r.Delete("/{id}", tasks.Delete)
		})

		r.Route("/api/projects", func(r chi.Router) {
			r.Post("/", projects.Create)
			r.Get("/", projects.List)
			r.Get("/{id}", projects.Get)
			r.Patch("/{id}", projects.Update)
			r.Delete("/{id}", projects.Delete)
		})
	})

	return r
}
