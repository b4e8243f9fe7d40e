package api

import (
	"net/http"

	"github.com/St1cky1/todo-backend/internal/api/handlers"
	"github.com/St1cky1/todo-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(taskService *usecase.TaskService, db handlers.DatabaseStatus) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// CORS полностью открыт: любой origin с credentials
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return true
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	taskHandler := handlers.NewTaskHandler(taskService)
	systemHandler := handlers.NewSystemHandler(db)

	r.Get("/", systemHandler.Root)
	r.Get("/test", systemHandler.TestDatabase)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Patch("/", taskHandler.UpdateTask)
				r.Delete("/", taskHandler.DeleteTask)
				r.Post("/toggle", taskHandler.ToggleTask)
				r.Get("/audit", taskHandler.ListTaskAudit)
			})
		})
	})

	return r
}
