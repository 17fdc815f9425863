package main

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apimiddleware "github.com/phrazzld/task-api/internal/api/middleware"
)

// pageTitle is rendered into the landing page.
const pageTitle = "Task Manager"

// setupRouter creates the router with all middleware and routes.
func (app *application) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apimiddleware.NewTraceMiddleware(app.logger))
	r.Use(apimiddleware.Recoverer)

	taskHandler := api.NewTaskHandler(app.taskStore, app.logger,
		api.WithStrictNotFound(app.config.API.StrictNotFound))
	healthHandler := api.NewHealthHandler(app.health, app.logger)
	homeHandler := api.NewHomeHandler(pageTitle, app.logger)

	r.Get("/", homeHandler.Index)
	r.Get("/health", healthHandler.Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Put("/{id:[0-9]+}", taskHandler.UpdateTask)
		r.Delete("/{id:[0-9]+}", taskHandler.DeleteTask)
	})

	return r
}
