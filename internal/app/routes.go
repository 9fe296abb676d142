package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dev-ahmed/issue-reporter/internal/handler"
	"github.com/dev-ahmed/issue-reporter/internal/security"
	"github.com/dev-ahmed/issue-reporter/internal/web"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(security.HeadersMiddleware)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS)))

	// Health check
	r.Get("/api/health", handler.Health(app.storePing))

	// Issue form
	r.Get("/", app.formHandler.Page)
	r.Post("/form/steps", app.formHandler.AddStep)
	r.Post("/form/submit", app.formHandler.Submit)
	r.Post("/form/confirm", app.formHandler.Confirm)
	r.Post("/form/cancel", app.formHandler.Cancel)

	return r
}
