package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/vocab-api/internal/api"
	apimiddleware "github.com/phrazzld/vocab-api/internal/api/middleware"
	"github.com/phrazzld/vocab-api/internal/api/shared"
)

// setupRouter configures the application router with middleware, CORS, and
// all API routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	studyHandler := api.NewStudyHandler(app.dispatcher, app.config.Study, app.logger)
	wordHandler := api.NewWordHandler(app.dispatcher, app.logger)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/submit-answer", studyHandler.SubmitAnswer)
		r.Get("/study-block/{learnerID}", studyHandler.GenerateStudyBlock)
		r.Get("/progress/{learnerID}", studyHandler.GetProgress)

		r.Post("/words", wordHandler.CreateWord)
		r.Get("/words/difficulty/{level}", wordHandler.ListWordsByDifficulty)
		r.Get("/word/{wordID}", wordHandler.GetWord)
		r.Get("/word/{wordID}/stats", wordHandler.GetWordStats)
		r.Get("/stats", wordHandler.GetGlobalStats)
	})

	return r
}
