package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/vocab-api/internal/api/shared"
	"github.com/phrazzld/vocab-api/internal/dispatch"
	"github.com/phrazzld/vocab-api/internal/domain"
	"github.com/phrazzld/vocab-api/internal/platform/logger"
	"github.com/phrazzld/vocab-api/internal/service/study"
)

// WordHandler handles word management and statistics requests.
type WordHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(dispatcher *dispatch.Dispatcher, log *slog.Logger) *WordHandler {
	// ALLOW-PANIC: constructor enforces required dependencies
	if dispatcher == nil {
		panic("dispatcher cannot be nil for WordHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &WordHandler{
		dispatcher: dispatcher,
		logger:     log.With(slog.String("component", "word_handler")),
	}
}

// CreateWord handles POST /words.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateWordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode create word request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	result, err := h.dispatcher.SubmitCommand(r.Context(), study.CreateWordCommand{
		Text:            req.Text,
		FrequencyRank:   req.FrequencyRank,
		DifficultyLevel: req.DifficultyLevel,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	word, ok := result.(*domain.Word)
	if !ok {
		log.Error("unexpected result type from create word handler")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, word)
}

// GetWord handles GET /word/{wordID}.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	wordID, ok := h.pathWordID(w, r)
	if !ok {
		return
	}

	result, err := h.dispatcher.SubmitQuery(r.Context(), study.GetWordByIDQuery{WordID: wordID})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetWordStats handles GET /word/{wordID}/stats.
func (h *WordHandler) GetWordStats(w http.ResponseWriter, r *http.Request) {
	wordID, ok := h.pathWordID(w, r)
	if !ok {
		return
	}

	result, err := h.dispatcher.SubmitQuery(r.Context(), study.GetWordStatsQuery{WordID: wordID})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ListWordsByDifficulty handles GET /words/difficulty/{level}.
// An optional limit query parameter bounds the result size.
func (h *WordHandler) ListWordsByDifficulty(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		log.Debug("invalid difficulty level parameter",
			slog.String("level", chi.URLParam(r, "level")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Difficulty level must be an integer")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be an integer")
			return
		}
	}

	result, err := h.dispatcher.SubmitQuery(r.Context(), study.GetWordsByDifficultyQuery{
		Level: level,
		Limit: limit,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetGlobalStats handles GET /stats.
func (h *WordHandler) GetGlobalStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dispatcher.SubmitQuery(r.Context(), study.GetGlobalStatsQuery{})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// pathWordID extracts and validates the wordID path parameter, writing a
// 400 response when it is missing or malformed.
func (h *WordHandler) pathWordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "wordID")
	wordID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || wordID <= 0 {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Debug("invalid word ID parameter", slog.String("word_id", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Word ID must be a positive integer")
		return 0, false
	}
	return wordID, true
}
