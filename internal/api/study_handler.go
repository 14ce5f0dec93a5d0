package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/vocab-api/internal/api/shared"
	"github.com/phrazzld/vocab-api/internal/config"
	"github.com/phrazzld/vocab-api/internal/dispatch"
	"github.com/phrazzld/vocab-api/internal/platform/logger"
	"github.com/phrazzld/vocab-api/internal/service/study"
)

// StudyHandler handles answer submission, study-block, and progress requests.
type StudyHandler struct {
	dispatcher *dispatch.Dispatcher
	studyCfg   config.StudyConfig
	logger     *slog.Logger
}

// NewStudyHandler creates a new StudyHandler. The study config bounds the
// block sizes clients may request.
func NewStudyHandler(
	dispatcher *dispatch.Dispatcher,
	studyCfg config.StudyConfig,
	log *slog.Logger,
) *StudyHandler {
	// ALLOW-PANIC: constructor enforces required dependencies
	if dispatcher == nil {
		panic("dispatcher cannot be nil for StudyHandler")
	}
	if studyCfg.DefaultBlockSize <= 0 {
		studyCfg.DefaultBlockSize = study.DefaultBlockSize
	}
	if log == nil {
		log = slog.Default()
	}

	return &StudyHandler{
		dispatcher: dispatcher,
		studyCfg:   studyCfg,
		logger:     log.With(slog.String("component", "study_handler")),
	}
}

// SubmitAnswer handles POST /submit-answer.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode answer request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	result, err := h.dispatcher.SubmitCommand(r.Context(), study.SubmitAnswerCommand{
		LearnerID:           req.LearnerID,
		WordID:              req.WordID,
		Quality:             req.Quality,
		ResponseTimeSeconds: req.ResponseTimeSeconds,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	answer, ok := result.(*study.SubmitAnswerResult)
	if !ok {
		log.Error("unexpected result type from submit answer handler")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, answer)
}

// GenerateStudyBlock handles GET /study-block/{learnerID}.
// An optional limit query parameter bounds the block size.
func (h *StudyHandler) GenerateStudyBlock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID := chi.URLParam(r, "learnerID")

	limit := h.studyCfg.DefaultBlockSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Debug("invalid limit parameter", slog.String("limit", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be an integer")
			return
		}
		limit = parsed
	}
	if h.studyCfg.MaxBlockSize > 0 && limit > h.studyCfg.MaxBlockSize {
		log.Debug("limit above configured maximum",
			slog.Int("limit", limit),
			slog.Int("max", h.studyCfg.MaxBlockSize))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Limit exceeds the maximum block size")
		return
	}

	result, err := h.dispatcher.SubmitCommand(r.Context(), study.GenerateStudyBlockCommand{
		LearnerID: learnerID,
		Limit:     limit,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	block, ok := result.(*study.StudyBlock)
	if !ok {
		log.Error("unexpected result type from study block handler")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, block)
}

// GetProgress handles GET /progress/{learnerID}.
func (h *StudyHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := h.dispatcher.SubmitQuery(r.Context(), study.GetLearnerProgressQuery{
		LearnerID: chi.URLParam(r, "learnerID"),
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	progress, ok := result.(*study.LearnerProgress)
	if !ok {
		log.Error("unexpected result type from progress handler")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
