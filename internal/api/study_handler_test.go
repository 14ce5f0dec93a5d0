package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vocab-api/internal/config"
	"github.com/phrazzld/vocab-api/internal/dispatch"
	"github.com/phrazzld/vocab-api/internal/service/study"
	"github.com/phrazzld/vocab-api/internal/store"
)

// newStudyRouter wires a StudyHandler over the given dispatcher with the
// production route shapes.
func newStudyRouter(d *dispatch.Dispatcher) http.Handler {
	h := NewStudyHandler(d, config.StudyConfig{DefaultBlockSize: 20, MaxBlockSize: 100}, nil)
	r := chi.NewRouter()
	r.Post("/submit-answer", h.SubmitAnswer)
	r.Get("/study-block/{learnerID}", h.GenerateStudyBlock)
	r.Get("/progress/{learnerID}", h.GetProgress)
	return r
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	t.Parallel()

	next := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	d := dispatch.NewDispatcher()
	var received study.SubmitAnswerCommand
	d.RegisterCommandHandler(study.SubmitAnswerCommand{}, dispatch.CommandHandlerFunc(
		func(_ context.Context, cmd any) (any, error) {
			received = cmd.(study.SubmitAnswerCommand)
			return &study.SubmitAnswerResult{
				WordID:       received.WordID,
				Quality:      received.Quality,
				Correct:      true,
				Repetitions:  1,
				EaseFactor:   2.6,
				IntervalDays: 1,
				NextReviewAt: &next,
			}, nil
		}))

	body := `{"user_id":"learner-1","word_id":7,"quality":5,"response_time":1.5}`
	req := httptest.NewRequest(http.MethodPost, "/submit-answer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newStudyRouter(d).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "learner-1", received.LearnerID)
	assert.Equal(t, int64(7), received.WordID)

	var resp study.SubmitAnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Repetitions)
	assert.InDelta(t, 2.6, resp.EaseFactor, 1e-9)
}

func TestSubmitAnswerEndpointRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/submit-answer", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	newStudyRouter(dispatch.NewDispatcher()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAnswerEndpointRejectsInvalidFields(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		body string
	}{
		{name: "missing learner id", body: `{"word_id":7,"quality":5,"response_time":1}`},
		{name: "quality out of range", body: `{"user_id":"learner-1","word_id":7,"quality":9,"response_time":1}`},
		{name: "negative response time", body: `{"user_id":"learner-1","word_id":7,"quality":5,"response_time":-1}`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/submit-answer", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			newStudyRouter(dispatch.NewDispatcher()).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitAnswerEndpointWordNotFound(t *testing.T) {
	t.Parallel()

	d := dispatch.NewDispatcher()
	d.RegisterCommandHandler(study.SubmitAnswerCommand{}, dispatch.CommandHandlerFunc(
		func(context.Context, any) (any, error) {
			return nil, store.ErrWordNotFound
		}))

	body := `{"user_id":"learner-1","word_id":99,"quality":4,"response_time":1}`
	req := httptest.NewRequest(http.MethodPost, "/submit-answer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newStudyRouter(d).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Word not found")
	assert.NotContains(t, rec.Body.String(), "sql")
}

func TestGenerateStudyBlockEndpoint(t *testing.T) {
	t.Parallel()

	d := dispatch.NewDispatcher()
	var received study.GenerateStudyBlockCommand
	d.RegisterCommandHandler(study.GenerateStudyBlockCommand{}, dispatch.CommandHandlerFunc(
		func(_ context.Context, cmd any) (any, error) {
			received = cmd.(study.GenerateStudyBlockCommand)
			return &study.StudyBlock{
				BlockID:                "learner-1_20240311_120000",
				CreatedAt:              time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
				DifficultyDistribution: map[int]int{},
				TotalWords:             0,
			}, nil
		}))

	req := httptest.NewRequest(http.MethodGet, "/study-block/learner-1", nil)
	rec := httptest.NewRecorder()
	newStudyRouter(d).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "learner-1", received.LearnerID)
	assert.Equal(t, study.DefaultBlockSize, received.Limit, "missing limit falls back to the default")
}

func TestGenerateStudyBlockEndpointCustomLimit(t *testing.T) {
	t.Parallel()

	d := dispatch.NewDispatcher()
	var received study.GenerateStudyBlockCommand
	d.RegisterCommandHandler(study.GenerateStudyBlockCommand{}, dispatch.CommandHandlerFunc(
		func(_ context.Context, cmd any) (any, error) {
			received = cmd.(study.GenerateStudyBlockCommand)
			return &study.StudyBlock{}, nil
		}))

	req := httptest.NewRequest(http.MethodGet, "/study-block/learner-1?limit=5", nil)
	rec := httptest.NewRecorder()
	newStudyRouter(d).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, received.Limit)
}

func TestGenerateStudyBlockEndpointInvalidLimit(t *testing.T) {
	t.Parallel()

	for _, path := range []string{
		"/study-block/learner-1?limit=abc",
		"/study-block/learner-1?limit=5000", // above the configured maximum
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		newStudyRouter(dispatch.NewDispatcher()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestGenerateStudyBlockEndpointNoWords(t *testing.T) {
	t.Parallel()

	d := dispatch.NewDispatcher()
	d.RegisterCommandHandler(study.GenerateStudyBlockCommand{}, dispatch.CommandHandlerFunc(
		func(context.Context, any) (any, error) {
			return nil, study.ErrNoWordsAvailable
		}))

	req := httptest.NewRequest(http.MethodGet, "/study-block/learner-1", nil)
	rec := httptest.NewRecorder()
	newStudyRouter(d).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No words available")
}

func TestGetProgressEndpoint(t *testing.T) {
	t.Parallel()

	d := dispatch.NewDispatcher()
	d.RegisterQueryHandler(study.GetLearnerProgressQuery{}, dispatch.QueryHandlerFunc(
		func(_ context.Context, query any) (any, error) {
			q := query.(study.GetLearnerProgressQuery)
			return &study.LearnerProgress{
				LearnerID:    q.LearnerID,
				WordsStudied: 12,
				WordsDue:     3,
			}, nil
		}))

	req := httptest.NewRequest(http.MethodGet, "/progress/learner-1", nil)
	rec := httptest.NewRecorder()
	newStudyRouter(d).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp study.LearnerProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "learner-1", resp.LearnerID)
	assert.Equal(t, 12, resp.WordsStudied)
	assert.Equal(t, 3, resp.WordsDue)
}
