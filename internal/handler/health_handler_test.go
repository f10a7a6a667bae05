package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matterdesk/internal/domain"
	"matterdesk/internal/handler"
	"matterdesk/mocks"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error { return p.err }

func decodeHealth(t *testing.T, body []byte) handler.HealthResponse {
	t.Helper()
	var resp handler.HealthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(fakePinger{}, new(mocks.MockLanguageModel))

	w, c := newTestContext(http.MethodGet, "/healthz", nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeHealth(t, w.Body.Bytes()).Status)
}

func TestHealthHandler_Readiness_AllHealthy(t *testing.T) {
	llm := new(mocks.MockLanguageModel)
	llm.On("IsHealthy", mock.Anything).Return(true)
	llm.On("ListModels", mock.Anything).Return([]domain.LLMModel{{Name: "llama3.2:latest", Size: 2019393189}}, nil)
	h := handler.NewHealthHandler(fakePinger{}, llm)

	w, c := newTestContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeHealth(t, w.Body.Bytes())
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["ollama"])
	require.Len(t, resp.Models, 1)
	assert.Equal(t, "llama3.2:latest", resp.Models[0].Name)
	llm.AssertExpectations(t)
}

func TestHealthHandler_Readiness_DatabaseDown(t *testing.T) {
	llm := new(mocks.MockLanguageModel)
	llm.On("IsHealthy", mock.Anything).Return(true)
	llm.On("ListModels", mock.Anything).Return([]domain.LLMModel{}, nil)
	h := handler.NewHealthHandler(fakePinger{err: errors.New("connection refused")}, llm)

	w, c := newTestContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeHealth(t, w.Body.Bytes())
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "database not reachable", resp.Checks["database"])
}

func TestHealthHandler_Readiness_ModelServerDown(t *testing.T) {
	llm := new(mocks.MockLanguageModel)
	llm.On("IsHealthy", mock.Anything).Return(false)
	h := handler.NewHealthHandler(fakePinger{}, llm)

	w, c := newTestContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeHealth(t, w.Body.Bytes())
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.NotEqual(t, "ok", resp.Checks["ollama"])
	llm.AssertNotCalled(t, "ListModels", mock.Anything)
}

func TestHealthHandler_Readiness_ListModelsFails(t *testing.T) {
	llm := new(mocks.MockLanguageModel)
	llm.On("IsHealthy", mock.Anything).Return(true)
	llm.On("ListModels", mock.Anything).Return(nil, errors.New("bad json"))
	h := handler.NewHealthHandler(fakePinger{}, llm)

	w, c := newTestContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeHealth(t, w.Body.Bytes())
	assert.Equal(t, "models could not be listed", resp.Checks["ollama"])
	assert.Empty(t, resp.Models)
}
