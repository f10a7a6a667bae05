package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	_ "matterdesk/docs"
	"matterdesk/internal/domain"
	"matterdesk/internal/handler"
	"matterdesk/internal/router"
	"matterdesk/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type fixture struct {
	engine   *gin.Engine
	contract *mocks.MockContractService
	matter   *mocks.MockMatterService
	lawyer   *mocks.MockLawyerService
	stats    *mocks.MockStatsService
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		contract: new(mocks.MockContractService),
		matter:   new(mocks.MockMatterService),
		lawyer:   new(mocks.MockLawyerService),
		stats:    new(mocks.MockStatsService),
	}
	f.engine = router.Setup(router.Handlers{
		Health:   handler.NewHealthHandler(okPinger{}, new(mocks.MockLanguageModel)),
		Contract: handler.NewContractHandler(f.contract, 1<<20),
		Matter:   handler.NewMatterHandler(f.matter),
		Lawyer:   handler.NewLawyerHandler(f.lawyer),
		Stats:    handler.NewStatsHandler(f.stats),
	}, []string{"http://localhost:3000"})
	return f
}

func (f *fixture) do(method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Healthz(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_StaticMatterRoutesWinOverID(t *testing.T) {
	f := newFixture()
	f.matter.On("Count", mock.Anything).Return(3, nil)

	w := f.do(http.MethodGet, "/api/v1/matters/total", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"total":3}}`, w.Body.String())
	f.matter.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRouter_MatterByID(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.matter.On("GetByID", mock.Anything, id).Return(nil, domain.ErrMatterNotFound)

	w := f.do(http.MethodGet, "/api/v1/matters/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.matter.AssertExpectations(t)
}

func TestRouter_LawyerMatters(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.lawyer.On("Matters", mock.Anything, id).Return([]domain.LegalMatter{}, nil)

	w := f.do(http.MethodGet, "/api/v1/lawyers/"+id.String()+"/matters", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	f.lawyer.AssertExpectations(t)
}

func TestRouter_Stats(t *testing.T) {
	f := newFixture()
	f.stats.On("GetStats", mock.Anything).Return(&domain.Stats{TotalMatters: 1}, nil)

	w := f.do(http.MethodGet, "/api/v1/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Preflight(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodOptions, "/api/v1/contracts/extract-text", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"POST"},
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerDoc(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/swagger/doc.json", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/contracts/extract-file"`)
	assert.Contains(t, w.Body.String(), `"basePath": "/api/v1"`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
