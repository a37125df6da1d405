package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cv-backend/internal/domain"
	"cv-backend/internal/handlers"
	"cv-backend/internal/repository/memory"
	"cv-backend/internal/service/cv"
	"cv-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter() (http.Handler, *observability.Collector) {
	collector := observability.NewCollector("cv_router_test")
	store := memory.NewStore(domain.CV{"id": "portfolio1", "name": "Test Portfolio", "views": 10})
	svc := cv.NewViewService(store, nil, observability.NewTracer("cv-api", false), collector, zap.NewNop(), false)
	h := handlers.NewCVHandler(svc, collector, zap.NewNop())
	return NewRouter(h, collector.Handler(), zap.NewNop()), collector
}

func TestRouter(t *testing.T) {
	router, _ := newTestRouter()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "health", method: http.MethodGet, target: "/healthz", wantStatus: http.StatusOK, wantBody: `{"status":"healthy"}`},
		{name: "cv", method: http.MethodGet, target: "/cv?id=portfolio1", wantStatus: http.StatusOK, wantBody: `{"id":"portfolio1","name":"Test Portfolio","views":11}`},
		{name: "missing id", method: http.MethodGet, target: "/cv", wantStatus: http.StatusBadRequest},
		{name: "unknown cv", method: http.MethodGet, target: "/cv?id=nope", wantStatus: http.StatusNotFound},
		{name: "plain options", method: http.MethodOptions, target: "/cv", wantStatus: http.StatusOK, wantBody: `{}`},
		{name: "unknown route", method: http.MethodGet, target: "/nodes", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPost, target: "/cv?id=portfolio1", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_Preflight(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/cv", nil)
	req.Header.Set("Origin", "https://portfolio.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/cv?id=portfolio1", nil).WithContext(context.Background())
	router.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cv_router_test_cv_views_total{cv_id="portfolio1"} 1`)
}
