package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/taskdeck/taskdeck/internal/metrics"
)

func TestMetricsHandler_Exposition(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserRegistered()
	recorder.IncUserLogin("success")
	recorder.IncUserLogin("failed")
	recorder.IncTaskCreated()
	recorder.IncTaskCreated()
	recorder.IncPointsCacheHit()

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metricsz", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	expected := []string{
		"taskdeck_users_registered_total 1",
		`taskdeck_logins_total{status="success"} 1`,
		`taskdeck_logins_total{status="failed"} 1`,
		"taskdeck_tasks_created_total 2",
		"taskdeck_points_cache_hits_total 1",
		"taskdeck_points_cache_misses_total 0",
	}
	for _, line := range expected {
		if !strings.Contains(body, line) {
			t.Errorf("missing metric line %q in output:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metricsz", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
