package handler

import (
	"fmt"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "taskdeck_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "taskdeck_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "taskdeck_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "taskdeck_projects_created_total %d\n", snap.ProjectsCreated)
	writeMetric(w, "taskdeck_projects_updated_total %d\n", snap.ProjectsUpdated)
	writeMetric(w, "taskdeck_projects_deleted_total %d\n", snap.ProjectsDeleted)

	writeMetric(w, "taskdeck_tasks_created_total %d\n", snap.TasksCreated)
	writeMetric(w, "taskdeck_tasks_updated_total %d\n", snap.TasksUpdated)
	writeMetric(w, "taskdeck_tasks_deleted_total %d\n", snap.TasksDeleted)

	writeMetric(w, "taskdeck_points_cache_hits_total %d\n", snap.PointsCacheHits)
	writeMetric(w, "taskdeck_points_cache_misses_total %d\n", snap.PointsCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
