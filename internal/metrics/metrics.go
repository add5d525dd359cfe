// Package metrics holds the Prometheus collectors of the progress service.
package metrics

import (
	"context"

	"github.com/learnpath/backend/internal/progress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for progress records reaching COMPLETED
	completions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_completions_total",
			Help: "Total number of progress records moved to COMPLETED",
		},
		[]string{"level"}, // level: content/unit/module
	)

	// Counter for points credited to module progress
	pointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "progress_points_awarded_total",
			Help: "Total number of points credited to learners",
		},
	)

	// Histogram for learner request latency
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "progress_request_duration_seconds",
			Help:    "Time spent processing learner progress requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Counter for background tasks processed by the worker
	tasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_tasks_processed_total",
			Help: "Total number of reconciliation tasks processed",
		},
		[]string{"type", "status"}, // status: success/failure
	)
)

// levels maps cascade events to the "level" label
var levels = map[progress.EventType]string{
	progress.EventContentCompleted: "content",
	progress.EventUnitCompleted:    "unit",
	progress.EventModuleCompleted:  "module",
}

// EventSource is anything cascade events can be observed on, such as *progress.Session
type EventSource interface {
	OnEvent(t progress.EventType, h progress.EventHandler)
}

// Observe subscribes the completion counters to the cascade events of "src"
func Observe(src EventSource) {
	for eventType, level := range levels {
		level := level
		src.OnEvent(eventType, func(ctx context.Context, ev progress.Event) error {
			completions.WithLabelValues(level).Inc()
			if ev.Type == progress.EventContentCompleted && ev.Points > 0 {
				pointsAwarded.Add(float64(ev.Points))
			}
			return nil
		})
	}
}

// ObserveRequest starts timing a learner request; call the returned function when it is done
func ObserveRequest(operation string) func() {
	timer := prometheus.NewTimer(requestDuration.WithLabelValues(operation))
	return func() { timer.ObserveDuration() }
}

// TaskProcessed counts a processed background task
func TaskProcessed(taskType string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	tasksProcessed.WithLabelValues(taskType, status).Inc()
}
