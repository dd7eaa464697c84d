package metrics

import (
	"errors"
	"time"

	"rc-building-model/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Assessment metrics
	metricAssessments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rcbm",
			Name:      "assessments_total",
			Help:      "Batch assessments run, by outcome",
		},
		[]string{"outcome"},
	)

	metricBuildings = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rcbm",
			Name:      "buildings_assessed_total",
			Help:      "Buildings evaluated in successful assessments",
		},
	)

	metricAssessmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rcbm",
			Name:      "assessment_duration_seconds",
			Help:      "Wall time of a batch assessment",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)

	metricChunks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rcbm",
			Name:      "assessment_chunks",
			Help:      "Chunks a batch was split into",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// Worker metrics
	metricMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rcbm",
			Name:      "worker_messages_total",
			Help:      "Survey batch messages consumed, by outcome",
		},
		[]string{"outcome"},
	)

	metricPointsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rcbm",
			Name:      "influx_points_written_total",
			Help:      "Result points written to InfluxDB",
		},
	)
)

// Outcome classifies an error by its kind for metric labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, model.ErrMissingValue):
		return "missing_value"
	case errors.Is(err, model.ErrValidation):
		return "validation_error"
	default:
		return "error"
	}
}

// RecordAssessment records the outcome of one batch assessment.
func RecordAssessment(buildings, chunks int, elapsed time.Duration, err error) {
	metricAssessments.WithLabelValues(Outcome(err)).Inc()
	metricAssessmentDuration.Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	metricBuildings.Add(float64(buildings))
	metricChunks.Observe(float64(chunks))
}

// RecordMessage records a consumed survey batch message.
func RecordMessage(err error) {
	metricMessages.WithLabelValues(Outcome(err)).Inc()
}

// RecordPointsWritten counts points flushed to InfluxDB.
func RecordPointsWritten(n int) {
	metricPointsWritten.Add(float64(n))
}
