package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by method, route template and status code.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests, by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	usersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Name:      "users_created_total",
		Help:      "Users inserted (existing usernames returned by get-or-create are not counted).",
	})
	exercisesLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Name:      "exercises_logged_total",
		Help:      "Exercises persisted.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, usersCreated, exercisesLogged)
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordUserCreated() {
	usersCreated.Inc()
}

func RecordExerciseLogged() {
	exercisesLogged.Inc()
}
