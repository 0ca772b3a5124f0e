package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	StatEvents         prometheus.Counter
	Undos              prometheus.Counter
	GamesCreated       prometheus.Counter
	Exports            *prometheus.CounterVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	RequestDuration    prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}
