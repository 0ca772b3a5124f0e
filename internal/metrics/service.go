package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StatEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopstats_stat_events_total",
			Help: "The total number of stat events applied to games.",
		}),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopstats_undos_total",
			Help: "The total number of stat events reverted via undo.",
		}),
		GamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopstats_games_created_total",
			Help: "The total number of games created.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoopstats_exports_total",
			Help: "The total number of box score exports, by format.",
		}, []string{"format"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopstats_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopstats_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hoopstats_request_duration_seconds",
			Help:    "The duration of individual HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hoopstats_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StatEvents,
		s.Undos,
		s.GamesCreated,
		s.Exports,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.RequestDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStatEvents() {
	s.StatEvents.Inc()
}

func (s *Service) IncUndos() {
	s.Undos.Inc()
}

func (s *Service) IncGamesCreated() {
	s.GamesCreated.Inc()
}

func (s *Service) IncExports(format string) {
	s.Exports.WithLabelValues(format).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) ObserveRequestDuration(duration float64) {
	s.RequestDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
