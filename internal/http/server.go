package http

import (
	"net/http"

	"github.com/courtlog/hoopstats/internal/config"
	"github.com/courtlog/hoopstats/internal/identity"
	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/notifier"
	"github.com/courtlog/hoopstats/internal/session"
	"github.com/courtlog/hoopstats/internal/tracker"
)

func NewServer(store tracker.TrackerStore, sessions *session.Manager, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, idp identity.Provider, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Sessions:       sessions,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Identity:       idp,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("POST /login", Chain(s.LoginHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /auth/google/login", Chain(s.GoogleLoginHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /auth/google/callback", Chain(s.GoogleCallbackHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /games", Chain(s.ListGamesHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("POST /games", Chain(s.CreateGameHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("DELETE /games/{id}", Chain(s.DeleteGameHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("PUT /games/{id}/roster", Chain(s.UpdateRosterHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("POST /games/{id}/actions", Chain(s.ActionHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("POST /games/{id}/undo", Chain(s.UndoHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /games/{id}/summary", Chain(s.SummaryHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /games/{id}/boxscore", Chain(s.BoxScoreHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /games/{id}/log", Chain(s.LogHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /games/{id}/players/{playerID}", Chain(s.PlayerHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /games/{id}/export/csv", Chain(s.ExportCSVHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /games/{id}/export/pdf", Chain(s.ExportPDFHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("POST /games/{id}/notify", Chain(s.NotifyHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("POST /billing/confirm", Chain(s.BillingConfirmHandler(), paramsMiddleware, s.observe))
	s.Router.Handle("GET /users/{id}/pro", Chain(s.ProStatusHandler(), paramsMiddleware, s.observe))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
