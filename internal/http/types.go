package http

import (
	"net/http"

	"github.com/courtlog/hoopstats/internal/config"
	"github.com/courtlog/hoopstats/internal/identity"
	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/notifier"
	"github.com/courtlog/hoopstats/internal/session"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/courtlog/hoopstats/internal/tracker"
)

type Server struct {
	Store          tracker.TrackerStore
	Sessions       *session.Manager
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Identity       identity.Provider
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createGameRequest struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	DualTeam bool   `json:"dual_team"`
}

type rosterRequest struct {
	Home     string `json:"home"`
	Away     string `json:"away"`
	DualTeam bool   `json:"dual_team"`
}

type actionRequest struct {
	UserID    int64       `json:"user_id"`
	PlayerID  int64       `json:"player_id"`
	Delta     stats.Delta `json:"delta"`
	Direction int         `json:"direction"`
}

type undoRequest struct {
	UserID int64 `json:"user_id"`
}

type billingRequest struct {
	UserID int64 `json:"user_id"`
}

type undoResponse struct {
	Undone  *session.Event `json:"undone"`
	CanUndo bool           `json:"can_undo"`
}

type summaryResponse struct {
	GameID     int64           `json:"game_id"`
	DualTeam   bool            `json:"dual_team"`
	HomeScore  int             `json:"home_score"`
	AwayScore  int             `json:"away_score"`
	Period     int             `json:"period"`
	Possession stats.Team      `json:"possession"`
	HomeRun    int             `json:"home_run"`
	AwayRun    int             `json:"away_run"`
	Takeaways  []string        `json:"takeaways"`
	HomeLead   stats.Leaders   `json:"home_leaders"`
	AwayLead   stats.Leaders   `json:"away_leaders"`
	Recent     []session.Event `json:"recent_plays"`
	Selected   int64           `json:"selected_player_id,omitempty"`
	CanUndo    bool            `json:"can_undo"`
}

type boxScoreResponse struct {
	GameID   int64             `json:"game_id"`
	DualTeam bool              `json:"dual_team"`
	Columns  []string          `json:"columns"`
	Home     []stats.BoxRow    `json:"home"`
	Away     []stats.BoxRow    `json:"away,omitempty"`
	Totals   []stats.TotalsRow `json:"totals"`
}

type playerResponse struct {
	Player  tracker.Player  `json:"player"`
	Line    stats.Line      `json:"line"`
	Box     stats.BoxRow    `json:"box"`
	Recent  []session.Event `json:"recent"`
	EffFG   float64         `json:"efg_pct"`
	AstTov  float64         `json:"ast_to_tov"`
	Points  int             `json:"points"`
	Rebound int             `json:"rebounds"`
}
