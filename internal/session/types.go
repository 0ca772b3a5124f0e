package session

import (
	"sync"
	"time"

	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/courtlog/hoopstats/internal/tracker"
)

const (
	// maxLogEvents bounds the in-memory play-by-play log.
	maxLogEvents = 500
	// maxUndoDepth bounds the undo stack.
	maxUndoDepth = 200
	// defaultRosterSize is the number of players seeded per side on game creation.
	defaultRosterSize = 5
)

// Event is a single recorded stat change. It carries both the display fields
// (label, points, period) and the reversible delta, so the play-by-play log and
// the undo stack always describe the same change.
type Event struct {
	ID        string      `json:"id"`
	At        time.Time   `json:"at"`
	Period    int         `json:"period"`
	Team      stats.Team  `json:"team"`
	PlayerID  int64       `json:"player_id"`
	Player    string      `json:"player"`
	Label     string      `json:"label"`
	Points    int         `json:"points"`
	Delta     stats.Delta `json:"delta"`
	Direction int         `json:"direction"`
	Logged    bool        `json:"logged"`
}

// Session holds the live tracking state for one (user, game) pair: period,
// possession, the event log and the undo stack. All durable counter state lives
// in the store; session state is lost on restart.
type Session struct {
	ID     string
	UserID int64
	GameID int64

	mu         sync.Mutex
	store      tracker.TrackerStore
	metrics    metrics.Metrics
	period     int
	possession stats.Team
	selected   int64
	events     []Event
	undo       []Event
}

// Manager hands out sessions keyed by (user, game) and owns the game lifecycle
// operations that touch both the store and session state.
type Manager struct {
	mu       sync.Mutex
	store    tracker.TrackerStore
	metrics  metrics.Metrics
	sessions map[string]*Session
}
