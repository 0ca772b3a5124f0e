package tracker

import (
	"database/sql"
	"sync"

	"github.com/courtlog/hoopstats/internal/stats"
)

// store handles all database operations for the tracker.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// User is an account resolved from a verified email.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsPro     bool   `json:"is_pro"`
	CreatedAt string `json:"created_at"`
}

// Game is one tracked game, owned by exactly one user.
type Game struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Player belongs to one game and is uniquely named within it.
type Player struct {
	ID     int64      `json:"id"`
	GameID int64      `json:"game_id"`
	Name   string     `json:"name"`
	Team   stats.Team `json:"team"`
}

// RosterEntry is the desired state of one roster slot when reconciling.
type RosterEntry struct {
	Name string     `json:"name"`
	Team stats.Team `json:"team"`
}

// GameState is a full snapshot of a game's roster and counters.
type GameState struct {
	Roster   []Player              `json:"roster"` // insertion order
	IDByName map[string]int64      `json:"-"`
	Lines    map[string]stats.Line `json:"lines"` // keyed by player name
}

// HomeRoster returns the names of the home side, in roster order.
func (g *GameState) HomeRoster() []string {
	return g.rosterNames(stats.TeamHome)
}

// AwayRoster returns the names of the away side, in roster order.
func (g *GameState) AwayRoster() []string {
	return g.rosterNames(stats.TeamAway)
}

func (g *GameState) rosterNames(team stats.Team) []string {
	var names []string
	for _, p := range g.Roster {
		if p.Team == team {
			names = append(names, p.Name)
		}
	}
	return names
}

// DualTeam reports whether both sides have at least one player.
func (g *GameState) DualTeam() bool {
	return len(g.HomeRoster()) > 0 && len(g.AwayRoster()) > 0
}

// PlayerByID resolves a roster member by id.
func (g *GameState) PlayerByID(id int64) (Player, bool) {
	for _, p := range g.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
