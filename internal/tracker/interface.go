package tracker

import "github.com/courtlog/hoopstats/internal/stats"

// TrackerStore defines the interface for the durable stat-tracking data.
type TrackerStore interface {
	GetOrCreateUser(email, name string) (*User, error)
	SetUserPro(userID int64, pro bool) error
	IsUserPro(userID int64) (bool, error)
	ListGames(userID int64) ([]Game, error)
	CreateGame(userID int64, name string) (int64, error)
	DeleteGame(userID, gameID int64) error
	SetRoster(gameID int64, entries []RosterEntry, keys []stats.Key) error
	LoadGame(gameID int64, keys []stats.Key) (*GameState, error)
	ApplyChange(gameID, playerID int64, delta stats.Delta, direction int) error
}
