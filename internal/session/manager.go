package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/courtlog/hoopstats/internal/apperror"
	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/courtlog/hoopstats/internal/tracker"
	"github.com/google/uuid"
)

// NewManager creates a session manager on top of the given store.
func NewManager(store tracker.TrackerStore, m metrics.Metrics) *Manager {
	return &Manager{
		store:    store,
		metrics:  m,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live session for (userID, gameID), creating one on first
// use. Period starts at 1 with Home possession.
func (m *Manager) Session(userID, gameID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(userID, gameID)
	if s, ok := m.sessions[key]; ok {
		return s
	}
	s := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		GameID:     gameID,
		store:      m.store,
		metrics:    m.metrics,
		period:     1,
		possession: stats.TeamHome,
	}
	m.sessions[key] = s
	log.Debug("Created session", "sessionID", s.ID, "userID", userID, "gameID", gameID)
	return s
}

// CreateGame creates a game and seeds its default roster: five "Player N" on
// the home side, plus five "Opponent N" away when dual-team mode is on.
func (m *Manager) CreateGame(userID int64, name string, dual bool) (int64, error) {
	gameID, err := m.store.CreateGame(userID, name)
	if err != nil {
		return 0, err
	}

	entries := make([]tracker.RosterEntry, 0, 2*defaultRosterSize)
	for i := 1; i <= defaultRosterSize; i++ {
		entries = append(entries, tracker.RosterEntry{
			Name: fmt.Sprintf("Player %d", i),
			Team: stats.TeamHome,
		})
	}
	if dual {
		for i := 1; i <= defaultRosterSize; i++ {
			entries = append(entries, tracker.RosterEntry{
				Name: fmt.Sprintf("Opponent %d", i),
				Team: stats.TeamAway,
			})
		}
	}
	if err := m.store.SetRoster(gameID, entries, stats.AllKeys); err != nil {
		return 0, err
	}

	m.metrics.IncGamesCreated()
	log.Info("Created game with default roster", "gameID", gameID, "userID", userID, "dual", dual)
	return gameID, nil
}

// DeleteGame removes the game from the store and drops any live session for it.
func (m *Manager) DeleteGame(userID, gameID int64) error {
	if err := m.store.DeleteGame(userID, gameID); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, sessionKey(userID, gameID))
	m.mu.Unlock()
	return nil
}

// UpdateRoster parses the free-text rosters and reconciles the stored player
// set. An edit leaving the roster empty (or either side, in dual mode) is a
// validation error and never reaches the store.
func (m *Manager) UpdateRoster(gameID int64, homeText, awayText string, dual bool) error {
	home := ParseRoster(homeText)
	if len(home) == 0 {
		return apperror.ValidationFailed("roster", "home roster cannot be empty")
	}

	entries := make([]tracker.RosterEntry, 0, len(home))
	for _, name := range home {
		entries = append(entries, tracker.RosterEntry{Name: name, Team: stats.TeamHome})
	}

	if dual {
		away := ParseRoster(awayText)
		if len(away) == 0 {
			return apperror.ValidationFailed("roster", "away roster cannot be empty")
		}
		for _, name := range away {
			entries = append(entries, tracker.RosterEntry{Name: name, Team: stats.TeamAway})
		}
	}

	return m.store.SetRoster(gameID, entries, stats.AllKeys)
}

// ParseRoster splits free-form roster text into names, one per line. Blank
// lines and surrounding whitespace are dropped.
func ParseRoster(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func sessionKey(userID, gameID int64) string {
	return fmt.Sprintf("%d:%d", userID, gameID)
}
