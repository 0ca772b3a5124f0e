package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/courtlog/hoopstats/internal/apperror"
	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/courtlog/hoopstats/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) (*Manager, *tracker.MockStore, *metrics.Mock) {
	t.Helper()
	store := tracker.NewMock()
	m := metrics.NewMock()
	return NewManager(store, m), store, m
}

func TestManagerSession(t *testing.T) {
	mgr, _, _ := setupManager(t)

	s1 := mgr.Session(1, 10)
	s2 := mgr.Session(1, 10)
	s3 := mgr.Session(1, 11)

	assert.Same(t, s1, s2, "same (user, game) pair must share a session")
	assert.NotSame(t, s1, s3)
	assert.NotEmpty(t, s1.ID)
	assert.Equal(t, 1, s1.Period())
	assert.Equal(t, stats.TeamHome, s1.Possession())
}

func TestManagerCreateGame(t *testing.T) {
	t.Run("single team seeds five home players", func(t *testing.T) {
		mgr, store, m := setupManager(t)

		gameID, err := mgr.CreateGame(1, "Friday scrimmage", false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gameID)

		require.Len(t, store.SetRosterCalls, 1)
		entries := store.SetRosterCalls[0].Entries
		require.Len(t, entries, 5)
		assert.Equal(t, "Player 1", entries[0].Name)
		assert.Equal(t, stats.TeamHome, entries[0].Team)
		assert.Equal(t, 1, m.GamesCreated())
	})

	t.Run("dual team adds five opponents", func(t *testing.T) {
		mgr, store, _ := setupManager(t)

		_, err := mgr.CreateGame(1, "League game", true)
		require.NoError(t, err)

		entries := store.SetRosterCalls[0].Entries
		require.Len(t, entries, 10)
		assert.Equal(t, "Opponent 1", entries[5].Name)
		assert.Equal(t, stats.TeamAway, entries[5].Team)
	})

	t.Run("store error surfaces", func(t *testing.T) {
		mgr, store, m := setupManager(t)
		store.CreateGameFunc = func(userID int64, name string) (int64, error) {
			return 0, errors.New("disk full")
		}

		_, err := mgr.CreateGame(1, "Doomed", false)
		require.Error(t, err)
		assert.Zero(t, m.GamesCreated())
	})
}

func TestManagerDeleteGame(t *testing.T) {
	mgr, store, _ := setupManager(t)

	s := mgr.Session(1, 10)
	require.NoError(t, mgr.DeleteGame(1, 10))
	require.Len(t, store.DeleteGameCalls, 1)

	assert.NotSame(t, s, mgr.Session(1, 10), "session must be dropped with the game")
}

func TestManagerUpdateRoster(t *testing.T) {
	t.Run("parses lines and drops blanks", func(t *testing.T) {
		mgr, store, _ := setupManager(t)

		err := mgr.UpdateRoster(10, "  Alice  \n\nBob\n", "Cara\n", true)
		require.NoError(t, err)

		require.Len(t, store.SetRosterCalls, 1)
		entries := store.SetRosterCalls[0].Entries
		require.Len(t, entries, 3)
		assert.Equal(t, tracker.RosterEntry{Name: "Alice", Team: stats.TeamHome}, entries[0])
		assert.Equal(t, tracker.RosterEntry{Name: "Bob", Team: stats.TeamHome}, entries[1])
		assert.Equal(t, tracker.RosterEntry{Name: "Cara", Team: stats.TeamAway}, entries[2])
	})

	t.Run("empty home roster rejected", func(t *testing.T) {
		mgr, store, _ := setupManager(t)

		err := mgr.UpdateRoster(10, "  \n \n", "Cara", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Empty(t, store.SetRosterCalls, "validation failures must not reach the store")
	})

	t.Run("empty away side rejected in dual mode only", func(t *testing.T) {
		mgr, store, _ := setupManager(t)

		err := mgr.UpdateRoster(10, "Alice", "", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)

		require.NoError(t, mgr.UpdateRoster(10, "Alice", "", false))
		require.Len(t, store.SetRosterCalls, 1)
	})
}

func TestSessionApply(t *testing.T) {
	mgr, store, m := setupManager(t)
	s := mgr.Session(1, 10)

	ev, err := s.Apply(7, "Alice", stats.TeamHome, stats.Delta{stats.Key2PM: 1, stats.Key2PA: 1}, 1)
	require.NoError(t, err)

	assert.Equal(t, "2PM + 2PA", ev.Label)
	assert.Equal(t, 2, ev.Points)
	assert.Equal(t, 1, ev.Period)
	assert.True(t, ev.Logged)

	require.Len(t, store.ApplyChangeCalls, 1)
	assert.Equal(t, int64(10), store.ApplyChangeCalls[0].GameID)
	assert.Equal(t, 1, store.ApplyChangeCalls[0].Direction)

	assert.Len(t, s.Log(), 1)
	assert.True(t, s.CanUndo())
	assert.Equal(t, 1, m.StatEvents())

	t.Run("minus direction is undoable but unlogged", func(t *testing.T) {
		ev, err := s.Apply(7, "Alice", stats.TeamHome, stats.Delta{stats.KeyTOV: 1}, -1)
		require.NoError(t, err)
		assert.False(t, ev.Logged)
		assert.Len(t, s.Log(), 1)
		assert.True(t, s.CanUndo())
	})

	t.Run("store failure produces no event", func(t *testing.T) {
		store.ApplyChangeFunc = func(gameID, playerID int64, delta stats.Delta, direction int) error {
			return errors.New("db locked")
		}
		defer func() { store.ApplyChangeFunc = nil }()

		_, err := s.Apply(7, "Alice", stats.TeamHome, stats.Delta{stats.KeyAST: 1}, 1)
		require.Error(t, err)
		assert.Len(t, s.Log(), 1)
	})
}

func TestSessionUndo(t *testing.T) {
	mgr, store, m := setupManager(t)
	s := mgr.Session(1, 10)

	t.Run("empty stack is a no-op", func(t *testing.T) {
		ev, err := s.Undo()
		require.NoError(t, err)
		assert.Nil(t, ev)
	})

	delta := stats.Delta{stats.Key3PM: 1, stats.Key3PA: 1}
	_, err := s.Apply(7, "Alice", stats.TeamHome, delta, 1)
	require.NoError(t, err)

	t.Run("reverts the latest change and its log entry", func(t *testing.T) {
		ev, err := s.Undo()
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, delta, ev.Delta)

		// The inverse write negates the original direction.
		last := store.ApplyChangeCalls[len(store.ApplyChangeCalls)-1]
		assert.Equal(t, -1, last.Direction)
		assert.Equal(t, delta, last.Delta)

		assert.Empty(t, s.Log())
		assert.False(t, s.CanUndo())
		assert.Equal(t, 1, m.Undos())
	})

	t.Run("undoing a minus re-adds the counter", func(t *testing.T) {
		_, err := s.Apply(7, "Alice", stats.TeamHome, stats.Delta{stats.KeyPF: 1}, -1)
		require.NoError(t, err)

		ev, err := s.Undo()
		require.NoError(t, err)
		require.NotNil(t, ev)

		last := store.ApplyChangeCalls[len(store.ApplyChangeCalls)-1]
		assert.Equal(t, 1, last.Direction)
		assert.Empty(t, s.Log(), "unlogged events leave no log entry to remove")
	})

	t.Run("LIFO order", func(t *testing.T) {
		_, err := s.Apply(7, "Alice", stats.TeamHome, stats.Delta{stats.Key2PM: 1, stats.Key2PA: 1}, 1)
		require.NoError(t, err)
		_, err = s.Apply(8, "Bob", stats.TeamHome, stats.Delta{stats.KeyAST: 1}, 1)
		require.NoError(t, err)

		ev, err := s.Undo()
		require.NoError(t, err)
		assert.Equal(t, "Bob", ev.Player)
		ev, err = s.Undo()
		require.NoError(t, err)
		assert.Equal(t, "Alice", ev.Player)
	})
}

func TestSessionCaps(t *testing.T) {
	mgr, _, _ := setupManager(t)
	s := mgr.Session(1, 10)

	for i := 0; i < maxLogEvents+50; i++ {
		_, err := s.Apply(7, fmt.Sprintf("P%d", i), stats.TeamHome, stats.Delta{stats.KeyAST: 1}, 1)
		require.NoError(t, err)
	}

	events := s.Log()
	assert.Len(t, events, maxLogEvents)
	// Oldest entries are evicted first.
	assert.Equal(t, "P50", events[0].Player)

	s.mu.Lock()
	undoDepth := len(s.undo)
	s.mu.Unlock()
	assert.Equal(t, maxUndoDepth, undoDepth)
}

func TestSessionRunAndPlays(t *testing.T) {
	mgr, _, _ := setupManager(t)
	s := mgr.Session(1, 10)

	plays := []struct {
		team  stats.Team
		delta stats.Delta
	}{
		{stats.TeamHome, stats.Delta{stats.Key2PM: 1, stats.Key2PA: 1}},
		{stats.TeamAway, stats.Delta{stats.Key3PM: 1, stats.Key3PA: 1}},
		{stats.TeamHome, stats.Delta{stats.KeyDREB: 1}},
		{stats.TeamHome, stats.Delta{stats.Key3PM: 1, stats.Key3PA: 1}},
	}
	for _, p := range plays {
		_, err := s.Apply(7, "Alice", p.team, p.delta, 1)
		require.NoError(t, err)
	}

	assert.Equal(t, 5, s.Run(stats.TeamHome, 3))
	assert.Equal(t, 3, s.Run(stats.TeamAway, 3))

	recent := s.RecentPlays(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "3PM + 3PA", recent[0].Label)
	assert.Equal(t, "DREB +1", recent[1].Label)
}

func TestSessionPeriodAndPossession(t *testing.T) {
	mgr, _, _ := setupManager(t)
	s := mgr.Session(1, 10)

	s.SetPeriod(3)
	assert.Equal(t, 3, s.Period())
	s.SetPeriod(0)
	assert.Equal(t, 3, s.Period(), "periods below 1 are ignored")

	assert.Equal(t, stats.TeamAway, s.TogglePossession())
	assert.Equal(t, stats.TeamHome, s.TogglePossession())
}

func TestSessionSelectPlayer(t *testing.T) {
	mgr, _, _ := setupManager(t)
	s := mgr.Session(1, 10)

	assert.Zero(t, s.SelectedPlayer())
	s.SelectPlayer(7)
	assert.Equal(t, int64(7), s.SelectedPlayer())
}
