package tracker

import (
	"sync"

	"github.com/courtlog/hoopstats/internal/stats"
)

// MockStore is a mock implementation of the TrackerStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetOrCreateUserFunc func(email, name string) (*User, error)
	SetUserProFunc      func(userID int64, pro bool) error
	IsUserProFunc       func(userID int64) (bool, error)
	ListGamesFunc       func(userID int64) ([]Game, error)
	CreateGameFunc      func(userID int64, name string) (int64, error)
	DeleteGameFunc      func(userID, gameID int64) error
	SetRosterFunc       func(gameID int64, entries []RosterEntry, keys []stats.Key) error
	LoadGameFunc        func(gameID int64, keys []stats.Key) (*GameState, error)
	ApplyChangeFunc     func(gameID, playerID int64, delta stats.Delta, direction int) error

	// Call records
	SetUserProCalls []struct {
		UserID int64
		Pro    bool
	}
	CreateGameCalls []struct {
		UserID int64
		Name   string
	}
	DeleteGameCalls []struct {
		UserID int64
		GameID int64
	}
	SetRosterCalls []struct {
		GameID  int64
		Entries []RosterEntry
	}
	ApplyChangeCalls []struct {
		GameID    int64
		PlayerID  int64
		Delta     stats.Delta
		Direction int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetOrCreateUser(email, name string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetOrCreateUserFunc != nil {
		return m.GetOrCreateUserFunc(email, name)
	}
	return &User{ID: 1, Email: email, Name: name}, nil
}

func (m *MockStore) SetUserPro(userID int64, pro bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetUserProCalls = append(m.SetUserProCalls, struct {
		UserID int64
		Pro    bool
	}{userID, pro})
	if m.SetUserProFunc != nil {
		return m.SetUserProFunc(userID, pro)
	}
	return nil
}

func (m *MockStore) IsUserPro(userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsUserProFunc != nil {
		return m.IsUserProFunc(userID)
	}
	return false, nil
}

func (m *MockStore) ListGames(userID int64) ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) CreateGame(userID int64, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateGameCalls = append(m.CreateGameCalls, struct {
		UserID int64
		Name   string
	}{userID, name})
	if m.CreateGameFunc != nil {
		return m.CreateGameFunc(userID, name)
	}
	return 1, nil
}

func (m *MockStore) DeleteGame(userID, gameID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteGameCalls = append(m.DeleteGameCalls, struct {
		UserID int64
		GameID int64
	}{userID, gameID})
	if m.DeleteGameFunc != nil {
		return m.DeleteGameFunc(userID, gameID)
	}
	return nil
}

func (m *MockStore) SetRoster(gameID int64, entries []RosterEntry, keys []stats.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetRosterCalls = append(m.SetRosterCalls, struct {
		GameID  int64
		Entries []RosterEntry
	}{gameID, entries})
	if m.SetRosterFunc != nil {
		return m.SetRosterFunc(gameID, entries, keys)
	}
	return nil
}

func (m *MockStore) LoadGame(gameID int64, keys []stats.Key) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadGameFunc != nil {
		return m.LoadGameFunc(gameID, keys)
	}
	return &GameState{IDByName: map[string]int64{}, Lines: map[string]stats.Line{}}, nil
}

func (m *MockStore) ApplyChange(gameID, playerID int64, delta stats.Delta, direction int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyChangeCalls = append(m.ApplyChangeCalls, struct {
		GameID    int64
		PlayerID  int64
		Delta     stats.Delta
		Direction int
	}{gameID, playerID, delta, direction})
	if m.ApplyChangeFunc != nil {
		return m.ApplyChangeFunc(gameID, playerID, delta, direction)
	}
	return nil
}
