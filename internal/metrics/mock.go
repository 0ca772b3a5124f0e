package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	statEvents       int
	undos            int
	gamesCreated     int
	exports          map[string]int
	slackNotifSent   int
	slackNotifFailed int
	requestDurations []float64
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		exports:          make(map[string]int),
		requestDurations: make([]float64, 0),
	}
}

func (m *Mock) IncStatEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statEvents++
}

func (m *Mock) IncUndos() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undos++
}

func (m *Mock) IncGamesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesCreated++
}

func (m *Mock) IncExports(format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports[format]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) ObserveRequestDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestDurations = append(m.requestDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// StatEvents returns the number of times IncStatEvents was called.
func (m *Mock) StatEvents() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statEvents
}

// Undos returns the number of times IncUndos was called.
func (m *Mock) Undos() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undos
}

// GamesCreated returns the number of times IncGamesCreated was called.
func (m *Mock) GamesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesCreated
}

// ExportCount returns the number of times IncExports was called for a format.
func (m *Mock) ExportCount(format string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exports[format]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
