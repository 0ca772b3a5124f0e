package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendGameSummaryFunc  func(summary GameSummary, dryRun bool) error
	SendGameSummaryCalls []struct {
		Summary GameSummary
		DryRun  bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendGameSummary(summary GameSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGameSummaryCalls = append(m.SendGameSummaryCalls, struct {
		Summary GameSummary
		DryRun  bool
	}{summary, dryRun})
	if m.SendGameSummaryFunc != nil {
		return m.SendGameSummaryFunc(summary, dryRun)
	}
	return nil
}
