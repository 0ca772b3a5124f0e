package notifier

import "github.com/courtlog/hoopstats/internal/stats"

// GameSummary is the final-whistle summary posted to the configured channel.
type GameSummary struct {
	GameName    string        `json:"game_name"`
	HomeScore   int           `json:"home_score"`
	AwayScore   int           `json:"away_score"`
	Takeaways   []string      `json:"takeaways"`
	HomeLeaders stats.Leaders `json:"home_leaders"`
	AwayLeaders stats.Leaders `json:"away_leaders"`
	DualTeam    bool          `json:"dual_team"`
}

// Notifier defines the interface for sending game notifications.
type Notifier interface {
	SendGameSummary(summary GameSummary, dryRun bool) error
}

// Noop discards summaries. Used when no channel is configured.
type Noop struct{}

func (Noop) SendGameSummary(GameSummary, bool) error { return nil }
