package slack

import (
	"testing"

	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/notifier"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryFixture() notifier.GameSummary {
	return notifier.GameSummary{
		GameName:  "Friday scrimmage",
		HomeScore: 54,
		AwayScore: 47,
		Takeaways: []string{"Home +4 REB advantage", "Home forced 2 more TOV"},
		HomeLeaders: stats.Leaders{
			Points:   stats.Leader{Name: "Alice", Value: 21},
			Rebounds: stats.Leader{Name: "Bob", Value: 9},
			Assists:  stats.Leader{Name: "Cara", Value: 6},
		},
		DualTeam: true,
	}
}

func TestFormatGameSummary(t *testing.T) {
	blocks := formatGameSummary(summaryFixture())

	// Header, scoreline, takeaways, leaders.
	require.Len(t, blocks, 4)

	header, ok := blocks[0].(*slack.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Friday scrimmage")

	score, ok := blocks[1].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, score.Text.Text, "Home 54 – Away 47")

	leaders, ok := blocks[3].(*slack.SectionBlock)
	require.True(t, ok)
	require.Len(t, leaders.Fields, 2)
	assert.Contains(t, leaders.Fields[0].Text, "Alice (21)")
}

func TestFormatGameSummary_SingleTeam(t *testing.T) {
	summary := summaryFixture()
	summary.DualTeam = false
	summary.Takeaways = nil

	blocks := formatGameSummary(summary)
	require.Len(t, blocks, 3)

	leaders, ok := blocks[2].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Len(t, leaders.Fields, 1)
}

func TestSendGameSummary_DryRun(t *testing.T) {
	m := metrics.NewMock()
	c := NewClientWithAPI(slack.New("dummy-token"), "C123", m)

	err := c.SendGameSummary(summaryFixture(), true)
	require.NoError(t, err)
	assert.Zero(t, m.SlackNotifSent(), "dry run must not count as sent")
}

func TestSendGameSummary_Unconfigured(t *testing.T) {
	m := metrics.NewMock()
	c := NewClientWithAPI(nil, "", m)

	err := c.SendGameSummary(summaryFixture(), false)
	require.Error(t, err)
}
