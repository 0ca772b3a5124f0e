package slack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/notifier"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/slack-go/slack"
)

// Client posts game summaries to a Slack channel.
type Client struct {
	api       *slack.Client
	channelID string
	metrics   metrics.Metrics
}

// NewClient creates a new Slack client wrapper.
func NewClient(token, channelID string, m metrics.Metrics) *Client {
	return &Client{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   m,
	}
}

// NewClientWithAPI creates a new Slack client with a custom API client. Used for testing.
func NewClientWithAPI(api *slack.Client, channelID string, m metrics.Metrics) *Client {
	return &Client{
		api:       api,
		channelID: channelID,
		metrics:   m,
	}
}

// SendGameSummary formats and posts the final summary to the configured channel.
func (c *Client) SendGameSummary(summary notifier.GameSummary, dryRun bool) error {
	if c.api == nil || c.channelID == "" {
		log.Warn("Slack client or channel ID is not configured. Skipping notification.")
		return errors.New("slack client or channel ID is not configured")
	}

	blocks := formatGameSummary(summary)
	if dryRun {
		log.Info("Dry run mode: Slack notification not sent.", "game", summary.GameName, "blocks", len(blocks))
		return nil
	}

	_, _, err := c.api.PostMessage(c.channelID, slack.MsgOptionBlocks(blocks...))
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "game", summary.GameName)
		c.metrics.IncSlackNotifFailed()
		return err
	}
	c.metrics.IncSlackNotifSent()
	return nil
}

func formatGameSummary(summary notifier.GameSummary) []slack.Block {
	title := summary.GameName
	if title == "" {
		title = "Game summary"
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("🏀 %s", title), true, false)),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Final:* Home %d – Away %d", summary.HomeScore, summary.AwayScore), false, false),
			nil, nil,
		),
	}

	if len(summary.Takeaways) > 0 {
		var sb strings.Builder
		for _, t := range summary.Takeaways {
			sb.WriteString("• " + t + "\n")
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false),
			nil, nil,
		))
	}

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Home leaders*\n"+formatLeaders(summary.HomeLeaders), false, false),
	}
	if summary.DualTeam {
		fields = append(fields,
			slack.NewTextBlockObject(slack.MarkdownType, "*Away leaders*\n"+formatLeaders(summary.AwayLeaders), false, false))
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	return blocks
}

func formatLeaders(l stats.Leaders) string {
	return fmt.Sprintf("PTS: %s (%d)\nREB: %s (%d)\nAST: %s (%d)",
		l.Points.Name, l.Points.Value,
		l.Rebounds.Name, l.Rebounds.Value,
		l.Assists.Name, l.Assists.Value)
}
