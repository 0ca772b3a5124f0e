package stats

import (
	"fmt"
	"math"
)

// Points scores a line: twos, threes and free throws.
func Points(l Line) int {
	return 2*l.TwoPM + 3*l.ThreePM + l.FTM
}

func FieldGoalsMade(l Line) int {
	return l.TwoPM + l.ThreePM
}

func FieldGoalsAttempted(l Line) int {
	return l.TwoPA + l.ThreePA
}

func Rebounds(l Line) int {
	return l.OffReb + l.DefReb
}

// Percentage returns made/attempted as a percentage rounded to one decimal.
// Midpoint ties round up (1/16 is 6.3, not 6.2). Zero attempts report 0.0
// rather than an error.
func Percentage(made, attempted int) float64 {
	if attempted == 0 {
		return 0.0
	}
	return math.Round(float64(made)/float64(attempted)*1000) / 10
}

// EffectiveFieldGoalPct weights threes at 1.5 field goals: (FGM + 0.5*3PM) / FGA.
func EffectiveFieldGoalPct(l Line) float64 {
	fga := FieldGoalsAttempted(l)
	if fga == 0 {
		return 0.0
	}
	eff := float64(FieldGoalsMade(l)) + 0.5*float64(l.ThreePM)
	return math.Round(eff/float64(fga)*1000) / 10
}

// AssistTurnoverRatio returns AST/TOV rounded to two decimals. With zero
// turnovers the assist count itself is reported.
func AssistTurnoverRatio(l Line) float64 {
	if l.Turnovers == 0 {
		return float64(l.Assists)
	}
	return math.Round(float64(l.Assists)/float64(l.Turnovers)*100) / 100
}

// TeamTotals sums every counter across the roster. Players missing from lines
// contribute zero.
func TeamTotals(roster []string, lines map[string]Line) Line {
	var total Line
	for _, name := range roster {
		l := lines[name]
		for _, k := range AllKeys {
			total.Add(k, l.Get(k))
		}
	}
	return total
}

// TeamScore is the summed points of every roster member.
func TeamScore(roster []string, lines map[string]Line) int {
	score := 0
	for _, name := range roster {
		score += Points(lines[name])
	}
	return score
}

// Leader is one category leader.
type Leader struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Leaders holds the roster leader for each headline category.
type Leaders struct {
	Points   Leader `json:"points"`
	Rebounds Leader `json:"rebounds"`
	Assists  Leader `json:"assists"`
}

// RosterLeaders picks the leader per category. Ties go to the player appearing
// first in roster order.
func RosterLeaders(roster []string, lines map[string]Line) Leaders {
	var out Leaders
	for i, name := range roster {
		l := lines[name]
		if pts := Points(l); i == 0 || pts > out.Points.Value {
			out.Points = Leader{Name: name, Value: pts}
		}
		if reb := Rebounds(l); i == 0 || reb > out.Rebounds.Value {
			out.Rebounds = Leader{Name: name, Value: reb}
		}
		if ast := l.Assists; i == 0 || ast > out.Assists.Value {
			out.Assists = Leader{Name: name, Value: ast}
		}
	}
	return out
}

// minAttempts gates the shooting-percentage takeaways: comparing percentages on
// one or two attempts reads as noise.
const minAttempts = 3

// Takeaways builds up to three short comparison strings between the two sides,
// in fixed priority order: rebounds, turnovers, 3PT%, FT%.
func Takeaways(homeRoster, awayRoster []string, lines map[string]Line) []string {
	th := TeamTotals(homeRoster, lines)
	ta := TeamTotals(awayRoster, lines)

	var items []string

	rebDiff := Rebounds(th) - Rebounds(ta)
	if rebDiff != 0 {
		lead := TeamHome
		if rebDiff < 0 {
			lead = TeamAway
		}
		items = append(items, fmt.Sprintf("%s +%d REB advantage", lead, abs(rebDiff)))
	}

	// Turnovers are read as forced: the side committing fewer gets the credit.
	tovDiff := ta.Turnovers - th.Turnovers
	if tovDiff != 0 {
		lead := TeamHome
		if tovDiff < 0 {
			lead = TeamAway
		}
		items = append(items, fmt.Sprintf("%s forced %d more TOV", lead, abs(tovDiff)))
	}

	if th.ThreePA >= minAttempts || ta.ThreePA >= minAttempts {
		h3 := Percentage(th.ThreePM, th.ThreePA)
		a3 := Percentage(ta.ThreePM, ta.ThreePA)
		lead := TeamHome
		if h3 <= a3 {
			lead = TeamAway
		}
		items = append(items, fmt.Sprintf("%s better from 3 (%.1f%% vs %.1f%%)", lead, h3, a3))
	}

	if th.FTA >= minAttempts || ta.FTA >= minAttempts {
		hft := Percentage(th.FTM, th.FTA)
		aft := Percentage(ta.FTM, ta.FTA)
		lead := TeamHome
		if hft <= aft {
			lead = TeamAway
		}
		items = append(items, fmt.Sprintf("%s better at FT (%.1f%% vs %.1f%%)", lead, hft, aft))
	}

	if len(items) > 3 {
		items = items[:3]
	}
	return items
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// PlayEvent is the minimal view of a logged action that run computation needs.
type PlayEvent struct {
	Team   Team
	Points int
}

// Run sums points scored by team among the last window scoring events, scanned
// newest-first. Non-scoring events do not consume the window.
func Run(events []PlayEvent, team Team, window int) int {
	pts := 0
	counted := 0
	for i := len(events) - 1; i >= 0 && counted < window; i-- {
		if events[i].Points <= 0 {
			continue
		}
		counted++
		if events[i].Team == team {
			pts += events[i].Points
		}
	}
	return pts
}
