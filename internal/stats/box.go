package stats

import (
	"fmt"
	"strconv"
)

// BoxRow is one box-score line in display form.
type BoxRow struct {
	Player     string  `json:"player"`
	Points     int     `json:"pts"`
	FG         string  `json:"fg"`
	FGPct      float64 `json:"fg_pct"`
	ThreePT    string  `json:"three_pt"`
	ThreePTPct float64 `json:"three_pt_pct"`
	FT         string  `json:"ft"`
	FTPct      float64 `json:"ft_pct"`
	OffReb     int     `json:"oreb"`
	DefReb     int     `json:"dreb"`
	Rebounds   int     `json:"reb"`
	Assists    int     `json:"ast"`
	Turnovers  int     `json:"tov"`
	Steals     int     `json:"stl"`
	Blocks     int     `json:"blk"`
	Fouls      int     `json:"pf"`

	// Advanced columns, populated only when requested.
	EffFGPct float64 `json:"efg_pct,omitempty"`
	AstToTov float64 `json:"ast_to_tov,omitempty"`
}

// BoxColumns is the stable column order exports rely on.
var BoxColumns = []string{
	"Player", "PTS", "FG", "FG%", "3PT", "3PT%", "FT", "FT%",
	"OREB", "DREB", "REB", "AST", "TOV", "STL", "BLK", "PF",
}

// Values renders the row in BoxColumns order.
func (r BoxRow) Values() []string {
	return []string{
		r.Player,
		strconv.Itoa(r.Points),
		r.FG,
		fmt.Sprintf("%.1f", r.FGPct),
		r.ThreePT,
		fmt.Sprintf("%.1f", r.ThreePTPct),
		r.FT,
		fmt.Sprintf("%.1f", r.FTPct),
		strconv.Itoa(r.OffReb),
		strconv.Itoa(r.DefReb),
		strconv.Itoa(r.Rebounds),
		strconv.Itoa(r.Assists),
		strconv.Itoa(r.Turnovers),
		strconv.Itoa(r.Steals),
		strconv.Itoa(r.Blocks),
		strconv.Itoa(r.Fouls),
	}
}

// BuildBoxRows derives one row per roster member, in roster order.
func BuildBoxRows(roster []string, lines map[string]Line, advanced bool) []BoxRow {
	rows := make([]BoxRow, 0, len(roster))
	for _, name := range roster {
		l := lines[name]
		row := BoxRow{
			Player:     name,
			Points:     Points(l),
			FG:         fmt.Sprintf("%d/%d", FieldGoalsMade(l), FieldGoalsAttempted(l)),
			FGPct:      Percentage(FieldGoalsMade(l), FieldGoalsAttempted(l)),
			ThreePT:    fmt.Sprintf("%d/%d", l.ThreePM, l.ThreePA),
			ThreePTPct: Percentage(l.ThreePM, l.ThreePA),
			FT:         fmt.Sprintf("%d/%d", l.FTM, l.FTA),
			FTPct:      Percentage(l.FTM, l.FTA),
			OffReb:     l.OffReb,
			DefReb:     l.DefReb,
			Rebounds:   Rebounds(l),
			Assists:    l.Assists,
			Turnovers:  l.Turnovers,
			Steals:     l.Steals,
			Blocks:     l.Blocks,
			Fouls:      l.Fouls,
		}
		if advanced {
			row.EffFGPct = EffectiveFieldGoalPct(l)
			row.AstToTov = AssistTurnoverRatio(l)
		}
		rows = append(rows, row)
	}
	return rows
}

// TotalsRow summarizes a side for the totals table under the box score.
type TotalsRow struct {
	Team     Team `json:"team"`
	Points   int  `json:"pts"`
	Rebounds int  `json:"reb"`
	Assists  int  `json:"ast"`
	Turnover int  `json:"tov"`
	Steals   int  `json:"stl"`
	Blocks   int  `json:"blk"`
}

// BuildTotalsRow derives the totals line for one side.
func BuildTotalsRow(team Team, roster []string, lines map[string]Line) TotalsRow {
	t := TeamTotals(roster, lines)
	return TotalsRow{
		Team:     team,
		Points:   Points(t),
		Rebounds: Rebounds(t),
		Assists:  t.Assists,
		Turnover: t.Turnovers,
		Steals:   t.Steals,
		Blocks:   t.Blocks,
	}
}
