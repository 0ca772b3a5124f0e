package stats

// Key identifies one tracked counter type.
type Key string

const (
	Key2PM  Key = "2PM"
	Key2PA  Key = "2PA"
	Key3PM  Key = "3PM"
	Key3PA  Key = "3PA"
	KeyFTM  Key = "FTM"
	KeyFTA  Key = "FTA"
	KeyOREB Key = "OREB"
	KeyDREB Key = "DREB"
	KeyAST  Key = "AST"
	KeyTOV  Key = "TOV"
	KeySTL  Key = "STL"
	KeyBLK  Key = "BLK"
	KeyPF   Key = "PF"
)

// AllKeys lists every tracked key in display order. Roster seeding creates one
// zeroed counter row per key in this list.
var AllKeys = []Key{
	Key2PM, Key2PA, Key3PM, Key3PA, KeyFTM, KeyFTA,
	KeyOREB, KeyDREB, KeyAST, KeyTOV, KeySTL, KeyBLK, KeyPF,
}

// Team tags which side of a dual-team game a player belongs to.
type Team string

const (
	TeamHome Team = "Home"
	TeamAway Team = "Away"
)

// Delta is a signed per-key adjustment applied to one player's counters.
type Delta map[Key]int

// Line is one player's counter snapshot. Fields are fixed so access is checked
// at compile time; Get preserves the old missing-key-is-zero contract for the
// string-keyed paths (storage scan, totals loops).
type Line struct {
	TwoPM     int `json:"2PM"`
	TwoPA     int `json:"2PA"`
	ThreePM   int `json:"3PM"`
	ThreePA   int `json:"3PA"`
	FTM       int `json:"FTM"`
	FTA       int `json:"FTA"`
	OffReb    int `json:"OREB"`
	DefReb    int `json:"DREB"`
	Assists   int `json:"AST"`
	Turnovers int `json:"TOV"`
	Steals    int `json:"STL"`
	Blocks    int `json:"BLK"`
	Fouls     int `json:"PF"`
}

// Get returns the counter for k, or zero for an unrecognized key.
func (l Line) Get(k Key) int {
	switch k {
	case Key2PM:
		return l.TwoPM
	case Key2PA:
		return l.TwoPA
	case Key3PM:
		return l.ThreePM
	case Key3PA:
		return l.ThreePA
	case KeyFTM:
		return l.FTM
	case KeyFTA:
		return l.FTA
	case KeyOREB:
		return l.OffReb
	case KeyDREB:
		return l.DefReb
	case KeyAST:
		return l.Assists
	case KeyTOV:
		return l.Turnovers
	case KeySTL:
		return l.Steals
	case KeyBLK:
		return l.Blocks
	case KeyPF:
		return l.Fouls
	}
	return 0
}

// Add adds n to the counter for k. Unrecognized keys are ignored, mirroring the
// storage layer which only mutates rows seeded at roster time.
func (l *Line) Add(k Key, n int) {
	switch k {
	case Key2PM:
		l.TwoPM += n
	case Key2PA:
		l.TwoPA += n
	case Key3PM:
		l.ThreePM += n
	case Key3PA:
		l.ThreePA += n
	case KeyFTM:
		l.FTM += n
	case KeyFTA:
		l.FTA += n
	case KeyOREB:
		l.OffReb += n
	case KeyDREB:
		l.DefReb += n
	case KeyAST:
		l.Assists += n
	case KeyTOV:
		l.Turnovers += n
	case KeySTL:
		l.Steals += n
	case KeyBLK:
		l.Blocks += n
	case KeyPF:
		l.Fouls += n
	}
}
