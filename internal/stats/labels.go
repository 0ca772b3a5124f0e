package stats

import "strings"

// actionLabels maps single-key deltas to their display label.
var actionLabels = map[Key]string{
	Key2PM:  "2PT Made",
	Key2PA:  "2PT Miss",
	Key3PM:  "3PT Made",
	Key3PA:  "3PT Miss",
	KeyFTM:  "FT Made",
	KeyFTA:  "FT Miss",
	KeyOREB: "OREB +1",
	KeyDREB: "DREB +1",
	KeyAST:  "AST +1",
	KeyTOV:  "TOV +1",
	KeySTL:  "STL +1",
	KeyBLK:  "BLK +1",
	KeyPF:   "FOUL +1",
}

// comboLabels maps recognized multi-key deltas (by sorted key signature) to a
// friendlier label than the raw key list.
var comboLabels = map[string]string{
	signature(Key2PM, Key2PA, KeyFTM, KeyFTA): "And-1 (2PT + FT)",
	signature(Key3PA, KeyFTA):                 "3PT Foul (3PA + FT)",
	signature(KeyDREB, KeyAST):                "DREB + AST",
	signature(KeyOREB, Key2PM, Key2PA):        "Putback (OREB + 2PT)",
}

const maxLabelLen = 45

func signature(keys ...Key) string {
	present := make(map[Key]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	var parts []string
	for _, k := range AllKeys {
		if present[k] {
			parts = append(parts, string(k))
		}
	}
	return strings.Join(parts, "+")
}

// DeltaPoints counts points produced by a delta. Only made shots score.
func DeltaPoints(d Delta) int {
	return 2*d[Key2PM] + 3*d[Key3PM] + d[KeyFTM]
}

// DeltaLabel derives a human label for a delta: a fixed combo table first, then
// the per-key table for single-key deltas, then a truncated key-name join.
func DeltaLabel(d Delta) string {
	var nonZero []Key
	for _, k := range AllKeys {
		if d[k] != 0 {
			nonZero = append(nonZero, k)
		}
	}

	if label, ok := comboLabels[signature(nonZero...)]; ok {
		return label
	}

	if len(nonZero) == 1 {
		k := nonZero[0]
		if label, ok := actionLabels[k]; ok {
			return label
		}
		return string(k) + " +1"
	}

	var parts []string
	for _, k := range nonZero {
		parts = append(parts, string(k))
	}
	joined := strings.Join(parts, " + ")
	if len(joined) > maxLabelLen {
		joined = joined[:maxLabelLen]
	}
	return joined
}
