package export

import (
	"encoding/csv"
	"io"

	"github.com/courtlog/hoopstats/internal/stats"
)

// CSV writes the box score rows as CSV with a header in stats.BoxColumns order.
func CSV(w io.Writer, rows []stats.BoxRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stats.BoxColumns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
