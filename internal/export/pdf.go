package export

import (
	"fmt"
	"io"

	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/go-pdf/fpdf"
)

// Column widths in mm, tuned so the table fills a landscape A4 page. The
// player column is wide, stat columns narrow.
var pdfColWidths = []float64{50, 12, 16, 14, 16, 14, 16, 14, 13, 13, 12, 12, 12, 12, 12, 12}

// PDF renders the box score as a landscape A4 table.
func PDF(w io.Writer, title, subtitle string, rows []stats.BoxRow, totals []stats.TotalsRow) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	if subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, subtitle, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range stats.BoxColumns {
		pdf.CellFormat(pdfColWidths[i], 7, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for i, val := range row.Values() {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(pdfColWidths[i], 6, val, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(totals) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 7, "Team totals", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, tr := range totals {
			pdf.CellFormat(0, 6, formatTotals(tr), "", 1, "L", false, 0, "")
		}
	}

	return pdf.Output(w)
}

func formatTotals(tr stats.TotalsRow) string {
	return fmt.Sprintf("%s: %d PTS, %d REB, %d AST, %d TOV, %d STL, %d BLK",
		tr.Team, tr.Points, tr.Rebounds, tr.Assists, tr.Turnover, tr.Steals, tr.Blocks)
}
