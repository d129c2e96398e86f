package report

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/carbocation/genes2terms/enrich"
)

const maxLabelLength = 80

// PlotTopTerms renders a horizontal bar chart of the top most significant
// terms to a PNG file. The table is expected to arrive already sorted
// ascending by significance; the first top rows are drawn, each bar sized by
// -log10 of the adjusted p-value (or the raw p-value when no adjusted column
// exists). Labels combine a truncated term name with its identifier in
// brackets, falling back to the source when either is missing.
func PlotTopTerms(fileName string, table enrich.Table, top int) error {
	if table.Empty() {
		return nil
	}

	sigCol := enrich.ColAdjustedPValue
	if !table.HasColumn(sigCol) {
		sigCol = enrich.ColPValue
	}
	if !table.HasColumn(sigCol) {
		return fmt.Errorf("no p-value column to plot")
	}

	rows := table.Rows
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}

	values := make(plotter.Values, 0, len(rows))
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		p := 1.0
		switch {
		case sigCol == enrich.ColAdjustedPValue && row.AdjustedPValue != nil:
			p = *row.AdjustedPValue
		case row.PValue != nil:
			p = *row.PValue
		}
		values = append(values, enrich.NegLog10(p))
		labels = append(labels, barLabel(row))
	}

	pl := plot.New()
	pl.Title.Text = "Top enriched terms"
	if sigCol == enrich.ColAdjustedPValue {
		pl.X.Label.Text = "-log10(FDR)"
	} else {
		pl.X.Label.Text = "-log10(p)"
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.LineStyle.Width = 0
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	pl.Add(bars)
	pl.NominalY(labels...)

	height := vg.Length(4) * vg.Inch
	if h := vg.Length(0.5*float64(len(rows))) * vg.Inch; h > height {
		height = h
	}

	return pl.Save(12*vg.Inch, height, fileName)
}

func barLabel(row enrich.Row) string {
	name := strings.TrimSpace(row.TermName)
	if name == "" {
		name = strings.TrimSpace(row.Source)
	}
	if name == "" {
		name = "(unnamed)"
	}

	id := strings.TrimSpace(row.TermID)
	if id == "" {
		id = strings.TrimSpace(row.Source)
	}
	if id == "" {
		id = "(no ID)"
	}

	return fmt.Sprintf("%s [%s]", shorten(name, maxLabelLength), id)
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}
