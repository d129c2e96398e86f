package enrich

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/genes2terms/gprofiler"
)

// Column names of the processed output table, in canonical order.
const (
	ColSource              = "source"
	ColTermID              = "term_id"
	ColTermName            = "term_name"
	ColPValue              = "p_value"
	ColAdjustedPValue      = "adjusted_p_value"
	ColIntersectionSize    = "intersection_size"
	ColEffectiveDomainSize = "effective_domain_size"
	ColQuerySize           = "query_size"
	ColPrecision           = "precision"
	ColRecall              = "recall"
	ColGenesHits           = "genes_hits"
)

// ColumnOrder is the fixed allow-list of output columns. Columns absent from
// every row are projected away.
var ColumnOrder = []string{
	ColSource, ColTermID, ColTermName,
	ColPValue, ColAdjustedPValue,
	ColIntersectionSize, ColEffectiveDomainSize, ColQuerySize,
	ColPrecision, ColRecall,
	ColGenesHits,
}

// MinimalColumns is the header written when no rows survive filtering, so
// that downstream consumers always see a stable schema.
var MinimalColumns = []string{
	ColSource, ColTermID, ColTermName,
	ColPValue, ColAdjustedPValue,
	ColGenesHits,
}

// Row is one processed term: the service's (possibly sparse) record plus the
// derived comma-joined gene hits display value.
type Row struct {
	gprofiler.Result
	GenesHits string
}

// Table is an ordered collection of processed rows. Rows are never reordered
// after Process returns.
type Table struct {
	Rows []Row
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Columns returns the allow-listed columns present in at least one row, in
// canonical order. Empty tables have no columns.
func (t Table) Columns() []string {
	columns := make([]string, 0, len(ColumnOrder))
	for _, col := range ColumnOrder {
		for i := range t.Rows {
			if t.hasCell(i, col) {
				columns = append(columns, col)
				break
			}
		}
	}

	return columns
}

// Cell renders the named column of row i as a string, empty when absent.
func (t Table) Cell(i int, col string) string {
	r := t.Rows[i]

	switch col {
	case ColSource:
		return r.Source
	case ColTermID:
		return r.TermID
	case ColTermName:
		return r.TermName
	case ColPValue:
		return formatFloat(r.PValue)
	case ColAdjustedPValue:
		return formatFloat(r.AdjustedPValue)
	case ColIntersectionSize:
		return formatInt(r.IntersectionSize)
	case ColEffectiveDomainSize:
		return formatInt(r.EffectiveDomainSize)
	case ColQuerySize:
		return formatInt(r.QuerySize)
	case ColPrecision:
		return formatFloat(r.Precision)
	case ColRecall:
		return formatFloat(r.Recall)
	case ColGenesHits:
		return r.GenesHits
	}

	return ""
}

func (t Table) hasCell(i int, col string) bool {
	r := t.Rows[i]

	switch col {
	case ColSource:
		return r.Source != ""
	case ColTermID:
		return r.TermID != ""
	case ColTermName:
		return r.TermName != ""
	case ColPValue:
		return r.PValue != nil
	case ColAdjustedPValue:
		return r.AdjustedPValue != nil
	case ColIntersectionSize:
		return r.IntersectionSize != nil
	case ColEffectiveDomainSize:
		return r.EffectiveDomainSize != nil
	case ColQuerySize:
		return r.QuerySize != nil
	case ColPrecision:
		return r.Precision != nil
	case ColRecall:
		return r.Recall != nil
	case ColGenesHits:
		return r.HasIntersections
	}

	return false
}

// HasColumn reports whether the named column is present in any row.
func (t Table) HasColumn(col string) bool {
	for i := range t.Rows {
		if t.hasCell(i, col) {
			return true
		}
	}

	return false
}

// Process filters raw service results to the user's FDR threshold and sorts
// them ascending by significance. The threshold applies only when the
// adjusted p-value column exists at all; rows missing the value when the
// column exists are dropped rather than passed through unfiltered. Sorting
// keys on adjusted p-value, then raw p-value, skipping absent columns, and
// is stable. An empty table is a valid outcome, not an error.
func Process(results []gprofiler.Result, fdrThreshold float64) Table {
	hasAdjusted, hasRaw := false, false
	for _, res := range results {
		if res.AdjustedPValue != nil {
			hasAdjusted = true
		}
		if res.PValue != nil {
			hasRaw = true
		}
	}

	rows := make([]Row, 0, len(results))
	for _, res := range results {
		if hasAdjusted && (res.AdjustedPValue == nil || *res.AdjustedPValue > fdrThreshold) {
			continue
		}
		rows = append(rows, Row{Result: res, GenesHits: geneHits(res)})
	}

	if hasAdjusted || hasRaw {
		sort.SliceStable(rows, func(i, j int) bool {
			if hasAdjusted {
				a, b := floatOrInf(rows[i].AdjustedPValue), floatOrInf(rows[j].AdjustedPValue)
				if a != b {
					return a < b
				}
			}
			if hasRaw {
				return floatOrInf(rows[i].PValue) < floatOrInf(rows[j].PValue)
			}
			return false
		})
	}

	return Table{Rows: rows}
}

// negLog10Floor prevents -log10 from blowing up on a p-value of exactly zero.
const negLog10Floor = 1e-300

// NegLog10 returns -log10(p) with p clipped into [1e-300, 1], so a zero input
// maps to 300 and an input of 1 maps to 0.
func NegLog10(p float64) float64 {
	if p < negLog10Floor {
		p = negLog10Floor
	}
	if p > 1 {
		p = 1
	}

	return -math.Log10(p)
}

func geneHits(res gprofiler.Result) string {
	if res.Intersections != nil {
		return strings.Join(res.Intersections, ",")
	}

	return res.IntersectionsScalar
}

func floatOrInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}

	return *v
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}
