package enrich

import (
	"math"
	"reflect"
	"testing"

	"github.com/carbocation/genes2terms/gprofiler"
)

func f(v float64) *float64 { return &v }

func TestProcessFiltersAndSorts(t *testing.T) {
	results := []gprofiler.Result{
		{Source: "GO:BP", TermID: "GO:1", PValue: f(0.02), AdjustedPValue: f(0.10)},
		{Source: "GO:BP", TermID: "GO:2", PValue: f(0.001), AdjustedPValue: f(0.01)},
		{Source: "REAC", TermID: "R-1", PValue: f(0.005), AdjustedPValue: f(0.04)},
	}

	table := Process(results, 0.05)

	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows at FDR 0.05, got %d", len(table.Rows))
	}
	if table.Rows[0].TermID != "GO:2" || table.Rows[1].TermID != "R-1" {
		t.Errorf("Rows not sorted ascending by adjusted p: %s, %s", table.Rows[0].TermID, table.Rows[1].TermID)
	}

	for i := 1; i < len(table.Rows); i++ {
		if *table.Rows[i-1].AdjustedPValue > *table.Rows[i].AdjustedPValue {
			t.Errorf("Row %d out of order", i)
		}
	}
}

func TestProcessIdempotent(t *testing.T) {
	results := []gprofiler.Result{
		{Source: "GO:BP", TermID: "GO:1", AdjustedPValue: f(0.04)},
		{Source: "GO:BP", TermID: "GO:2", AdjustedPValue: f(0.20)},
		{Source: "GO:BP", TermID: "GO:3", AdjustedPValue: f(0.01)},
	}

	once := Process(results, 0.05)

	filtered := make([]gprofiler.Result, 0, len(once.Rows))
	for _, row := range once.Rows {
		filtered = append(filtered, row.Result)
	}
	twice := Process(filtered, 0.05)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filtering is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

// Without an adjusted p-value anywhere, no filtering happens and sorting
// falls back to the raw p-value.
func TestProcessRawPValueFallback(t *testing.T) {
	results := []gprofiler.Result{
		{Source: "GO:BP", TermID: "GO:1", PValue: f(0.9)},
		{Source: "GO:BP", TermID: "GO:2", PValue: f(0.2)},
	}

	table := Process(results, 0.05)

	if len(table.Rows) != 2 {
		t.Fatalf("Expected no filtering without an adjusted p-value column, got %d rows", len(table.Rows))
	}
	if table.Rows[0].TermID != "GO:2" {
		t.Error("Expected sort to fall back to the raw p-value")
	}
}

func TestProcessNoPValuesKeepsOrder(t *testing.T) {
	results := []gprofiler.Result{
		{Source: "GO:BP", TermID: "GO:9"},
		{Source: "GO:BP", TermID: "GO:1"},
	}

	table := Process(results, 0.05)

	if table.Rows[0].TermID != "GO:9" || table.Rows[1].TermID != "GO:1" {
		t.Error("Expected original order when no p-value column exists")
	}
}

// Once any row carries an adjusted p-value, rows missing it are dropped
// rather than silently passed through the threshold.
func TestProcessDropsRowsMissingAdjusted(t *testing.T) {
	results := []gprofiler.Result{
		{Source: "GO:BP", TermID: "GO:1", AdjustedPValue: f(0.01)},
		{Source: "GO:BP", TermID: "GO:2"},
	}

	table := Process(results, 0.05)

	if len(table.Rows) != 1 || table.Rows[0].TermID != "GO:1" {
		t.Errorf("Expected only the row with an adjusted p-value, got %+v", table.Rows)
	}
}

func TestGeneHits(t *testing.T) {
	table := Process([]gprofiler.Result{
		{Source: "GO:BP", Intersections: []string{"TP53", "BAX"}, HasIntersections: true},
		{Source: "GO:BP", IntersectionsScalar: "TP53", HasIntersections: true},
		{Source: "GO:BP"},
	}, 0.05)

	for i, expected := range []string{"TP53,BAX", "TP53", ""} {
		if got := table.Rows[i].GenesHits; got != expected {
			t.Errorf("Row %d: expected genes_hits %q, got %q", i, expected, got)
		}
	}
}

func TestColumns(t *testing.T) {
	table := Process([]gprofiler.Result{
		{Source: "GO:BP", TermID: "GO:1", PValue: f(0.01)},
		{Source: "GO:BP", TermID: "GO:2", PValue: f(0.02), Intersections: []string{"TP53"}, HasIntersections: true},
	}, 0.05)

	expected := []string{ColSource, ColTermID, ColPValue, ColGenesHits}
	if got := table.Columns(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected columns %v, got %v", expected, got)
	}

	if got := table.Cell(0, ColGenesHits); got != "" {
		t.Errorf("Absent cell should render empty, got %q", got)
	}
	if got := table.Cell(1, ColPValue); got != "0.02" {
		t.Errorf("Expected p-value cell 0.02, got %q", got)
	}
}

func TestNegLog10(t *testing.T) {
	if got := NegLog10(1); got != 0 {
		t.Errorf("NegLog10(1): expected 0, got %f", got)
	}

	got := NegLog10(0)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("NegLog10(0) must be finite, got %f", got)
	}
	if got > 300 {
		t.Errorf("NegLog10(0) must be bounded by the clipping floor (<= 300), got %f", got)
	}

	if got := NegLog10(0.01); math.Abs(got-2) > 1e-12 {
		t.Errorf("NegLog10(0.01): expected 2, got %f", got)
	}
}
