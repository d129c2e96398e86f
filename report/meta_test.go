package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/genes2terms/enrich"
	"github.com/carbocation/genes2terms/gprofiler"
)

func TestWriteMetadata(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "meta.json")

	meta := RunMetadata{
		Input:            "data/genes_input.txt",
		NGenes:           3,
		Organism:         "hsapiens",
		SourcesRequested: []string{"GO:BP", "FAKE"},
		SourcesUsed:      []string{"GO:BP"},
		FDRThreshold:     0.05,
		IncludeIEA:       true,
		Timestamp:        "2026-08-30T12:00:00Z",
		TSV:              "results/enrichment_20260830-120000.tsv",
		Tool:             "genes2terms",
		GoVersion:        "go1.18",
	}

	if err := WriteMetadata(fileName, meta); err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(fileName)
	if err != nil {
		t.Fatal(err)
	}

	var got RunMetadata
	if err := json.Unmarshal(contents, &got); err != nil {
		t.Fatal(err)
	}

	if got.Organism != meta.Organism || got.NGenes != meta.NGenes || got.FDRThreshold != meta.FDRThreshold {
		t.Errorf("Round trip mismatch: %+v", got)
	}
	if got.PNG != "" {
		t.Error("PNG path should be omitted when unset")
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(enrich.Table{}); s != nil {
		t.Errorf("Expected nil summary for an empty table, got %+v", s)
	}

	table := enrich.Process([]gprofiler.Result{
		{Source: "GO:BP", AdjustedPValue: f(0.01)},
		{Source: "GO:BP", AdjustedPValue: f(0.02)},
		{Source: "GO:BP", AdjustedPValue: f(0.04)},
	}, 0.05)

	s := Summarize(table)
	if s == nil {
		t.Fatal("Expected a summary")
	}
	if s.Terms != 3 || s.Min != 0.01 || s.Median != 0.02 || s.Max != 0.04 {
		t.Errorf("Unexpected summary: %+v", s)
	}
}
