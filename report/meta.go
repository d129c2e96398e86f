package report

import (
	"encoding/json"
	"os"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/carbocation/genes2terms/enrich"
)

// RunMetadata records the inputs and outputs of one enrichment run. It is
// written once, after the result table, regardless of whether any terms
// passed the threshold.
type RunMetadata struct {
	Input            string   `json:"input"`
	NGenes           int      `json:"n_genes"`
	Organism         string   `json:"organism"`
	SourcesRequested []string `json:"sources_requested"`
	SourcesUsed      []string `json:"sources_used"`
	FDRThreshold     float64  `json:"fdr_threshold"`
	IncludeIEA       bool     `json:"include_iea"`
	Timestamp        string   `json:"timestamp"`

	TSV string `json:"tsv"`
	PNG string `json:"png,omitempty"`

	Tool      string `json:"tool"`
	GoVersion string `json:"go_version"`

	Significance *SignificanceSummary `json:"significance_summary,omitempty"`
}

// SignificanceSummary describes the spread of significance values across the
// terms that survived filtering.
type SignificanceSummary struct {
	Terms  int     `json:"terms"`
	Min    float64 `json:"min_adjusted_p"`
	Median float64 `json:"median_adjusted_p"`
	Max    float64 `json:"max_adjusted_p"`
}

// Summarize computes the significance summary for the processed table, using
// the adjusted p-value where present and the raw p-value otherwise. It
// returns nil when no row carries a significance value.
func Summarize(table enrich.Table) *SignificanceSummary {
	vals := make([]float64, 0, len(table.Rows))
	for _, row := range table.Rows {
		switch {
		case row.AdjustedPValue != nil:
			vals = append(vals, *row.AdjustedPValue)
		case row.PValue != nil:
			vals = append(vals, *row.PValue)
		}
	}
	if len(vals) == 0 {
		return nil
	}

	min, err := stats.Min(vals)
	if err != nil {
		return nil
	}
	median, err := stats.Median(vals)
	if err != nil {
		return nil
	}
	max, err := stats.Max(vals)
	if err != nil {
		return nil
	}

	return &SignificanceSummary{
		Terms:  len(vals),
		Min:    min,
		Median: median,
		Max:    max,
	}
}

// WriteMetadata serializes the run metadata as indented JSON.
func WriteMetadata(fileName string, meta RunMetadata) error {
	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return pfx.Err(err)
	}

	if err := os.WriteFile(fileName, append(out, '\n'), 0o644); err != nil {
		return pfx.Err(err)
	}

	return nil
}
