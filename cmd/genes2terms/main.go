// genes2terms submits a gene list to the g:Profiler g:GOSt service for
// over-representation analysis, filters the returned terms by a local FDR
// threshold, and writes a TSV result table, a JSON run-metadata file, and an
// optional horizontal bar chart of the top terms by -log10(FDR).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/carbocation/genes2terms/buildinfo"
	_ "github.com/carbocation/genes2terms/buildinfoprint"
	"github.com/carbocation/genes2terms/enrich"
	"github.com/carbocation/genes2terms/genelist"
	"github.com/carbocation/genes2terms/gprofiler"
	"github.com/carbocation/genes2terms/report"
)

// Exit codes. Chart failures are warnings and never change the exit code.
const (
	exitOK         = 0
	exitInputError = 2
	exitCallError  = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		input    string
		organism string
		sources  string
		fdr      float64
		top      int
		outdir   string
		noPlot   bool
		noIEA    bool
		timeout  time.Duration
		apiURL   string
	)

	fs := flag.NewFlagSet("genes2terms", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&input, "input", "data/genes_input.txt", "Path to the gene list (one official symbol per line; '#' comments and blank lines are skipped).")
	fs.StringVar(&organism, "organism", "hsapiens", "Organism code (e.g. hsapiens, mmusculus, drerio).")
	fs.StringVar(&sources, "sources", "GO:BP,GO:MF,GO:CC,REAC", "Comma-separated annotation sources (e.g. GO:BP,GO:MF,GO:CC,REAC,WP,HP,KEGG).")
	fs.Float64Var(&fdr, "fdr", 0.05, "Adjusted p-value (FDR) threshold applied locally after the service call.")
	fs.IntVar(&top, "top", 20, "Number of terms to draw in the figure.")
	fs.StringVar(&outdir, "outdir", "results", "Output directory.")
	fs.BoolVar(&noPlot, "no-plot", false, "Skip the figure (TSV and metadata only).")
	fs.BoolVar(&noIEA, "no-iea", false, "Exclude electronically inferred (IEA) annotations.")
	fs.DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for the enrichment call.")
	fs.StringVar(&apiURL, "api", gprofiler.DefaultBaseURL, "g:Profiler API base URL.")
	if err := fs.Parse(args); err != nil {
		return exitInputError
	}

	cfg := enrich.DefaultConfig()

	if !cfg.KnownOrganism(organism) {
		fmt.Fprintf(stderr, "Warning: organism %q is not on the local list of common organisms; g:Profiler may accept it anyway.\n", organism)
	}

	requested := splitSources(sources)
	used, unknown := cfg.PartitionSources(requested)
	if len(unknown) > 0 {
		fmt.Fprintf(stderr, "Warning: unrecognized sources will be left for g:Profiler to validate: %s\n", strings.Join(unknown, ", "))
	}
	if len(requested) > 0 && len(unknown) == len(requested) {
		fmt.Fprintln(stderr, "Warning: no requested source matched the known list; forwarding the full request unchanged.")
	}

	genes, err := genelist.Read(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading genes: %v\n", err)
		return exitInputError
	}

	fmt.Fprintf(stdout, "Read %d genes for organism %s\n", len(genes), organism)
	fmt.Fprintf(stdout, "Requested sources: %s with FDR <= %g\n", strings.Join(requested, ", "), fdr)

	if err := os.MkdirAll(outdir, 0o755); err != nil {
		fmt.Fprintf(stderr, "Error creating output directory: %v\n", err)
		return exitInputError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := gprofiler.NewClient(apiURL).Profile(ctx, gprofiler.ProfileQuery{
		Organism:   organism,
		Genes:      genes,
		Sources:    used,
		IncludeIEA: !noIEA,
	})
	if err != nil {
		fmt.Fprintf(stderr, "The g:Profiler call failed: %v\n", err)
		return exitCallError
	}

	table := enrich.Process(results, fdr)

	base := "enrichment_" + time.Now().Format("20060102-150405")
	tsvPath := filepath.Join(outdir, base+".tsv")
	pngPath := filepath.Join(outdir, base+".png")
	metaPath := filepath.Join(outdir, base+".json")

	if table.Empty() {
		fmt.Fprintln(stdout, "No terms passed the FDR threshold.")
	}
	if err := report.WriteTSV(tsvPath, table); err != nil {
		fmt.Fprintf(stderr, "Error writing results: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Results written to: %s\n", tsvPath)

	meta := report.RunMetadata{
		Input:            input,
		NGenes:           len(genes),
		Organism:         organism,
		SourcesRequested: requested,
		SourcesUsed:      used,
		FDRThreshold:     fdr,
		IncludeIEA:       !noIEA,
		Timestamp:        time.Now().Format(time.RFC3339),
		TSV:              tsvPath,
		Tool:             "genes2terms",
		GoVersion:        buildinfo.Get().GoVersion,
		Significance:     report.Summarize(table),
	}
	if !noPlot {
		meta.PNG = pngPath
	}
	if err := report.WriteMetadata(metaPath, meta); err != nil {
		fmt.Fprintf(stderr, "Error writing metadata: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Metadata written to: %s\n", metaPath)

	if !noPlot && !table.Empty() {
		if err := report.PlotTopTerms(pngPath, table, top); err != nil {
			fmt.Fprintf(stderr, "Warning: could not render the figure: %v\n", err)
		} else {
			fmt.Fprintf(stdout, "Figure written to: %s\n", pngPath)
		}
	}

	return exitOK
}

func splitSources(s string) []string {
	parts := strings.Split(s, ",")

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
