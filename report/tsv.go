// Package report writes the outputs of an enrichment run: the TSV result
// table, the JSON run metadata, and the optional bar chart of top terms.
package report

import (
	"encoding/csv"
	"os"

	"github.com/carbocation/pfx"

	"github.com/carbocation/genes2terms/enrich"
)

// WriteTSV writes the processed table as tab-separated values. An empty table
// produces a header-only file with the canonical minimal column set so that
// downstream consumers always see a stable schema.
func WriteTSV(fileName string, table enrich.Table) error {
	f, err := os.Create(fileName)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	columns := table.Columns()
	if table.Empty() {
		columns = enrich.MinimalColumns
	}

	if err := w.Write(columns); err != nil {
		return pfx.Err(err)
	}

	for i := range table.Rows {
		record := make([]string, len(columns))
		for j, col := range columns {
			record[j] = table.Cell(i, col)
		}
		if err := w.Write(record); err != nil {
			return pfx.Err(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
