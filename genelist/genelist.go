// Package genelist reads newline-delimited gene symbol lists.
package genelist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// ErrEmptyList indicates that the input file contained no gene symbols after
// comment and blank lines were removed.
var ErrEmptyList = errors.New("gene list is empty")

// Read parses a text file containing one gene symbol per line. Lines starting
// with '#' and blank lines are skipped. Order and duplicates are preserved.
func Read(fileName string) ([]string, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	genes := make([]string, 0)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		genes = append(genes, Normalize(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	if len(genes) < 1 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrEmptyList)
	}

	return genes, nil
}

// Normalize removes all whitespace from a gene symbol and upper-cases it.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.Join(strings.Fields(symbol), ""))
}
