// Package workbook is the seam between the analysis core and the underlying
// file formats. A Source enumerates sheets and materializes them as
// immutable RawTable snapshots; the core never parses a workbook format
// itself. I/O failures surface as analyzererror.SourceError.
package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/models"
)

// Source is the workbook accessor consumed by the pipeline and the CLI.
type Source interface {
	// ListSheets returns the sheet names in workbook order.
	ListSheets() ([]string, error)

	// LoadSheet materializes one sheet as a RawTable, including per-cell
	// formula text where the format carries it.
	LoadSheet(name string) (models.RawTable, error)
}

// Open creates a Source for the given path based on its extension.
// Supported: .xlsx/.xlsm (Excel) and .csv (single pseudo-sheet, no
// formulas).
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewExcelSource(path)
	case ".csv":
		return NewCSVSource(path), nil
	default:
		return nil, &analyzererror.SourceError{
			Source: path,
			Err:    fmt.Errorf("unsupported workbook format %q", filepath.Ext(path)),
		}
	}
}

// normalizeHeaders makes the header row usable as unique RawTable keys:
// blank headers become positional names and duplicates get a numeric
// suffix, preserving column order.
func normalizeHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n+1)
		} else {
			seen[h] = 1
		}
		headers[i] = h
	}
	return headers
}
