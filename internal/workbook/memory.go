package workbook

import (
	"fmt"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/models"
)

// MemorySource serves pre-built RawTables. It backs tests and lets host
// applications that already hold tabular data feed the pipeline without a
// file on disk.
type MemorySource struct {
	order  []string
	sheets map[string]models.RawTable
}

// NewMemorySource creates an in-memory source. Sheet order follows the
// order argument.
func NewMemorySource(order []string, sheets map[string]models.RawTable) *MemorySource {
	return &MemorySource{order: order, sheets: sheets}
}

// NewSingleSheetSource wraps one table as a source with one sheet.
func NewSingleSheetSource(name string, table models.RawTable) *MemorySource {
	return NewMemorySource([]string{name}, map[string]models.RawTable{name: table})
}

// ListSheets returns the sheet names in registration order.
func (s *MemorySource) ListSheets() ([]string, error) {
	return append([]string{}, s.order...), nil
}

// LoadSheet returns the registered table for the sheet.
func (s *MemorySource) LoadSheet(name string) (models.RawTable, error) {
	table, ok := s.sheets[name]
	if !ok {
		return models.RawTable{}, &analyzererror.SourceError{
			Source: "memory",
			Err:    fmt.Errorf("unknown sheet %q", name),
		}
	}
	return table, nil
}
