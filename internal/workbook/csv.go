package workbook

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/models"
)

// CSVSource adapts a CSV file to the Source interface as a workbook with a
// single pseudo-sheet named after the file. CSV cells never carry formulas.
//
// The raw table has caller-unknown dynamic headers, so this reads through
// encoding/csv rather than gocsv, which needs a static struct schema.
type CSVSource struct {
	path      string
	delimiter rune
}

// NewCSVSource creates a CSV-backed source with the default comma delimiter.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path, delimiter: ','}
}

// SetDelimiter overrides the field delimiter, e.g. ';' for exports from
// locales that use comma decimals.
func (s *CSVSource) SetDelimiter(delim rune) {
	s.delimiter = delim
}

// sheetName is the file name without its extension.
func (s *CSVSource) sheetName() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ListSheets returns the single pseudo-sheet name.
func (s *CSVSource) ListSheets() ([]string, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, &analyzererror.SourceError{Source: s.path, Err: err}
	}
	return []string{s.sheetName()}, nil
}

// LoadSheet reads the whole file as one RawTable. The sheet name is accepted
// but not checked against the pseudo-sheet name, so callers can pass "".
func (s *CSVSource) LoadSheet(name string) (models.RawTable, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return models.RawTable{}, &analyzererror.SourceError{Source: s.path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.Comma = s.delimiter
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return models.RawTable{}, &analyzererror.SourceError{Source: s.path, Err: err}
	}
	if len(records) == 0 {
		return models.RawTable{}, nil
	}

	headers := normalizeHeaders(records[0])
	return models.NewRawTable(headers, records[1:]), nil
}
