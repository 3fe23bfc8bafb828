// Package models provides the data structures used throughout the application.
package models

// Cell is a single raw spreadsheet cell. Value holds the rendered cell text
// (numbers and dates arrive as their display strings); Formula holds the
// formula source when the cell is formula-backed, without the leading "=".
type Cell struct {
	Value   string
	Formula string
}

// IsEmpty reports whether the cell carries no value at all.
func (c Cell) IsEmpty() bool {
	return c.Value == "" && c.Formula == ""
}

// Row maps a header name to the raw cell found under it.
type Row map[string]Cell

// RawTable is one immutable snapshot of a loaded sheet. Headers preserves the
// original column order; every header is unique within the table. The core
// pipeline only ever reads a RawTable, it never mutates one.
type RawTable struct {
	Headers []string
	Rows    []Row
}

// NewRawTable builds a RawTable from a header row and value records.
// Records shorter than the header row are padded with empty cells,
// longer ones are truncated. Formula-bearing tables are built by the
// workbook adapters directly.
func NewRawTable(headers []string, records [][]string) RawTable {
	table := RawTable{Headers: headers}
	for _, record := range records {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = Cell{Value: record[i]}
			} else {
				row[h] = Cell{}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// IsEmpty reports whether the table holds no data rows.
func (t RawTable) IsEmpty() bool {
	return len(t.Rows) == 0
}
