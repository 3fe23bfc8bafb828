package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/models"
)

// ExcelSource reads .xlsx/.xlsm workbooks through excelize. The first row of
// a sheet is taken as the header row; every later row becomes a data row
// with formula text attached where present.
type ExcelSource struct {
	path   string
	file   *excelize.File
	logger logging.Logger
}

// NewExcelSource opens an Excel workbook. Callers own the source and must
// Close it when done.
func NewExcelSource(path string) (*ExcelSource, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &analyzererror.SourceError{Source: path, Err: err}
	}
	return &ExcelSource{
		path:   path,
		file:   file,
		logger: logging.GetLogger().WithField(logging.FieldFile, path),
	}, nil
}

// Close releases the underlying workbook handle.
func (s *ExcelSource) Close() error {
	return s.file.Close()
}

// ListSheets returns the sheet names in workbook order.
func (s *ExcelSource) ListSheets() ([]string, error) {
	sheets := s.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, &analyzererror.SourceError{
			Source: s.path,
			Err:    fmt.Errorf("workbook contains no sheets"),
		}
	}
	return sheets, nil
}

// LoadSheet materializes one sheet as a RawTable. Rows shorter than the
// header row are padded with empty cells. Cell formulas are fetched
// per cell so the scanner can classify them.
func (s *ExcelSource) LoadSheet(name string) (models.RawTable, error) {
	rows, err := s.file.GetRows(name)
	if err != nil {
		return models.RawTable{}, &analyzererror.SourceError{Source: s.path, Err: err}
	}
	if len(rows) == 0 {
		s.logger.Warn("sheet is empty", logging.Field{Key: logging.FieldSheet, Value: name})
		return models.RawTable{}, nil
	}

	headers := normalizeHeaders(rows[0])
	table := models.RawTable{Headers: headers}

	for rowIdx, record := range rows[1:] {
		row := make(models.Row, len(headers))
		for colIdx, header := range headers {
			cell := models.Cell{}
			if colIdx < len(record) {
				cell.Value = record[colIdx]
			}

			// Data rows start on sheet row 2.
			ref, refErr := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if refErr == nil {
				if f, fErr := s.file.GetCellFormula(name, ref); fErr == nil && f != "" {
					cell.Formula = f
				}
			}

			row[header] = cell
		}
		table.Rows = append(table.Rows, row)
	}

	s.logger.Info("loaded sheet",
		logging.Field{Key: logging.FieldSheet, Value: name},
		logging.Field{Key: logging.FieldRows, Value: len(table.Rows)})

	return table, nil
}
