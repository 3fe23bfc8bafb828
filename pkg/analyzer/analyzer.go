// Package analyzer is the public face of the analysis engine. It exposes the
// four pipeline operations individually for hosts that drive their own
// mapping-confirmation flow, plus a convenience Run that executes the whole
// pipeline over a workbook source.
//
// Every invocation works on one immutable RawTable snapshot; no state is
// retained between calls, so independent analyses may run concurrently.
package analyzer

import (
	"errors"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/config"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/mapper"
	"fjacquet/cashflow-insight/internal/models"
	"fjacquet/cashflow-insight/internal/normalizer"
	"fjacquet/cashflow-insight/internal/scanner"
	"fjacquet/cashflow-insight/internal/summary"
	"fjacquet/cashflow-insight/internal/workbook"
)

// Analyzer binds the pipeline to one detection configuration.
type Analyzer struct {
	detection config.DetectionConfig
	logger    logging.Logger
}

// New creates an Analyzer. A zero-valued detection config selects the
// built-in defaults; a nil logger selects the default logger.
func New(detection config.DetectionConfig, logger logging.Logger) *Analyzer {
	if detection.SampleSize == 0 {
		detection = config.DefaultDetection()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Analyzer{detection: detection, logger: logger}
}

// AnalyzeStructure infers the ranked candidate columns and formula facts of
// a raw table. Re-running it over the same table yields an identical
// mapping.
func (a *Analyzer) AnalyzeStructure(table models.RawTable) models.ColumnMapping {
	return scanner.New(a.detection, a.logger).AnalyzeStructure(table)
}

// FinalizeMapping merges an inferred mapping with explicit selections and
// validates it; see mapper.FinalizeMapping.
func (a *Analyzer) FinalizeMapping(mapping models.ColumnMapping, selection models.ColumnSelection) (models.ColumnMapping, error) {
	return mapper.FinalizeMapping(mapping, selection)
}

// NormalizeAndClean projects the raw table through a finalized mapping and
// returns the ordered cleaned transaction table plus row-drop accounting.
func (a *Analyzer) NormalizeAndClean(table models.RawTable, mapping models.ColumnMapping) ([]models.CleanedTransaction, normalizer.Stats) {
	transactions, stats := normalizer.Normalize(table, mapping)
	return normalizer.Clean(transactions), stats
}

// Summarize derives the three aggregate structures; see summary.Summarize.
func (a *Analyzer) Summarize(transactions []models.CleanedTransaction) ([]models.ProjectSummary, []models.MonthlySummary, models.Insights, error) {
	return summary.Summarize(transactions)
}

// Result bundles everything one full pipeline run produces.
type Result struct {
	Sheet        string
	Mapping      models.ColumnMapping
	Transactions []models.CleanedTransaction
	Projects     []models.ProjectSummary
	Months       []models.MonthlySummary
	Insights     models.Insights
	Stats        normalizer.Stats

	// Empty is set when cleaning left zero usable rows. The summaries and
	// insights are zero-valued in that case; it is not a failure.
	Empty bool
}

// Run executes the whole pipeline on one sheet of a source. An empty sheet
// name selects the first sheet. Structural failures (unreadable source,
// incomplete mapping) are returned as errors; an empty dataset is reported
// through Result.Empty.
func (a *Analyzer) Run(source workbook.Source, sheet string, selection models.ColumnSelection) (*Result, error) {
	if sheet == "" {
		sheets, err := source.ListSheets()
		if err != nil {
			return nil, err
		}
		if len(sheets) == 0 {
			return nil, &analyzererror.SourceError{
				Source: "workbook",
				Err:    errors.New("no sheets found"),
			}
		}
		sheet = sheets[0]
	}

	table, err := source.LoadSheet(sheet)
	if err != nil {
		return nil, err
	}

	inferred := a.AnalyzeStructure(table)
	mapping, err := a.FinalizeMapping(inferred, selection)
	if err != nil {
		return nil, err
	}

	result := &Result{Sheet: sheet, Mapping: mapping}
	result.Transactions, result.Stats = a.NormalizeAndClean(table, mapping)

	result.Projects, result.Months, result.Insights, err = a.Summarize(result.Transactions)
	if err != nil {
		if errors.Is(err, analyzererror.ErrEmptyDataset) {
			result.Empty = true
			return result, nil
		}
		return nil, err
	}

	return result, nil
}
