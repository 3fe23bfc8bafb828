// Package normalizer projects a RawTable through a finalized column mapping
// into the canonical transaction table, and cleans the result into the
// ordered form the aggregator relies on.
package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/dateutils"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Stats accounts for what Normalize did with the raw rows. Row-level
// coercion failures never abort normalization; they are collected here
// for reporting.
type Stats struct {
	InputRows int
	Dropped   int
	Errors    []error
}

// Normalize projects every raw row through the mapping. The project cell is
// coerced to trimmed text, with empty values replaced by the "Unspecified"
// sentinel. The date cell is coerced by the tolerant parser; rows whose date
// fails to parse are dropped and counted. Each cash amount is the sum over
// that role's columns of the absolute coerced values, since sign convention
// varies by source; non-numeric and empty cells contribute zero.
//
// The returned sequence keeps raw-row order, which is not yet meaningful;
// Clean establishes the ordering consumers rely on.
func Normalize(table models.RawTable, mapping models.ColumnMapping) ([]models.Transaction, Stats) {
	projectHeader := mapping.Project()
	dateHeader := mapping.Date()

	stats := Stats{InputRows: len(table.Rows)}
	transactions := make([]models.Transaction, 0, len(table.Rows))

	for i, row := range table.Rows {
		rawDate := strings.TrimSpace(row[dateHeader].Value)
		date, err := dateutils.ParseDate(rawDate)
		if err != nil {
			coercionErr := &analyzererror.RowCoercionError{
				Row:   i,
				Field: dateHeader,
				Value: rawDate,
				Err:   err,
			}
			stats.Dropped++
			stats.Errors = append(stats.Errors, coercionErr)
			log.WithError(coercionErr).Debug("dropping row with unparseable date",
				logging.Field{Key: logging.FieldRow, Value: i})
			continue
		}

		project := strings.TrimSpace(row[projectHeader].Value)
		if project == "" {
			project = models.UnspecifiedProject
		}

		transactions = append(transactions, models.Transaction{
			Project: project,
			Date:    date,
			CashIn:  sumColumns(row, mapping.CashInColumns),
			CashOut: sumColumns(row, mapping.CashOutColumns),
		})
	}

	if stats.Dropped > 0 {
		log.Warn("dropped rows during normalization",
			logging.Field{Key: logging.FieldDropped, Value: stats.Dropped},
			logging.Field{Key: logging.FieldRows, Value: stats.InputRows})
	}

	return transactions, stats
}

// sumColumns sums the absolute coerced amounts of one row across the given
// headers. Cells that do not parse as numbers contribute zero.
func sumColumns(row models.Row, headers []string) decimal.Decimal {
	total := decimal.Zero
	for _, header := range headers {
		value := strings.TrimSpace(row[header].Value)
		if value == "" {
			continue
		}
		amount, err := models.ParseAmount(value)
		if err != nil {
			continue
		}
		total = total.Add(amount.Abs())
	}
	return total
}
