// Package common provides the CSV export shared by the CLI and any host
// application: cleaned transactions and the two summary tables, written in
// a standardized format with ISO dates and two-decimal amounts.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/cashflow-insight/internal/dateutils"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/models"
)

var log = logging.GetLogger()

// Delimiter is the output CSV delimiter, configurable via config.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Flat export rows: gocsv marshals string fields directly, which keeps the
// date and amount formatting under our control.
type cleanedTransactionRow struct {
	Project            string `csv:"Project"`
	Date               string `csv:"Date"`
	CashIn             string `csv:"Cash_In"`
	CashOut            string `csv:"Cash_Out"`
	NetCashFlow        string `csv:"Net_Cash_Flow"`
	CumulativeCashFlow string `csv:"Cumulative_Cash_Flow"`
}

type projectSummaryRow struct {
	Project          string `csv:"Project"`
	TotalCashIn      string `csv:"Total_Cash_In"`
	TotalCashOut     string `csv:"Total_Cash_Out"`
	TotalNetCashFlow string `csv:"Total_Net_Cash_Flow"`
}

type monthlySummaryRow struct {
	YearMonth   string `csv:"Year_Month"`
	CashIn      string `csv:"Cash_In"`
	CashOut     string `csv:"Cash_Out"`
	NetCashFlow string `csv:"Net_Cash_Flow"`
}

// WriteCleanedTransactionsToCSV writes the cleaned transaction table to a
// CSV file, preserving the cleaner's ordering.
func WriteCleanedTransactionsToCSV(transactions []models.CleanedTransaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	rows := make([]cleanedTransactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = cleanedTransactionRow{
			Project:            tx.Project,
			Date:               dateutils.ToISODate(tx.Date),
			CashIn:             tx.CashIn.StringFixed(2),
			CashOut:            tx.CashOut.StringFixed(2),
			NetCashFlow:        tx.NetCashFlow.StringFixed(2),
			CumulativeCashFlow: tx.CumulativeCashFlow.StringFixed(2),
		}
	}
	return writeCSV(rows, csvFile)
}

// WriteProjectSummariesToCSV writes the per-project summary table.
func WriteProjectSummariesToCSV(summaries []models.ProjectSummary, csvFile string) error {
	if summaries == nil {
		return fmt.Errorf("cannot write nil project summaries to CSV")
	}
	rows := make([]projectSummaryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = projectSummaryRow{
			Project:          s.Project,
			TotalCashIn:      s.TotalCashIn.StringFixed(2),
			TotalCashOut:     s.TotalCashOut.StringFixed(2),
			TotalNetCashFlow: s.TotalNetCashFlow.StringFixed(2),
		}
	}
	return writeCSV(rows, csvFile)
}

// WriteMonthlySummariesToCSV writes the per-month summary table.
func WriteMonthlySummariesToCSV(summaries []models.MonthlySummary, csvFile string) error {
	if summaries == nil {
		return fmt.Errorf("cannot write nil monthly summaries to CSV")
	}
	rows := make([]monthlySummaryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = monthlySummaryRow{
			YearMonth:   s.YearMonth,
			CashIn:      s.CashIn.StringFixed(2),
			CashOut:     s.CashOut.StringFixed(2),
			NetCashFlow: s.NetCashFlow.StringFixed(2),
		}
	}
	return writeCSV(rows, csvFile)
}

// writeCSV marshals a row slice to a CSV file using gocsv with the
// configured delimiter. An empty slice produces a header-only file.
func writeCSV[TRow any](rows []TRow, csvFile string) error {
	log.Info("writing CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
