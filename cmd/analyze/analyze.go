// Package analyze implements the full-pipeline analysis command.
package analyze

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fjacquet/cashflow-insight/cmd/root"
	"fjacquet/cashflow-insight/internal/common"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/models"
	"fjacquet/cashflow-insight/internal/report"
	"fjacquet/cashflow-insight/internal/workbook"
	"fjacquet/cashflow-insight/pkg/analyzer"
)

var (
	sheet        string
	projectCol   string
	dateCol      string
	cashInCols   []string
	cashOutCols  []string
	reportFormat string
)

// Cmd represents the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a cash flow workbook",
	Long: `Analyze one sheet of the input workbook: infer the column mapping,
normalize the rows into a canonical transaction table and print the headline
insights. Column flags override the inferred mapping, exactly like manual
column selection in an interactive host.

With --output-dir, the cleaned transactions and both summary tables are
exported as CSV files.`,
	Run: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "Sheet to analyze (default: first sheet)")
	Cmd.Flags().StringVar(&projectCol, "project", "", "Header of the project/category column")
	Cmd.Flags().StringVar(&dateCol, "date", "", "Header of the date column")
	Cmd.Flags().StringSliceVar(&cashInCols, "cash-in", nil, "Headers of the cash-in columns")
	Cmd.Flags().StringSliceVar(&cashOutCols, "cash-out", nil, "Headers of the cash-out columns")
	Cmd.Flags().StringVar(&reportFormat, "format", "text", "Insights report format (text or json)")
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("No input file given, use --input")
	}

	source, err := workbook.Open(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error opening workbook: %v", err)
	}
	if closer, ok := source.(interface{ Close() error }); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	selection := models.ColumnSelection{
		Project: projectCol,
		Date:    dateCol,
		CashIn:  cashInCols,
		CashOut: cashOutCols,
	}

	a := analyzer.New(root.Cfg.Detection, logging.NewLogrusAdapterFromLogger(root.Log))
	result, err := a.Run(source, sheet, selection)
	if err != nil {
		root.Log.Fatalf("Analysis failed: %v", err)
	}

	logMapping(result.Mapping)
	if result.Stats.Dropped > 0 {
		root.Log.Warnf("Dropped %d of %d rows with uncoercible dates", result.Stats.Dropped, result.Stats.InputRows)
	}

	if result.Empty {
		root.Log.Warn("No usable transactions after cleaning, nothing to report")
		return
	}

	if root.SharedFlags.OutputDir != "" {
		if err := export(result, root.SharedFlags.OutputDir); err != nil {
			root.Log.Fatalf("Export failed: %v", err)
		}
	}

	generator := report.NewGenerator()
	rendered, err := generator.Generate(result.Insights, reportFormat)
	if err != nil {
		root.Log.Fatalf("Error rendering insights: %v", err)
	}
	fmt.Print(string(rendered))
}

// logMapping reports the finalized mapping so users can verify or override
// the inference.
func logMapping(mapping models.ColumnMapping) {
	root.Log.Infof("Project column: %s", mapping.Project())
	root.Log.Infof("Date column: %s", mapping.Date())
	root.Log.Infof("Cash-in columns: %v", mapping.CashInColumns)
	root.Log.Infof("Cash-out columns: %v", mapping.CashOutColumns)
	if len(mapping.Formulas) > 0 {
		root.Log.Debugf("Detected %d formula cells", len(mapping.Formulas))
	}
}

// export writes the cleaned transactions and both summary tables.
func export(result *analyzer.Result, dir string) error {
	if err := common.WriteCleanedTransactionsToCSV(result.Transactions, filepath.Join(dir, "transactions.csv")); err != nil {
		return err
	}
	if err := common.WriteProjectSummariesToCSV(result.Projects, filepath.Join(dir, "project_summary.csv")); err != nil {
		return err
	}
	return common.WriteMonthlySummariesToCSV(result.Months, filepath.Join(dir, "monthly_summary.csv"))
}
