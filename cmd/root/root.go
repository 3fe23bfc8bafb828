// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/cashflow-insight/internal/common"
	"fjacquet/cashflow-insight/internal/config"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/normalizer"
	"fjacquet/cashflow-insight/internal/store"
)

// CommonFlags represents the flags shared by multiple commands.
type CommonFlags struct {
	Input     string
	OutputDir string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, populated before any
	// command runs.
	Cfg *config.Config

	// SharedFlags holds flag values common to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "cashflow-insight",
		Short: "Analyze loosely structured cash flow spreadsheets.",
		Long: `cashflow-insight ingests a spreadsheet of financial transactions,
infers which columns hold the project, date, cash-in and cash-out values,
normalizes them into a canonical transaction table and derives per-project
summaries, monthly summaries and headline insights.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cashflow-insight!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}
)

// initConfig loads configuration, wires the configured logger through every
// package and merges any user keyword file into the detection config.
func initConfig() {
	cfg, err := config.InitializeConfig()
	if err != nil {
		Log.Fatalf("Failed to load configuration: %v", err)
	}
	Cfg = cfg

	Log = config.ConfigureLoggingFromConfig(cfg)
	logger := logging.NewLogrusAdapterFromLogger(Log)
	logging.SetDefaultLogger(logger)
	normalizer.SetLogger(logger)
	common.SetLogger(logger)
	store.SetLogger(logger)

	common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])

	keywords, err := store.NewKeywordStore("").Load()
	if err != nil {
		Log.Warnf("Failed to load detection keywords: %v", err)
	} else {
		keywords.ApplyTo(&Cfg.Detection)
	}
}

// Init initializes the root command's persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input workbook (.xlsx, .xlsm or .csv)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.OutputDir, "output-dir", "o", "", "Directory for exported CSV files")
}
