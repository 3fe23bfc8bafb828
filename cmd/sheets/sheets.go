// Package sheets implements the sheet enumeration command.
package sheets

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/cashflow-insight/cmd/root"
	"fjacquet/cashflow-insight/internal/workbook"
)

// Cmd represents the sheets command.
var Cmd = &cobra.Command{
	Use:   "sheets",
	Short: "List the sheets of a workbook",
	Long:  `List the sheet names of the input workbook, in workbook order.`,
	Run:   sheetsFunc,
}

func sheetsFunc(cmd *cobra.Command, args []string) {
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

	names, err := source.ListSheets()
	if err != nil {
		root.Log.Fatalf("Error listing sheets: %v", err)
	}

	for _, name := range names {
		fmt.Println(name)
	}
}
