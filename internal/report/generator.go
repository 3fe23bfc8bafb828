// Package report renders the headline insights for human or machine
// consumption.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fjacquet/cashflow-insight/internal/dateutils"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/models"
)

// Generator renders Insights in the supported output formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{
		logger: logging.GetLogger().WithField("component", "report"),
	}
}

// Generate renders the insights in the given format ("json" or "text").
// It returns the rendered report or an error for unsupported formats.
func (g *Generator) Generate(insights models.Insights, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(insights)
	case "text":
		return g.generateText(insights), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateJSON renders the insights as indented JSON.
func (g *Generator) generateJSON(insights models.Insights) ([]byte, error) {
	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("failed to marshal insights report")
		return nil, fmt.Errorf("failed to marshal insights report: %w", err)
	}
	return data, nil
}

// generateText renders the insights as an aligned plain-text block.
func (g *Generator) generateText(insights models.Insights) []byte {
	var b strings.Builder

	performance := "Profitable"
	if insights.TotalNetCashFlow.Sign() < 0 {
		performance = "Loss-making"
	}

	fmt.Fprintf(&b, "Total Cash In:          %s\n", insights.TotalCashIn.StringFixed(2))
	fmt.Fprintf(&b, "Total Cash Out:         %s\n", insights.TotalCashOut.StringFixed(2))
	fmt.Fprintf(&b, "Net Cash Flow:          %s (%s)\n", insights.TotalNetCashFlow.StringFixed(2), performance)
	fmt.Fprintf(&b, "Projects:               %d\n", insights.TotalProjects)
	fmt.Fprintf(&b, "Most profitable:        %s\n", valueOrNA(insights.MostProfitableProject))
	fmt.Fprintf(&b, "Least profitable:       %s\n", valueOrNA(insights.LeastProfitableProject))
	fmt.Fprintf(&b, "Analysis period:        %s to %s\n",
		dateOrNA(insights.DateRange.Start), dateOrNA(insights.DateRange.End))
	fmt.Fprintf(&b, "Positive months:        %d\n", insights.PositiveCashFlowMonths)
	fmt.Fprintf(&b, "Negative months:        %d\n", insights.NegativeCashFlowMonths)

	return []byte(b.String())
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func dateOrNA(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return dateutils.ToISODate(t)
}
