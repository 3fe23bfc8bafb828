package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/models"
)

func tx(project string, date time.Time, in, out int64) models.CleanedTransaction {
	cashIn := decimal.NewFromInt(in)
	cashOut := decimal.NewFromInt(out)
	return models.CleanedTransaction{
		Project:     project,
		Date:        date,
		CashIn:      cashIn,
		CashOut:     cashOut,
		NetCashFlow: cashIn.Sub(cashOut),
	}
}

func jan(d int) time.Time   { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
func feb(d int) time.Time   { return time.Date(2024, time.February, d, 0, 0, 0, 0, time.UTC) }
func march(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }

func TestSummarizeTwoProjects(t *testing.T) {
	transactions := []models.CleanedTransaction{
		tx("A", jan(10), 10000, 2000),
		tx("B", jan(20), 3000, 4000),
		tx("A", feb(5), 5000, 1000),
	}

	projects, months, insights, err := Summarize(transactions)
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.Equal(t, "A", projects[0].Project)
	assert.True(t, decimal.NewFromInt(15000).Equal(projects[0].TotalCashIn))
	assert.True(t, decimal.NewFromInt(3000).Equal(projects[0].TotalCashOut))
	assert.True(t, decimal.NewFromInt(12000).Equal(projects[0].TotalNetCashFlow))
	assert.Equal(t, "B", projects[1].Project)
	assert.True(t, decimal.NewFromInt(-1000).Equal(projects[1].TotalNetCashFlow))

	require.Len(t, months, 2)
	assert.Equal(t, "2024-01", months[0].YearMonth)
	assert.True(t, decimal.NewFromInt(7000).Equal(months[0].NetCashFlow))
	assert.Equal(t, "2024-02", months[1].YearMonth)
	assert.True(t, decimal.NewFromInt(4000).Equal(months[1].NetCashFlow))

	assert.True(t, decimal.NewFromInt(11000).Equal(insights.TotalNetCashFlow))
	assert.Equal(t, 2, insights.TotalProjects)
	assert.Equal(t, "A", insights.MostProfitableProject)
	assert.Equal(t, "B", insights.LeastProfitableProject)
	assert.Equal(t, jan(10), insights.DateRange.Start)
	assert.Equal(t, feb(5), insights.DateRange.End)
	assert.Equal(t, 2, insights.PositiveCashFlowMonths)
	assert.Equal(t, 0, insights.NegativeCashFlowMonths)
}

func TestSummarizeConservation(t *testing.T) {
	// The same totals must come out of the transaction table, the project
	// summaries and the monthly summaries.
	transactions := []models.CleanedTransaction{
		tx("A", jan(1), 120, 30),
		tx("B", jan(15), 0, 75),
		tx("Unspecified", feb(2), 40, 0),
		tx("A", march(9), 10, 10),
	}

	projects, months, insights, err := Summarize(transactions)
	require.NoError(t, err)

	var txNet, projectNet, monthNet decimal.Decimal
	for _, tr := range transactions {
		txNet = txNet.Add(tr.CashIn.Sub(tr.CashOut))
	}
	for _, p := range projects {
		projectNet = projectNet.Add(p.TotalNetCashFlow)
	}
	for _, m := range months {
		monthNet = monthNet.Add(m.NetCashFlow)
	}

	assert.True(t, txNet.Equal(projectNet))
	assert.True(t, txNet.Equal(monthNet))
	assert.True(t, txNet.Equal(insights.TotalNetCashFlow))
}

func TestSummarizeEmptyDataset(t *testing.T) {
	projects, months, insights, err := Summarize(nil)

	assert.ErrorIs(t, err, analyzererror.ErrEmptyDataset)
	assert.Nil(t, projects)
	assert.Nil(t, months)
	assert.Equal(t, models.Insights{}, insights)
}

func TestProjectSummariesFirstAppearanceOrder(t *testing.T) {
	transactions := []models.CleanedTransaction{
		tx("Zeta", jan(1), 10, 0),
		tx("Alpha", jan(2), 20, 0),
		tx("Zeta", jan(3), 30, 0),
	}

	summaries := ProjectSummaries(transactions)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Zeta", summaries[0].Project)
	assert.Equal(t, "Alpha", summaries[1].Project)
	assert.True(t, decimal.NewFromInt(40).Equal(summaries[0].TotalCashIn))
}

func TestSortProjectSummariesByNet(t *testing.T) {
	summaries := []models.ProjectSummary{
		{Project: "small", TotalNetCashFlow: decimal.NewFromInt(1)},
		{Project: "big", TotalNetCashFlow: decimal.NewFromInt(100)},
		{Project: "loss", TotalNetCashFlow: decimal.NewFromInt(-5)},
	}

	sorted := SortProjectSummariesByNet(summaries)

	assert.Equal(t, "big", sorted[0].Project)
	assert.Equal(t, "small", sorted[1].Project)
	assert.Equal(t, "loss", sorted[2].Project)
	// Input order untouched.
	assert.Equal(t, "small", summaries[0].Project)
}

func TestInsightsTiesKeepFirstOccurrence(t *testing.T) {
	transactions := []models.CleanedTransaction{
		tx("First", jan(1), 100, 0),
		tx("Second", jan(2), 100, 0),
	}

	_, _, insights, err := Summarize(transactions)
	require.NoError(t, err)

	assert.Equal(t, "First", insights.MostProfitableProject)
	assert.Equal(t, "First", insights.LeastProfitableProject)
}

func TestInsightsSingleProject(t *testing.T) {
	transactions := []models.CleanedTransaction{
		tx("Only", jan(1), 50, 80),
	}

	_, _, insights, err := Summarize(transactions)
	require.NoError(t, err)

	assert.Equal(t, "Only", insights.MostProfitableProject)
	assert.Equal(t, "Only", insights.LeastProfitableProject)
	assert.Equal(t, 1, insights.TotalProjects)
	assert.Equal(t, 0, insights.PositiveCashFlowMonths)
	assert.Equal(t, 1, insights.NegativeCashFlowMonths)
}

func TestInsightsZeroNetMonthCountsNeither(t *testing.T) {
	transactions := []models.CleanedTransaction{
		tx("A", jan(1), 100, 100),
		tx("A", feb(1), 10, 0),
	}

	_, _, insights, err := Summarize(transactions)
	require.NoError(t, err)

	assert.Equal(t, 1, insights.PositiveCashFlowMonths)
	assert.Equal(t, 0, insights.NegativeCashFlowMonths)
}

func TestMonthlySummariesOrdersUnorderedInput(t *testing.T) {
	transactions := []models.CleanedTransaction{
		tx("A", march(1), 30, 0),
		tx("A", jan(1), 10, 0),
		tx("A", feb(1), 20, 0),
	}

	months := MonthlySummaries(transactions)

	require.Len(t, months, 3)
	assert.Equal(t, "2024-01", months[0].YearMonth)
	assert.Equal(t, "2024-02", months[1].YearMonth)
	assert.Equal(t, "2024-03", months[2].YearMonth)
}
