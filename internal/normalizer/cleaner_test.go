package normalizer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/cashflow-insight/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestCleanDropsZeroRows(t *testing.T) {
	transactions := []models.Transaction{
		{Project: "A", Date: day(1), CashIn: decimal.NewFromInt(100)},
		{Project: "B", Date: day(2)}, // both amounts zero
		{Project: "C", Date: day(3), CashOut: decimal.NewFromInt(50)},
	}

	cleaned := Clean(transactions)

	require.Len(t, cleaned, 2)
	assert.Equal(t, "A", cleaned[0].Project)
	assert.Equal(t, "C", cleaned[1].Project)
}

func TestCleanSortsByDateStable(t *testing.T) {
	transactions := []models.Transaction{
		{Project: "late", Date: day(5), CashIn: decimal.NewFromInt(1)},
		{Project: "first", Date: day(1), CashIn: decimal.NewFromInt(1)},
		{Project: "second", Date: day(1), CashIn: decimal.NewFromInt(1)},
	}

	cleaned := Clean(transactions)

	require.Len(t, cleaned, 3)
	// Ties keep original row order.
	assert.Equal(t, "first", cleaned[0].Project)
	assert.Equal(t, "second", cleaned[1].Project)
	assert.Equal(t, "late", cleaned[2].Project)
}

func TestCleanComputesNetAndCumulative(t *testing.T) {
	transactions := []models.Transaction{
		{Project: "A", Date: day(1), CashIn: decimal.NewFromInt(1000), CashOut: decimal.NewFromInt(200)},
		{Project: "B", Date: day(2), CashIn: decimal.NewFromInt(100), CashOut: decimal.NewFromInt(400)},
		{Project: "A", Date: day(3), CashIn: decimal.NewFromInt(50), CashOut: decimal.NewFromInt(50)},
	}

	cleaned := Clean(transactions)

	require.Len(t, cleaned, 3)
	assert.True(t, decimal.NewFromInt(800).Equal(cleaned[0].NetCashFlow))
	assert.True(t, decimal.NewFromInt(800).Equal(cleaned[0].CumulativeCashFlow))
	assert.True(t, decimal.NewFromInt(-300).Equal(cleaned[1].NetCashFlow))
	assert.True(t, decimal.NewFromInt(500).Equal(cleaned[1].CumulativeCashFlow))
	assert.True(t, cleaned[2].NetCashFlow.IsZero())
	assert.True(t, decimal.NewFromInt(500).Equal(cleaned[2].CumulativeCashFlow))
}

func TestCleanCumulativeIsGlobalAcrossProjects(t *testing.T) {
	// One combined running total, not one per project: the cumulative value
	// of each row equals the sum of all nets up to and including it.
	transactions := []models.Transaction{
		{Project: "A", Date: day(2), CashIn: decimal.NewFromInt(10)},
		{Project: "B", Date: day(1), CashIn: decimal.NewFromInt(5)},
		{Project: "A", Date: day(3), CashOut: decimal.NewFromInt(7)},
	}

	cleaned := Clean(transactions)

	require.Len(t, cleaned, 3)
	running := decimal.Zero
	for _, tx := range cleaned {
		running = running.Add(tx.NetCashFlow)
		assert.True(t, running.Equal(tx.CumulativeCashFlow))
	}
	assert.True(t, decimal.NewFromInt(8).Equal(cleaned[2].CumulativeCashFlow))
}

func TestCleanIsIdempotentOnOrdering(t *testing.T) {
	transactions := []models.Transaction{
		{Project: "B", Date: day(2), CashIn: decimal.NewFromInt(2)},
		{Project: "A", Date: day(1), CashIn: decimal.NewFromInt(1)},
	}

	first := Clean(transactions)
	second := Clean(transactions)

	assert.Equal(t, first, second)
}

func TestCleanEmptyInput(t *testing.T) {
	assert.Empty(t, Clean(nil))
	assert.Empty(t, Clean([]models.Transaction{}))
}
