package normalizer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/models"
)

func standardMapping() models.ColumnMapping {
	return models.ColumnMapping{
		ProjectColumns: []string{"Project"},
		DateColumns:    []string{"Date"},
		CashInColumns:  []string{"Income"},
		CashOutColumns: []string{"Expenses"},
	}
}

func TestNormalize(t *testing.T) {
	table := models.NewRawTable(
		[]string{"Project", "Date", "Income", "Expenses"},
		[][]string{
			{"A", "2024-01-01", "1000", "200"},
			{"B", "2024-01-02", "CHF 1'500.50", "0"},
		},
	)

	transactions, stats := Normalize(table, standardMapping())

	require.Len(t, transactions, 2)
	assert.Equal(t, 2, stats.InputRows)
	assert.Zero(t, stats.Dropped)

	assert.Equal(t, "A", transactions[0].Project)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), transactions[0].Date)
	assert.True(t, decimal.NewFromInt(1000).Equal(transactions[0].CashIn))
	assert.True(t, decimal.NewFromInt(200).Equal(transactions[0].CashOut))

	assert.True(t, decimal.NewFromFloat(1500.50).Equal(transactions[1].CashIn))
	assert.True(t, transactions[1].CashOut.IsZero())
}

func TestNormalizeSignIsDirectionless(t *testing.T) {
	// Direction lives in the column, not in the sign: a -50 under the
	// cash-out column means 50 flowed out.
	table := models.NewRawTable(
		[]string{"Project", "Date", "Income", "Expenses"},
		[][]string{
			{"A", "2024-01-01", "-100", "-50"},
		},
	)

	transactions, _ := Normalize(table, standardMapping())

	require.Len(t, transactions, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(transactions[0].CashIn))
	assert.True(t, decimal.NewFromInt(50).Equal(transactions[0].CashOut))
}

func TestNormalizeDropsUnparseableDates(t *testing.T) {
	table := models.NewRawTable(
		[]string{"Project", "Date", "Income", "Expenses"},
		[][]string{
			{"A", "2024-01-01", "100", "0"},
			{"B", "N/A", "200", "0"},
			{"C", "", "300", "0"},
		},
	)

	transactions, stats := Normalize(table, standardMapping())

	require.Len(t, transactions, 1)
	assert.Equal(t, "A", transactions[0].Project)
	assert.Equal(t, 3, stats.InputRows)
	assert.Equal(t, 2, stats.Dropped)
	require.Len(t, stats.Errors, 2)

	var coercion *analyzererror.RowCoercionError
	require.ErrorAs(t, stats.Errors[0], &coercion)
	assert.Equal(t, 1, coercion.Row)
	assert.Equal(t, "Date", coercion.Field)
	assert.Equal(t, "N/A", coercion.Value)
}

func TestNormalizeEmptyProjectGetsSentinel(t *testing.T) {
	table := models.NewRawTable(
		[]string{"Project", "Date", "Income", "Expenses"},
		[][]string{
			{"", "2024-01-01", "100", "0"},
			{"   ", "2024-01-02", "200", "0"},
		},
	)

	transactions, _ := Normalize(table, standardMapping())

	require.Len(t, transactions, 2)
	assert.Equal(t, models.UnspecifiedProject, transactions[0].Project)
	assert.Equal(t, models.UnspecifiedProject, transactions[1].Project)
}

func TestNormalizeNonNumericCellsContributeZero(t *testing.T) {
	table := models.NewRawTable(
		[]string{"Project", "Date", "Income", "Expenses"},
		[][]string{
			{"A", "2024-01-01", "n/a", "-"},
		},
	)

	transactions, stats := Normalize(table, standardMapping())

	require.Len(t, transactions, 1)
	assert.Zero(t, stats.Dropped)
	assert.True(t, transactions[0].CashIn.IsZero())
	assert.True(t, transactions[0].CashOut.IsZero())
}

func TestNormalizeSumsMultipleCashColumns(t *testing.T) {
	mapping := standardMapping()
	mapping.CashInColumns = []string{"Sales", "Interest"}

	table := models.NewRawTable(
		[]string{"Project", "Date", "Sales", "Interest", "Expenses"},
		[][]string{
			{"A", "2024-01-01", "100", "25", "10"},
		},
	)

	transactions, _ := Normalize(table, mapping)

	require.Len(t, transactions, 1)
	assert.True(t, decimal.NewFromInt(125).Equal(transactions[0].CashIn))
}

func TestNormalizeEmptyTable(t *testing.T) {
	transactions, stats := Normalize(models.RawTable{}, standardMapping())

	assert.Empty(t, transactions)
	assert.Zero(t, stats.InputRows)
	assert.Empty(t, stats.Errors)
}
