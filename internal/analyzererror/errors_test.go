package analyzererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/cashflow-insight/internal/models"
)

func TestMappingIncompleteError(t *testing.T) {
	err := &MappingIncompleteError{Missing: []models.Role{models.RoleDate, models.RoleCashIn}}

	assert.Contains(t, err.Error(), "date")
	assert.Contains(t, err.Error(), "cash_in")
	assert.True(t, err.MissingRole(models.RoleDate))
	assert.False(t, err.MissingRole(models.RoleProject))
}

func TestRowCoercionErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("not a date")
	err := &RowCoercionError{Row: 4, Field: "Date", Value: "N/A", Err: cause}

	assert.Contains(t, err.Error(), "row 4")
	assert.Contains(t, err.Error(), `"N/A"`)
	assert.ErrorIs(t, err, cause)
}

func TestSourceErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("file missing")
	err := &SourceError{Source: "book.xlsx", Err: cause}

	assert.Contains(t, err.Error(), "book.xlsx")
	assert.ErrorIs(t, err, cause)
}

func TestErrEmptyDatasetIsSentinel(t *testing.T) {
	wrapped := fmt.Errorf("summarize: %w", ErrEmptyDataset)

	require.True(t, errors.Is(wrapped, ErrEmptyDataset))
}
