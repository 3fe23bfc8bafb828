package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerCapturesEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("loading sheet", Field{Key: FieldSheet, Value: "Budget"})
	mock.Warn("dropped rows")

	entries := mock.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "loading sheet", entries[0].Message)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, FieldSheet, entries[0].Fields[0].Key)
	assert.Equal(t, "WARN", entries[1].Level)
}

func TestMockLoggerDerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()

	derived := mock.WithField("component", "scanner")
	derived.Debug("sampling column")

	entries := mock.Entries()
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "component", entries[0].Fields[0].Key)
}

func TestMockLoggerWithErrorAttachesError(t *testing.T) {
	mock := NewMockLogger()
	cause := fmt.Errorf("boom")

	mock.WithError(cause).Error("failed to load")

	entries := mock.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, cause, entries[0].Error)
}

func TestLogrusAdapterImplementsLogger(t *testing.T) {
	var logger Logger = NewLogrusAdapter("debug", "json")

	derived := logger.WithField("component", "test").WithError(fmt.Errorf("x"))
	assert.NotNil(t, derived)
}
