// Package analyzererror defines the error types surfaced by the analysis
// pipeline. Structural failures (unreadable source, incomplete mapping)
// abort an analysis; row-level failures are collected and reported without
// aborting; an empty dataset is a distinct non-fatal condition.
package analyzererror

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/cashflow-insight/internal/models"
)

// ErrEmptyDataset signals that cleaning left zero usable rows. Callers should
// render an empty state rather than treat this as a failure.
var ErrEmptyDataset = errors.New("no usable transactions after cleaning")

// MappingIncompleteError reports that the merged column mapping is missing
// one or more required roles.
type MappingIncompleteError struct {
	Missing []models.Role
}

func (e *MappingIncompleteError) Error() string {
	names := make([]string, len(e.Missing))
	for i, role := range e.Missing {
		names[i] = string(role)
	}
	return fmt.Sprintf("column mapping incomplete: no column resolved for role(s): %s",
		strings.Join(names, ", "))
}

// MissingRole reports whether the given role is among the missing ones.
func (e *MappingIncompleteError) MissingRole(role models.Role) bool {
	for _, r := range e.Missing {
		if r == role {
			return true
		}
	}
	return false
}

// RowCoercionError reports a per-row type coercion failure. These are
// recovered locally: the row is dropped and the error is accumulated for
// reporting, never propagated as a pipeline failure.
type RowCoercionError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *RowCoercionError) Error() string {
	return fmt.Sprintf("row %d: failed to coerce %s=%q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *RowCoercionError) Unwrap() error {
	return e.Err
}

// SourceError reports a workbook accessor failure. It is propagated,
// not recovered.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("unreadable source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
