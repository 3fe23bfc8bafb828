// Package mapper merges the scanner's ranked candidates with an optional
// caller-supplied column selection into one finalized, validated mapping.
package mapper

import (
	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/models"
)

// FinalizeMapping merges an inferred mapping with explicit selections and
// validates the result. Explicit selections always win over inferred
// candidates. Unselected single-valued roles fall back to the top-ranked
// candidate; unselected cash roles fall back to the full candidate list,
// minus columns the scanner proposed for both cash directions (those are
// ambiguous and require explicit resolution) and minus columns the caller
// explicitly claimed for the opposite direction.
//
// The returned mapping carries exactly one project and one date column and
// at least one cash column, or a MappingIncompleteError naming every
// unresolved role. The input mapping is not mutated.
func FinalizeMapping(mapping models.ColumnMapping, selection models.ColumnSelection) (models.ColumnMapping, error) {
	final := models.ColumnMapping{
		Formulas: mapping.Formulas,
	}

	var missing []models.Role

	project := selection.Project
	if project == "" {
		project = mapping.Project()
	}
	if project == "" {
		missing = append(missing, models.RoleProject)
	} else {
		final.ProjectColumns = []string{project}
	}

	date := selection.Date
	if date == "" {
		date = mapping.Date()
	}
	if date == "" {
		missing = append(missing, models.RoleDate)
	} else {
		final.DateColumns = []string{date}
	}

	ambiguous := intersect(mapping.CashInColumns, mapping.CashOutColumns)

	final.CashInColumns = selection.CashIn
	if len(final.CashInColumns) == 0 {
		final.CashInColumns = exclude(mapping.CashInColumns, union(ambiguous, selection.CashOut))
	}

	final.CashOutColumns = selection.CashOut
	if len(final.CashOutColumns) == 0 {
		final.CashOutColumns = exclude(mapping.CashOutColumns, union(ambiguous, selection.CashIn))
	}

	if len(final.CashInColumns) == 0 && len(final.CashOutColumns) == 0 {
		missing = append(missing, models.RoleCashIn, models.RoleCashOut)
	}

	if len(missing) > 0 {
		return models.ColumnMapping{}, &analyzererror.MappingIncompleteError{Missing: missing}
	}

	return final, nil
}

// intersect returns the headers present in both lists, preserving the order
// of the first.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, h := range b {
		inB[h] = true
	}
	var out []string
	for _, h := range a {
		if inB[h] {
			out = append(out, h)
		}
	}
	return out
}

// union concatenates two header lists without deduplication; callers only
// use it as an exclusion set.
func union(a, b []string) []string {
	return append(append([]string{}, a...), b...)
}

// exclude returns the headers of list that are not in the exclusion set,
// preserving order.
func exclude(list, exclusions []string) []string {
	excluded := make(map[string]bool, len(exclusions))
	for _, h := range exclusions {
		excluded[h] = true
	}
	var out []string
	for _, h := range list {
		if !excluded[h] {
			out = append(out, h)
		}
	}
	return out
}
