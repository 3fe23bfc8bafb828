// Package formula classifies spreadsheet formula text. The classifier is a
// pure function of its inputs: it decides whether a formula computes a sum
// and whether it represents a total/subtotal line.
package formula

import (
	"regexp"
	"strconv"
	"strings"

	"fjacquet/cashflow-insight/internal/models"
)

// summation function names, matched case-insensitively against the leading
// function call of a formula.
var sumFunctions = map[string]bool{
	"SUM":        true,
	"SUBTOTAL":   true,
	"SUMIF":      true,
	"SUMIFS":     true,
	"SUMPRODUCT": true,
}

var (
	functionNameRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*)\s*\(`)
	rangeRefRe     = regexp.MustCompile(`\$?([A-Za-z]{1,3})\$?(\d+)\s*:\s*\$?([A-Za-z]{1,3})\$?(\d+)`)
)

// Classifier decides the is_sum and is_total flags of a formula cell.
// Total keywords come from detection config so they stay data, not code.
type Classifier struct {
	totalKeywords []string
}

// NewClassifier creates a Classifier using the given total-indicating
// keywords (e.g. "total", "subtotal", "sum").
func NewClassifier(totalKeywords []string) *Classifier {
	return &Classifier{totalKeywords: totalKeywords}
}

// Classify builds the FormulaFact for one formula-bearing cell. cellRef is
// the cell's reference (e.g. "C12"), source the formula text with or without
// the leading "=", and label the cell's header or neighboring label text.
// Both flags may be true at once; neither implies the other.
func (c *Classifier) Classify(cellRef, source, label string) models.FormulaFact {
	normalized := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(source), "="))

	return models.FormulaFact{
		Cell:    cellRef,
		Formula: normalized,
		IsSum:   isSumFormula(normalized),
		IsTotal: spansMultipleCells(normalized) || c.labelIndicatesTotal(label),
	}
}

// isSumFormula reports whether the formula's function name is a summation
// operator, ignoring case and surrounding whitespace.
func isSumFormula(formula string) bool {
	m := functionNameRe.FindStringSubmatch(formula)
	if m == nil {
		return false
	}
	return sumFunctions[strings.ToUpper(m[1])]
}

// spansMultipleCells reports whether the formula references a range covering
// more than one row or column.
func spansMultipleCells(formula string) bool {
	for _, m := range rangeRefRe.FindAllStringSubmatch(formula, -1) {
		startCol := strings.ToUpper(m[1])
		endCol := strings.ToUpper(m[3])
		startRow, _ := strconv.Atoi(m[2])
		endRow, _ := strconv.Atoi(m[4])
		if startCol != endCol || startRow != endRow {
			return true
		}
	}
	return false
}

// labelIndicatesTotal reports whether the header/neighboring label carries a
// total-indicating keyword.
func (c *Classifier) labelIndicatesTotal(label string) bool {
	lowered := strings.ToLower(label)
	for _, kw := range c.totalKeywords {
		if kw != "" && strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
