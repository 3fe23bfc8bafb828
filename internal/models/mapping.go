package models

// Role is a semantic meaning assigned to a raw column.
type Role string

// The four column roles the scanner classifies against.
const (
	RoleProject Role = "project"
	RoleDate    Role = "date"
	RoleCashIn  Role = "cash_in"
	RoleCashOut Role = "cash_out"
)

// FormulaFact records the classification of one formula-bearing cell.
// Immutable once computed.
type FormulaFact struct {
	Cell    string `json:"cell" yaml:"cell"`
	Formula string `json:"formula" yaml:"formula"`
	IsSum   bool   `json:"is_sum" yaml:"is_sum"`
	IsTotal bool   `json:"is_total" yaml:"is_total"`
}

// ColumnMapping holds the ranked candidate columns for each role, most
// likely first, plus every formula fact collected while scanning.
// A finalized mapping (the output of the mapper) has exactly one project
// and one date column and at least one cash column.
type ColumnMapping struct {
	ProjectColumns []string      `json:"project_columns"`
	DateColumns    []string      `json:"date_columns"`
	CashInColumns  []string      `json:"cash_in_columns"`
	CashOutColumns []string      `json:"cash_out_columns"`
	Formulas       []FormulaFact `json:"formulas,omitempty"`
}

// Project returns the resolved project column, or "" when none is ranked.
func (m ColumnMapping) Project() string {
	if len(m.ProjectColumns) == 0 {
		return ""
	}
	return m.ProjectColumns[0]
}

// Date returns the resolved date column, or "" when none is ranked.
func (m ColumnMapping) Date() string {
	if len(m.DateColumns) == 0 {
		return ""
	}
	return m.DateColumns[0]
}

// ColumnSelection carries explicit role assignments supplied by the caller,
// typically collected through a UI. Empty fields mean "no override";
// the mapper falls back to the scanner's candidates for those roles.
type ColumnSelection struct {
	Project string
	Date    string
	CashIn  []string
	CashOut []string
}

// IsZero reports whether the selection overrides nothing at all.
func (s ColumnSelection) IsZero() bool {
	return s.Project == "" && s.Date == "" && len(s.CashIn) == 0 && len(s.CashOut) == 0
}
