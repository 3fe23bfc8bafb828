package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectSummary aggregates all cleaned transactions of one project.
type ProjectSummary struct {
	Project          string          `json:"project"`
	TotalCashIn      decimal.Decimal `json:"total_cash_in"`
	TotalCashOut     decimal.Decimal `json:"total_cash_out"`
	TotalNetCashFlow decimal.Decimal `json:"total_net_cash_flow"`
}

// MonthlySummary aggregates all cleaned transactions of one calendar month.
// YearMonth is the bucket key in "2006-01" form.
type MonthlySummary struct {
	YearMonth   string          `json:"year_month"`
	CashIn      decimal.Decimal `json:"cash_in"`
	CashOut     decimal.Decimal `json:"cash_out"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow"`
}

// DateRange is the inclusive span covered by the cleaned transactions.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Insights is the flat headline record derived from the summaries and the
// cleaned table. Zero-valued when the dataset is empty.
type Insights struct {
	TotalCashIn            decimal.Decimal `json:"total_cash_in"`
	TotalCashOut           decimal.Decimal `json:"total_cash_out"`
	TotalNetCashFlow       decimal.Decimal `json:"total_net_cash_flow"`
	TotalProjects          int             `json:"total_projects"`
	MostProfitableProject  string          `json:"most_profitable_project"`
	LeastProfitableProject string          `json:"least_profitable_project"`
	DateRange              DateRange       `json:"date_range"`
	PositiveCashFlowMonths int             `json:"positive_cash_flow_months"`
	NegativeCashFlowMonths int             `json:"negative_cash_flow_months"`
}
