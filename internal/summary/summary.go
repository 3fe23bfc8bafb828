// Package summary derives the per-project summary, per-month summary and
// headline insights from a cleaned transaction table. Each reduction is a
// single pass with a grouping accumulator; none of them mutate the input.
package summary

import (
	"sort"

	"fjacquet/cashflow-insight/internal/analyzererror"
	"fjacquet/cashflow-insight/internal/dateutils"
	"fjacquet/cashflow-insight/internal/models"
)

// Summarize computes the three aggregate structures from an ordered cleaned
// transaction table. An empty table is a valid input: it yields empty
// summaries, a zero-valued Insights and ErrEmptyDataset so callers can
// render an empty state instead of a misleading all-zero result.
func Summarize(transactions []models.CleanedTransaction) ([]models.ProjectSummary, []models.MonthlySummary, models.Insights, error) {
	if len(transactions) == 0 {
		return nil, nil, models.Insights{}, analyzererror.ErrEmptyDataset
	}

	projects := ProjectSummaries(transactions)
	months := MonthlySummaries(transactions)
	insights := buildInsights(transactions, projects, months)

	return projects, months, insights, nil
}

// ProjectSummaries groups transactions by project, summing both cash sides.
// Rows appear in order of each project's first occurrence in the cleaned
// table, which keeps results deterministic across runs; callers that want
// magnitude ordering for display use SortProjectSummariesByNet.
func ProjectSummaries(transactions []models.CleanedTransaction) []models.ProjectSummary {
	index := make(map[string]int)
	var summaries []models.ProjectSummary

	for _, tx := range transactions {
		i, ok := index[tx.Project]
		if !ok {
			i = len(summaries)
			index[tx.Project] = i
			summaries = append(summaries, models.ProjectSummary{Project: tx.Project})
		}
		summaries[i].TotalCashIn = summaries[i].TotalCashIn.Add(tx.CashIn)
		summaries[i].TotalCashOut = summaries[i].TotalCashOut.Add(tx.CashOut)
	}

	for i := range summaries {
		summaries[i].TotalNetCashFlow = summaries[i].TotalCashIn.Sub(summaries[i].TotalCashOut)
	}

	return summaries
}

// SortProjectSummariesByNet returns a copy ordered by net cash flow
// descending, for display purposes. The first-appearance ordering of
// ProjectSummaries remains the contract default.
func SortProjectSummariesByNet(summaries []models.ProjectSummary) []models.ProjectSummary {
	sorted := append([]models.ProjectSummary{}, summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalNetCashFlow.GreaterThan(sorted[j].TotalNetCashFlow)
	})
	return sorted
}

// MonthlySummaries groups transactions by calendar year-month, ordered
// chronologically.
func MonthlySummaries(transactions []models.CleanedTransaction) []models.MonthlySummary {
	index := make(map[string]int)
	var summaries []models.MonthlySummary

	for _, tx := range transactions {
		bucket := dateutils.YearMonth(tx.Date)
		i, ok := index[bucket]
		if !ok {
			i = len(summaries)
			index[bucket] = i
			summaries = append(summaries, models.MonthlySummary{YearMonth: bucket})
		}
		summaries[i].CashIn = summaries[i].CashIn.Add(tx.CashIn)
		summaries[i].CashOut = summaries[i].CashOut.Add(tx.CashOut)
	}

	for i := range summaries {
		summaries[i].NetCashFlow = summaries[i].CashIn.Sub(summaries[i].CashOut)
	}

	// The cleaned table is date-ascending, so buckets are discovered in
	// order already; the sort covers callers passing unordered input.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].YearMonth < summaries[j].YearMonth
	})

	return summaries
}

// buildInsights derives the flat headline record. Profitability extrema are
// taken over the project summaries with ties broken by first occurrence;
// months with a net of exactly zero count as neither positive nor negative.
func buildInsights(transactions []models.CleanedTransaction, projects []models.ProjectSummary, months []models.MonthlySummary) models.Insights {
	insights := models.Insights{
		TotalProjects: len(projects),
	}

	for _, p := range projects {
		insights.TotalCashIn = insights.TotalCashIn.Add(p.TotalCashIn)
		insights.TotalCashOut = insights.TotalCashOut.Add(p.TotalCashOut)
	}
	insights.TotalNetCashFlow = insights.TotalCashIn.Sub(insights.TotalCashOut)

	best, worst := projects[0], projects[0]
	for _, p := range projects[1:] {
		if p.TotalNetCashFlow.GreaterThan(best.TotalNetCashFlow) {
			best = p
		}
		if p.TotalNetCashFlow.LessThan(worst.TotalNetCashFlow) {
			worst = p
		}
	}
	insights.MostProfitableProject = best.Project
	insights.LeastProfitableProject = worst.Project

	start, end := transactions[0].Date, transactions[0].Date
	for _, tx := range transactions[1:] {
		if dateutils.CompareDates(tx.Date, start) < 0 {
			start = tx.Date
		}
		if dateutils.CompareDates(tx.Date, end) > 0 {
			end = tx.Date
		}
	}
	insights.DateRange = models.DateRange{Start: start, End: end}

	for _, m := range months {
		switch m.NetCashFlow.Sign() {
		case 1:
			insights.PositiveCashFlowMonths++
		case -1:
			insights.NegativeCashFlowMonths++
		}
	}

	return insights
}
