package normalizer

import (
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/cashflow-insight/internal/dateutils"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/models"
)

// Clean drops rows where both cash amounts are exactly zero (a transaction
// contributing nothing to either side is not informative), sorts the rest by
// date ascending with ties kept in original row order, and computes the net
// and running cumulative cash flow in that order.
//
// The cumulative flow is a single global running total across all projects
// combined; downstream charts plot one combined cumulative line. The output
// ordering is an invariant consumers depend on for correct cumulative
// values. Empty input yields an empty, valid output.
func Clean(transactions []models.Transaction) []models.CleanedTransaction {
	kept := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.CashIn.IsZero() && tx.CashOut.IsZero() {
			continue
		}
		kept = append(kept, tx)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return dateutils.CompareDates(kept[i].Date, kept[j].Date) < 0
	})

	cleaned := make([]models.CleanedTransaction, 0, len(kept))
	cumulative := decimal.Zero
	for _, tx := range kept {
		net := tx.CashIn.Sub(tx.CashOut)
		cumulative = cumulative.Add(net)
		cleaned = append(cleaned, models.CleanedTransaction{
			Project:            tx.Project,
			Date:               tx.Date,
			CashIn:             tx.CashIn,
			CashOut:            tx.CashOut,
			NetCashFlow:        net,
			CumulativeCashFlow: cumulative,
		})
	}

	if dropped := len(transactions) - len(kept); dropped > 0 {
		log.Debug("dropped no-op rows during cleaning",
			logging.Field{Key: logging.FieldDropped, Value: dropped})
	}

	return cleaned
}
