package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnspecifiedProject is the sentinel label assigned to rows whose project
// cell is empty or whitespace-only.
const UnspecifiedProject = "Unspecified"

// Transaction is one row of the normalized table. Cash amounts are always
// non-negative; direction is carried by the field, not the sign. Row order
// is not meaningful until the cleaner has sorted the table.
type Transaction struct {
	Project string
	Date    time.Time
	CashIn  decimal.Decimal
	CashOut decimal.Decimal
}

// CleanedTransaction is a Transaction extended with the derived per-row
// fields. CumulativeCashFlow is a single global running total across all
// projects, valid only in the cleaner's date-ascending order.
type CleanedTransaction struct {
	Project            string          `json:"project"`
	Date               time.Time       `json:"date"`
	CashIn             decimal.Decimal `json:"cash_in"`
	CashOut            decimal.Decimal `json:"cash_out"`
	NetCashFlow        decimal.Decimal `json:"net_cash_flow"`
	CumulativeCashFlow decimal.Decimal `json:"cumulative_cash_flow"`
}

// ParseAmount parses a raw cell string into a decimal amount. It tolerates
// currency symbols, surrounding whitespace, thousand separators (comma or
// apostrophe) and a comma decimal separator. Accounting-style parentheses
// are read as a negative sign. An unparseable or empty string is an error;
// callers decide whether that means "contributes zero" or "not numeric".
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(raw)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(amount, "(") && strings.HasSuffix(amount, ")") {
		negative = true
		amount = amount[1 : len(amount)-1]
	}

	for _, sym := range []string{"CHF", "EUR", "USD", "$", "€", "£", " "} {
		amount = strings.ReplaceAll(amount, sym, "")
	}
	amount = strings.ReplaceAll(amount, "'", "")

	// A comma is a thousand separator when a dot is also present,
	// otherwise it is the decimal separator.
	if strings.Contains(amount, ",") {
		if strings.Contains(amount, ".") {
			amount = strings.ReplaceAll(amount, ",", "")
		} else {
			amount = strings.ReplaceAll(amount, ",", ".")
		}
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if negative {
		dec = dec.Neg()
	}
	return dec, nil
}
