package ledger

import (
	"strings"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Table holds the conversion rates to the base currency. Every rate is a
// direct multiplier to base, there is no transitive conversion.
type Table struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewTable returns a table containing only the base currency with a
// fixed rate of 1.
func NewTable(base string) *Table {
	base = normalizeCode(base)

	return &Table{
		base: base,
		rates: map[string]decimal.Decimal{
			base: decimal.New(1, 0),
		},
	}
}

// TableFromCurrencies builds a conversion table from currency rows.
func TableFromCurrencies(currencies []models.Currency) *Table {
	table := NewTable(models.BaseCurrencyCode)

	for _, currency := range currencies {
		if currency.Base {
			table.base = normalizeCode(currency.Code)
			table.rates[table.base] = decimal.New(1, 0)
			continue
		}

		// Rows are unique by code, AddRate can only fail here when a row
		// collides with the base code. That row is skipped.
		_ = table.AddRate(currency.Code, currency.Rate)
	}

	return table
}

// Base returns the base currency code.
func (t *Table) Base() string {
	return t.base
}

// Rates returns a copy of the rate mapping.
func (t *Table) Rates() map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal, len(t.rates))
	for code, rate := range t.rates {
		rates[code] = rate
	}

	return rates
}

// AddRate adds a conversion rate to the table.
func (t *Table) AddRate(code string, rate decimal.Decimal) error {
	code = normalizeCode(code)

	if _, ok := t.rates[code]; ok {
		return models.ErrDuplicateCurrencyCode
	}

	if !rate.IsPositive() {
		return models.ErrRateNotPositive
	}

	t.rates[code] = rate
	return nil
}

// RemoveRate removes a conversion rate from the table. The base currency
// is protected from removal.
func (t *Table) RemoveRate(code string) error {
	code = normalizeCode(code)

	if code == t.base {
		return models.ErrProtectedBaseCurrency
	}

	if _, ok := t.rates[code]; !ok {
		return models.ErrUnknownCurrency
	}

	delete(t.rates, code)
	return nil
}

// Convert normalizes an amount in the given currency to the base currency,
// rounded to cents.
func (t *Table) Convert(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	rate, ok := t.rates[normalizeCode(code)]
	if !ok {
		return decimal.Zero, models.ErrUnknownCurrency
	}

	return amount.Mul(rate).Round(2), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
