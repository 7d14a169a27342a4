package ledger

import (
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/internal/types"
	"github.com/shopspring/decimal"
)

// PeriodSummary is the aggregation of all transactions of one calendar
// month, normalized to the base currency. Summaries are never persisted,
// they are recomputed from the transaction set on every pass.
type PeriodSummary struct {
	Month      types.Month                `json:"month" example:"2006-05-01T00:00:00.000000Z"` // The month the summary covers
	Income     decimal.Decimal            `json:"income" example:"2317.34"`                    // Total income of the month
	Expense    decimal.Decimal            `json:"expense" example:"1133.70"`                   // Total expense of the month
	Categories map[string]decimal.Decimal `json:"categories"`                                  // Expense per category
}

// CategorySum returns the sum over the per-category expenses. It always
// equals Expense, see Aggregate.
func (s PeriodSummary) CategorySum() decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range s.Categories {
		sum = addCents(sum, amount)
	}

	return sum
}

// addCents adds two amounts and rounds the result to the nearest cent,
// half away from zero. Because every intermediate value is at cent
// precision, the sum is exact and independent of the order of addition:
// 0.1 + 0.2 is exactly 0.30.
func addCents(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Round(2)
}

// Aggregate groups transactions into per-month summaries. Amounts are
// normalized to the base currency with the conversion table before they
// are accumulated.
//
// The result is order independent: any permutation of the transaction set
// yields identical summaries. For every summary, the sum of the category
// mapping equals the expense total exactly.
func Aggregate(transactions []models.Transaction, table *Table) (map[types.Month]PeriodSummary, error) {
	summaries := make(map[types.Month]PeriodSummary)

	for _, transaction := range transactions {
		amount, err := table.Convert(transaction.Amount, transaction.CurrencyCode)
		if err != nil {
			return nil, err
		}

		month := types.MonthOf(transaction.Date.UTC())

		summary, ok := summaries[month]
		if !ok {
			summary = PeriodSummary{
				Month:      month,
				Categories: make(map[string]decimal.Decimal),
			}
		}

		switch transaction.Kind {
		case models.KindIncome:
			summary.Income = addCents(summary.Income, amount)
		default:
			summary.Expense = addCents(summary.Expense, amount)
			summary.Categories[transaction.Category] = addCents(summary.Categories[transaction.Category], amount)
		}

		summaries[month] = summary
	}

	return summaries, nil
}
