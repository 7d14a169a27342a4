package ledger

import (
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Severity classifies how far a category's spending is into its limit.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityExceeded Severity = "exceeded"
)

// warningPercent is the percent-of-limit at which spending starts to warn.
var warningPercent = decimal.New(80, 0)

// exceededPercent is the percent-of-limit at which a limit counts as exceeded.
var exceededPercent = decimal.New(100, 0)

// Alert is the evaluation of one budget limit against one month's
// spending. Alerts are derived values and never persisted.
type Alert struct {
	Category  string          `json:"category" example:"Food"`
	Severity  Severity        `json:"severity" example:"warning"`
	Percent   decimal.Decimal `json:"percent" example:"85.2"`   // Spending as percent of the limit
	Spent     decimal.Decimal `json:"spent" example:"852.00"`   // Normalized spending of the month
	Threshold decimal.Decimal `json:"threshold" example:"1000"` // The configured limit
}

// EvaluateAlerts compares a month's per-category spending against the
// configured limits. It returns one alert per limit, in the order the
// limits are passed in. Notification delivery is up to the caller.
func EvaluateAlerts(summary PeriodSummary, limits []models.BudgetLimit) []Alert {
	alerts := make([]Alert, 0, len(limits))

	for _, limit := range limits {
		spent := summary.Categories[limit.Category]

		alert := Alert{
			Category:  limit.Category,
			Spent:     spent,
			Threshold: limit.Threshold,
		}

		// A limit of zero cannot be divided by. Any spending on it is
		// over the limit immediately.
		if limit.Threshold.IsZero() {
			if spent.IsPositive() {
				alert.Severity = SeverityExceeded
				alert.Percent = exceededPercent
			} else {
				alert.Severity = SeverityOK
				alert.Percent = decimal.Zero
			}

			alerts = append(alerts, alert)
			continue
		}

		percent := spent.Div(limit.Threshold).Mul(decimal.New(100, 0)).Round(2)
		alert.Percent = percent

		switch {
		case percent.GreaterThanOrEqual(exceededPercent):
			alert.Severity = SeverityExceeded
		case percent.GreaterThanOrEqual(warningPercent):
			alert.Severity = SeverityWarning
		default:
			alert.Severity = SeverityOK
		}

		alerts = append(alerts, alert)
	}

	return alerts
}
