// Package exchange implements the CSV exchange format for the full
// dataset. Exports can be re-imported losslessly, materialized recurring
// instances excepted: they are regenerated by expansion, not stored.
package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Section marker lines. Each introduces a block with its own header row.
const (
	markerDebts      = "Debts:"
	markerGoals      = "Goals:"
	markerCurrencies = "Currencies:"
	markerLimits     = "Budget Limits:"
)

var (
	transactionHeader = []string{"Type", "Date", "Amount", "Currency", "Category", "Description", "Recurring"}
	debtHeader        = []string{"Name", "Initial", "Paid"}
	goalHeader        = []string{"Name", "Target", "Saved"}
	currencyHeader    = []string{"Code", "Rate", "Base"}
	limitHeader       = []string{"Category", "Threshold"}
)

const dateLayout = "2006-01-02"

// ErrMalformedRow is recorded for every import row that cannot be parsed.
// Malformed rows are skipped and counted, they never abort the import.
var ErrMalformedRow = errors.New("the row could not be parsed")

// Dataset is everything the exchange format covers.
type Dataset struct {
	Transactions []models.Transaction
	Debts        []models.Debt
	Goals        []models.Goal
	Currencies   []models.Currency
	Limits       []models.BudgetLimit
}

// ImportResult is a parsed dataset together with the number of rows that
// had to be skipped.
type ImportResult struct {
	Dataset Dataset
	Skipped int
}

// Export writes the dataset in the exchange format. Materialized
// recurring instances are left out, expansion regenerates them from
// their templates after an import.
func Export(w io.Writer, data Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(transactionHeader); err != nil {
		return err
	}

	for _, transaction := range data.Transactions {
		if transaction.OriginTemplateID != nil {
			continue
		}

		recurrence := transaction.Recurrence
		if recurrence == "" {
			recurrence = models.RecurrenceNone
		}

		err := writer.Write([]string{
			string(transaction.Kind),
			transaction.Date.In(time.UTC).Format(dateLayout),
			transaction.Amount.String(),
			transaction.CurrencyCode,
			transaction.Category,
			transaction.Description,
			string(recurrence),
		})
		if err != nil {
			return err
		}
	}

	if err := writer.Write([]string{markerDebts}); err != nil {
		return err
	}
	if err := writer.Write(debtHeader); err != nil {
		return err
	}
	for _, debt := range data.Debts {
		err := writer.Write([]string{debt.Name, debt.Initial.String(), debt.Paid.String()})
		if err != nil {
			return err
		}
	}

	if err := writer.Write([]string{markerGoals}); err != nil {
		return err
	}
	if err := writer.Write(goalHeader); err != nil {
		return err
	}
	for _, goal := range data.Goals {
		err := writer.Write([]string{goal.Name, goal.Target.String(), goal.Saved.String()})
		if err != nil {
			return err
		}
	}

	if err := writer.Write([]string{markerCurrencies}); err != nil {
		return err
	}
	if err := writer.Write(currencyHeader); err != nil {
		return err
	}
	for _, currency := range data.Currencies {
		err := writer.Write([]string{currency.Code, currency.Rate.String(), strconv.FormatBool(currency.Base)})
		if err != nil {
			return err
		}
	}

	if err := writer.Write([]string{markerLimits}); err != nil {
		return err
	}
	if err := writer.Write(limitHeader); err != nil {
		return err
	}
	for _, limit := range data.Limits {
		err := writer.Write([]string{limit.Category, limit.Threshold.String()})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Import parses the exchange format. Rows that cannot be parsed are
// skipped and counted individually, the import never aborts because of a
// single bad row.
func Import(r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)

	// The sectioned format mixes row widths, so no fixed field count.
	// Quote handling stays lenient for hand-edited files.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var result ImportResult

	// The file starts with the transactions block, its header row is
	// skipped like every section header.
	section := ""
	expectHeader := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		if len(record) == 1 {
			switch record[0] {
			case markerDebts, markerGoals, markerCurrencies, markerLimits:
				section = record[0]
				expectHeader = true
				continue
			}
		}

		if expectHeader {
			expectHeader = false
			continue
		}

		if err := parseRow(section, record, &result.Dataset); err != nil {
			result.Skipped++
		}
	}

	return result, nil
}

// parseRow parses one data row of the section it occurs in.
func parseRow(section string, record []string, data *Dataset) error {
	switch section {
	case markerDebts:
		if len(record) != len(debtHeader) {
			return fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, len(debtHeader), len(record))
		}

		initial, err := decimal.NewFromString(record[1])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		paid, err := decimal.NewFromString(record[2])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		data.Debts = append(data.Debts, models.Debt{Name: record[0], Initial: initial, Paid: paid})

	case markerGoals:
		if len(record) != len(goalHeader) {
			return fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, len(goalHeader), len(record))
		}

		target, err := decimal.NewFromString(record[1])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		saved, err := decimal.NewFromString(record[2])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		data.Goals = append(data.Goals, models.Goal{Name: record[0], Target: target, Saved: saved})

	case markerCurrencies:
		if len(record) != len(currencyHeader) {
			return fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, len(currencyHeader), len(record))
		}

		rate, err := decimal.NewFromString(record[1])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		base, err := strconv.ParseBool(record[2])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		data.Currencies = append(data.Currencies, models.Currency{Code: record[0], Rate: rate, Base: base})

	case markerLimits:
		if len(record) != len(limitHeader) {
			return fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, len(limitHeader), len(record))
		}

		threshold, err := decimal.NewFromString(record[1])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		data.Limits = append(data.Limits, models.BudgetLimit{Category: record[0], Threshold: threshold})

	default:
		transaction, err := parseTransactionRow(record)
		if err != nil {
			return err
		}

		data.Transactions = append(data.Transactions, transaction)
	}

	return nil
}

func parseTransactionRow(record []string) (models.Transaction, error) {
	if len(record) != len(transactionHeader) {
		return models.Transaction{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, len(transactionHeader), len(record))
	}

	kind := models.TransactionKind(record[0])
	if kind != models.KindIncome && kind != models.KindExpense {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrMalformedRow, models.ErrInvalidTransactionKind.Error())
	}

	date, err := time.Parse(dateLayout, record[1])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
	}

	amount, err := decimal.NewFromString(record[2])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
	}

	recurrence := models.RecurrenceRule(record[6])
	switch recurrence {
	case models.RecurrenceNone, models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
	default:
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrMalformedRow, models.ErrInvalidRecurrenceRule.Error())
	}

	return models.Transaction{
		Date:         date,
		Kind:         kind,
		Amount:       amount,
		CurrencyCode: record[3],
		Category:     record[4],
		Description:  record[5],
		Recurrence:   recurrence,
	}, nil
}
