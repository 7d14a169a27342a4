package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind is the direction of a transaction.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// RecurrenceRule is the cadence a recurring transaction template repeats with.
type RecurrenceRule string

const (
	RecurrenceNone    RecurrenceRule = "none"
	RecurrenceDaily   RecurrenceRule = "daily"
	RecurrenceWeekly  RecurrenceRule = "weekly"
	RecurrenceMonthly RecurrenceRule = "monthly"
)

// Transaction represents a single income or expense entry.
//
// A transaction with a recurrence rule other than "none" acts as its own
// template: its date is the anchor that recurrence expansion advances from.
// Materialized instances reference the template through OriginTemplateID
// and are unique per (template, date).
type Transaction struct {
	DefaultModel
	Date             time.Time `gorm:"uniqueIndex:transaction_origin_date"`
	Kind             TransactionKind
	Amount           decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrencyCode     string
	Category         string
	Description      string
	Recurrence       RecurrenceRule
	OriginTemplateID *uuid.UUID `gorm:"uniqueIndex:transaction_origin_date"`
}

// IsTemplate reports whether the transaction is a recurring template.
func (t Transaction) IsTemplate() bool {
	return t.Recurrence != RecurrenceNone && t.Recurrence != ""
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave validates the transaction and normalizes its fields:
//   - the amount must be positive
//   - kind and recurrence rule must be known values
//   - the category and currency must exist
//   - the date is set to UTC, defaulting to now
func (t *Transaction) BeforeSave(tx *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.CurrencyCode = strings.ToUpper(strings.TrimSpace(t.CurrencyCode))

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.Kind != KindIncome && t.Kind != KindExpense {
		return ErrInvalidTransactionKind
	}

	if t.Recurrence == "" {
		t.Recurrence = RecurrenceNone
	}

	switch t.Recurrence {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return ErrInvalidRecurrenceRule
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	var count int64
	err = tx.Model(&Category{}).Where(&Category{Name: t.Category}).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownCategory
	}

	err = tx.Model(&Currency{}).Where(&Currency{Code: t.CurrencyCode}).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownCurrency
	}

	return nil
}

// Export returns all transactions for the backup export.
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
