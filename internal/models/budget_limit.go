package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetLimit is the configured maximum expense for a category per
// calendar month. At most one limit exists per category.
//
// Position preserves the configuration order, alerts are evaluated
// and returned in this order.
type BudgetLimit struct {
	DefaultModel
	Category  string          `gorm:"uniqueIndex"`
	Threshold decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Position  uint
}

func (l *BudgetLimit) BeforeSave(tx *gorm.DB) error {
	l.Category = strings.TrimSpace(l.Category)

	if l.Threshold.IsNegative() {
		return ErrThresholdNegative
	}

	var count int64
	err := tx.Model(&Category{}).Where(&Category{Name: l.Category}).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownCategory
	}

	return nil
}

// BeforeCreate appends new limits at the end of the configuration order.
func (l *BudgetLimit) BeforeCreate(tx *gorm.DB) error {
	err := l.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if l.Position == 0 {
		var count int64
		err = tx.Model(&BudgetLimit{}).Count(&count).Error
		if err != nil {
			return err
		}
		l.Position = uint(count) + 1
	}

	return nil
}

// Export returns all budget limits for the backup export.
func (BudgetLimit) Export() (json.RawMessage, error) {
	var limits []BudgetLimit
	err := DB.Unscoped().Where(&BudgetLimit{}).Find(&limits).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&limits)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
