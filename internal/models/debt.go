package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Debt tracks money owed and the payments made against it.
type Debt struct {
	DefaultModel
	Name    string
	Initial decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Paid    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)

	if !d.Initial.IsPositive() {
		return ErrAmountNotPositive
	}

	if d.Paid.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}

// Remaining returns the amount still owed.
func (d Debt) Remaining() decimal.Decimal {
	return d.Initial.Sub(d.Paid)
}

// Export returns all debts for the backup export.
func (Debt) Export() (json.RawMessage, error) {
	var debts []Debt
	err := DB.Unscoped().Where(&Debt{}).Find(&debts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&debts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
