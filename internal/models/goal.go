package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings goal with the amount saved towards it so far.
type Goal struct {
	DefaultModel
	Name   string
	Target decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Saved  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if !g.Target.IsPositive() {
		return ErrAmountNotPositive
	}

	if g.Saved.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}

// Export returns all goals for the backup export.
func (Goal) Export() (json.RawMessage, error) {
	var goals []Goal
	err := DB.Unscoped().Where(&Goal{}).Find(&goals).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&goals)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
