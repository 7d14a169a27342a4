package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BaseCurrencyCode is the currency all rates normalize against.
// It is seeded with a fixed rate of 1 and cannot be deleted.
const BaseCurrencyCode = "PHP"

// Currency is a currency with its direct multiplier to the base currency.
// There is no transitive conversion, every rate converts to base directly.
type Currency struct {
	DefaultModel
	Code string          `gorm:"uniqueIndex"`
	Rate decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Base bool
}

func (c *Currency) BeforeSave(_ *gorm.DB) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))

	if !c.Rate.IsPositive() {
		return ErrRateNotPositive
	}

	return nil
}

// BeforeDelete protects the base currency from deletion. All other
// rates are always expressed against it, removing it would orphan them.
func (c *Currency) BeforeDelete(tx *gorm.DB) error {
	var currency Currency
	err := tx.First(&currency, c.ID).Error
	if err != nil {
		return err
	}

	if currency.Base {
		return ErrProtectedBaseCurrency
	}

	return nil
}

// Export returns all currencies for the backup export.
func (Currency) Export() (json.RawMessage, error) {
	var currencies []Currency
	err := DB.Unscoped().Where(&Currency{}).Find(&currencies).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&currencies)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
