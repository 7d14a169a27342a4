package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// Category is a spending category. Transactions and budget limits
// reference categories by name.
type Category struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Note     string
	Archived bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// Export returns all categories for the backup export.
func (Category) Export() (json.RawMessage, error) {
	var categories []Category
	err := DB.Unscoped().Where(&Category{}).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
