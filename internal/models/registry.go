package models

import "encoding/json"

// Model is implemented by all resources that support the backup export.
type Model interface {
	Export() (json.RawMessage, error)
}

// Registry contains all models with the names used in the export.
var Registry = map[string]Model{
	"Category":    Category{},
	"Currency":    Currency{},
	"Transaction": Transaction{},
	"BudgetLimit": BudgetLimit{},
	"Debt":        Debt{},
	"Goal":        Goal{},
}
