package v4

import (
	"fmt"
	"time"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date time.Time `json:"date" example:"2024-01-31T00:00:00Z"` // Date of the transaction. Defaults to the current date

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Kind         models.TransactionKind `json:"kind" example:"expense"`                   // Direction of the transaction, "income" or "expense"
	CurrencyCode string                 `json:"currencyCode" example:"USD" default:""`    // Code of the currency the amount is denominated in
	Category     string                 `json:"category" example:"Food" default:""`       // Name of the category
	Description  string                 `json:"description" example:"Lunch" default:""`   // A note
	Recurrence   models.RecurrenceRule  `json:"recurrence" example:"monthly" default:"none"` // Recurrence rule. Anything other than "none" makes this transaction a template
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:         editable.Date,
		Amount:       editable.Amount,
		Kind:         editable.Kind,
		CurrencyCode: editable.CurrencyCode,
		Category:     editable.Category,
		Description:  editable.Description,
		Recurrence:   editable.Recurrence,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v4/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v4.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	OriginTemplateID *uuid.UUID       `json:"originTemplateId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the recurring template this instance was expanded from, if any
	Links            TransactionLinks `json:"links"`
}

// newTransaction returns the API v4 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:         model.Date,
			Amount:       model.Amount,
			Kind:         model.Kind,
			CurrencyCode: model.CurrencyCode,
			Category:     model.Category,
			Description:  model.Description,
			Recurrence:   model.Recurrence,
		},
		OriginTemplateID: model.OriginTemplateID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v4/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Date              time.Time              `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate          time.Time              `form:"fromDate" filterField:"false"`          // From this date. Time is ignored.
	UntilDate         time.Time              `form:"untilDate" filterField:"false"`         // Until this date. Time is ignored.
	Kind              models.TransactionKind `form:"kind"`                                  // Direction of the transaction
	Amount            decimal.Decimal        `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal        `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal        `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	CurrencyCode      string                 `form:"currency"`                              // Code of the currency
	Category          string                 `form:"category"`                              // Name of the category
	Description       string                 `form:"description" filterField:"false"`       // Description contains this string
	Recurrence        models.RecurrenceRule  `form:"recurrence"`                            // Recurrence rule
	Template          bool                   `form:"template" filterField:"false"`          // Only recurring templates (true) or only regular transactions (false)
	Offset            uint                   `form:"offset" filterField:"false"`            // The offset of the first Transaction returned. Defaults to 0.
	Limit             int                    `form:"limit" filterField:"false"`             // Maximum number of Transactions to return. Defaults to 50.
}

// model returns the database resource for the filter fields that gorm can
// match directly. String and date fields are handled in the controller.
func (f TransactionQueryFilter) model() models.Transaction {
	return TransactionEditable{
		Amount:       f.Amount,
		Kind:         f.Kind,
		CurrencyCode: f.CurrencyCode,
		Category:     f.Category,
		Recurrence:   f.Recurrence,
	}.model()
}
