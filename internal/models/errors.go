package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors surfaced on resource creation or update. They always
// reject the mutation as a whole, nothing is partially applied.
var (
	ErrAmountNotPositive      = errors.New("amounts must be larger than zero")
	ErrInvalidTransactionKind = errors.New("the transaction kind must be income or expense")
	ErrInvalidRecurrenceRule  = errors.New("the recurrence rule must be one of none, daily, weekly, monthly")
	ErrUnknownCategory        = errors.New("no category with this name exists")
	ErrUnknownCurrency        = errors.New("no currency with this code exists")
	ErrDuplicateCurrencyCode  = errors.New("a currency with this code already exists")
	ErrRateNotPositive        = errors.New("currency rates must be larger than zero")
	ErrProtectedBaseCurrency  = errors.New("the base currency cannot be deleted")
	ErrThresholdNegative      = errors.New("budget limit thresholds must not be negative")
	ErrCategoryNameNotUnique  = errors.New("a category with this name already exists")
	ErrLimitCategoryNotUnique = errors.New("a budget limit for this category already exists")
	ErrInstanceNotUnique      = errors.New("an instance of this template already exists for this date")
)
