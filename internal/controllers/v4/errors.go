package v4

import (
	"errors"
	"net/http"

	"github.com/esp046-cyber/budget-tracker/internal/ledger"
	"github.com/esp046-cyber/budget-tracker/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, ledger.ErrStoreWrite) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Month errors
var errMonthNotSetInQuery = errors.New("the month query parameter must be set")

// Recurrence errors
var errInvalidAsOf = errors.New("could not parse the asOf parameter, did you use YYYY-MM-DD format?")

// CSV errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports .csv files")
)
