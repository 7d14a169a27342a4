package httputil

import "errors"

var (
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data")
	ErrInvalidMonth     = errors.New("could not parse the specified month, did you use YYYY-MM format?")
)
