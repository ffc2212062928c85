package apierr

import (
	"fmt"
	"net/http"
)

const (
	CodeNotFound = "NOT_FOUND"
	CodeNoData   = "NO_DATA"
	CodeConflict = "CONFLICT"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

// NoData means the request was well-formed but the week held nothing to
// report: no studied guides, no unreported questions, or no question that
// accumulated two answers.
func NoData(err error) *Error {
	return New(http.StatusNotFound, CodeNoData, err)
}

func Conflict(err error) *Error {
	return New(http.StatusConflict, CodeConflict, err)
}
