package remote

import (
	"errors"
	"fmt"
	"net/http"

	"tableflip.dev/taskdeck/pkg/record"
)

// Op is one of the four verbs the store supports.
type Op string

const (
	OpFetch  Op = "fetch"
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Method is the HTTP method used for op.
func (o Op) Method() string {
	switch o {
	case OpAdd:
		return http.MethodPost
	case OpUpdate:
		return http.MethodPut
	case OpDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// Want is the only status code treated as success for op.
func (o Op) Want() int {
	switch o {
	case OpAdd:
		return http.StatusCreated
	case OpDelete:
		return http.StatusNoContent
	default:
		return http.StatusOK
	}
}

// StatusError reports a response whose status was not the expected one.
type StatusError struct {
	Op         Op
	Collection record.Collection
	Code       int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to %s %s: %d %s", e.Op, e.Collection, e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var serr *StatusError
	return errors.As(err, &serr) && serr.Code == code
}
