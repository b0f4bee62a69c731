package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Code    Code
	Message string

	// Detail is the underlying cause which is safe to show to clients.
	Detail string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) WithDetail(format string, a ...any) Error {
	e.Detail = fmt.Sprintf(format, a...)
	return e
}

// HTTPStatus returns the http status code for an error returned by domains. Errors which are not
// errorx.Error are considered as internal errors.
func HTTPStatus(err error) int {
	var errx Error
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	if status, ok := httpStatuses[errx.Code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
