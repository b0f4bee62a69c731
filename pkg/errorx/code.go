package errorx

import "net/http"

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Chain codes
	ChainNotDetected   Code = 200001
	ChainNotConfigured Code = 200002

	// Claim codes
	ClaimRejected          Code = 300001
	ClaimInsufficientFunds Code = 300002
	ClaimReverted          Code = 300003
)

var httpStatuses = map[Code]int{
	BadRequest:             http.StatusBadRequest,
	BadResponse:            http.StatusInternalServerError,
	PermissionDenied:       http.StatusForbidden,
	NotFound:               http.StatusNotFound,
	Unauthenticated:        http.StatusUnauthorized,
	AlreadyExists:          http.StatusConflict,
	Internal:               http.StatusInternalServerError,
	Unavailable:            http.StatusServiceUnavailable,
	NotImplemented:         http.StatusNotImplemented,
	TooManyRequests:        http.StatusTooManyRequests,
	ChainNotDetected:       http.StatusUnprocessableEntity,
	ChainNotConfigured:     http.StatusInternalServerError,
	ClaimRejected:          http.StatusBadRequest,
	ClaimInsufficientFunds: http.StatusPaymentRequired,
	ClaimReverted:          http.StatusUnprocessableEntity,
}
