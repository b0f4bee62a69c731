package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

const (
	// CodeUserRejected is returned when the user rejects a request in the wallet (EIP-1193).
	CodeUserRejected = 4001

	// CodeUnrecognizedChain is returned when the wallet does not know the requested chain.
	CodeUnrecognizedChain = 4902
)

// Error is an error returned by a wallet. It satisfies rpc.Error.
type Error struct {
	Code    int
	Message string
}

func NewError(code int, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) ErrorCode() int {
	return e.Code
}

// CodeOf returns the wallet error code carried by err, if any.
func CodeOf(err error) (int, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}

	return 0, false
}

// IsUserRejected reports whether err means that the user rejected the request.
func IsUserRejected(err error) bool {
	if err == nil {
		return false
	}

	if code, ok := CodeOf(err); ok && code == CodeUserRejected {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "reject")
}
