package nftclaim

import (
	"strings"

	"github.com/neftit-lab/backend/pkg/wallet"
)

type ErrorKind string

const (
	ErrorUserRejected      ErrorKind = "user_rejected"
	ErrorInsufficientFunds ErrorKind = "insufficient_funds"
	ErrorReverted          ErrorKind = "reverted"
	ErrorUnknown           ErrorKind = "unknown"
)

// ClassifyError maps a claim failure to its kind and a message to show to the user.
func ClassifyError(err error) (ErrorKind, string) {
	if err == nil {
		return "", ""
	}

	msg := strings.ToLower(err.Error())
	switch {
	case isUserRejected(err, msg):
		return ErrorUserRejected, "Transaction was rejected by user"
	case strings.Contains(msg, "insufficient funds"):
		return ErrorInsufficientFunds, "Insufficient funds for gas fees"
	case strings.Contains(msg, "execution reverted"):
		return ErrorReverted, "Transaction failed - contract execution reverted"
	default:
		return ErrorUnknown, "Failed to claim NFT"
	}
}

func isUserRejected(err error, msg string) bool {
	if code, ok := wallet.CodeOf(err); ok && code == wallet.CodeUserRejected {
		return true
	}

	return strings.Contains(msg, "user rejected")
}
