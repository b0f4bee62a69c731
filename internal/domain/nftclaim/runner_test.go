package nftclaim

import (
	"context"
	"errors"
	"testing"

	"github.com/neftit-lab/backend/pkg/testutil"
	"github.com/neftit-lab/backend/pkg/wallet"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	name  string
	err   error
	calls int
}

func (s *fakeStrategy) Name() string {
	return s.name
}

func (s *fakeStrategy) Claim(ctx context.Context, req ClaimRequest) (*ClaimReceipt, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	return &ClaimReceipt{Strategy: s.name, TxHash: "0xabc"}, nil
}

func TestRunner_Run(t *testing.T) {
	ctx := testutil.MockContext()

	t.Run("falls back to the next strategy", func(t *testing.T) {
		first := &fakeStrategy{name: "a", err: errors.New("execution reverted")}
		second := &fakeStrategy{name: "b"}
		third := &fakeStrategy{name: "c"}

		receipt, err := NewRunner(first, second, third).Run(ctx, ClaimRequest{})
		require.NoError(t, err)
		require.Equal(t, "b", receipt.Strategy)
		require.Equal(t, 0, third.calls)
	})

	t.Run("aggregates all failures", func(t *testing.T) {
		first := &fakeStrategy{name: "a", err: errors.New("execution reverted")}
		second := &fakeStrategy{name: "b", err: errors.New("insufficient funds for gas")}

		_, err := NewRunner(first, second).Run(ctx, ClaimRequest{})
		var aggregate *AggregateError
		require.True(t, errors.As(err, &aggregate))
		require.Len(t, aggregate.Attempts, 2)
		require.Equal(t, "b", aggregate.Attempts[1].Strategy)
		require.Contains(t, err.Error(), "a: execution reverted")
	})

	t.Run("stops when the user rejects", func(t *testing.T) {
		first := &fakeStrategy{name: "a", err: wallet.NewError(wallet.CodeUserRejected, "User denied")}
		second := &fakeStrategy{name: "b"}

		_, err := NewRunner(first, second).Run(ctx, ClaimRequest{})
		require.Error(t, err)
		require.Equal(t, 0, second.calls)

		kind, _ := ClassifyError(err)
		require.Equal(t, ErrorUserRejected, kind)
	})

	t.Run("no strategy", func(t *testing.T) {
		_, err := NewRunner().Run(ctx, ClaimRequest{})
		require.Error(t, err)
	})
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
		wantMsg  string
	}{
		{name: "code 4001", err: wallet.NewError(4001, "denied"), wantKind: ErrorUserRejected, wantMsg: "Transaction was rejected by user"},
		{name: "user rejected text", err: errors.New("MetaMask: User rejected the request"), wantKind: ErrorUserRejected, wantMsg: "Transaction was rejected by user"},
		{name: "insufficient funds", err: errors.New("insufficient funds for gas * price + value"), wantKind: ErrorInsufficientFunds, wantMsg: "Insufficient funds for gas fees"},
		{name: "reverted", err: errors.New("execution reverted: !Qty"), wantKind: ErrorReverted, wantMsg: "Transaction failed - contract execution reverted"},
		{name: "unknown", err: errors.New("nonce too low"), wantKind: ErrorUnknown, wantMsg: "Failed to claim NFT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, msg := ClassifyError(tt.err)
			require.Equal(t, tt.wantKind, kind)
			require.Equal(t, tt.wantMsg, msg)
		})
	}
}
