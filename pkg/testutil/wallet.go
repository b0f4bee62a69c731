package testutil

import (
	"context"
	"errors"
	"math/big"

	"github.com/neftit-lab/backend/pkg/wallet"
)

type MockWalletProvider struct {
	ChainIDFunc     func(ctx context.Context) (*big.Int, error)
	SwitchChainFunc func(ctx context.Context, params wallet.AddChainParams) error
}

func (m *MockWalletProvider) ChainID(ctx context.Context) (*big.Int, error) {
	if m.ChainIDFunc != nil {
		return m.ChainIDFunc(ctx)
	}

	return nil, errors.New("not implemented")
}

func (m *MockWalletProvider) SwitchChain(ctx context.Context, params wallet.AddChainParams) error {
	if m.SwitchChainFunc != nil {
		return m.SwitchChainFunc(ctx, params)
	}

	return errors.New("not implemented")
}

// StubWallet returns a wallet starting on chainID which switches to any requested chain.
func StubWallet(chainID uint64) *MockWalletProvider {
	current := new(big.Int).SetUint64(chainID)
	return &MockWalletProvider{
		ChainIDFunc: func(ctx context.Context) (*big.Int, error) {
			return new(big.Int).Set(current), nil
		},
		SwitchChainFunc: func(ctx context.Context, params wallet.AddChainParams) error {
			id, ok := new(big.Int).SetString(params.ChainID, 0)
			if !ok {
				return errors.New("invalid chain id")
			}

			current = id
			return nil
		},
	}
}
