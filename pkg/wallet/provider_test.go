package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

type fakeWallet struct {
	chainID uint64
	known   map[string]bool
	reject  bool
	added   []AddChainParams
}

type ethService struct{ w *fakeWallet }

func (s *ethService) ChainId() hexutil.Uint64 {
	return hexutil.Uint64(s.w.chainID)
}

type walletService struct{ w *fakeWallet }

func (s *walletService) SwitchEthereumChain(params map[string]string) error {
	if s.w.reject {
		return NewError(CodeUserRejected, "User rejected the request.")
	}

	if !s.w.known[params["chainId"]] {
		return NewError(CodeUnrecognizedChain, "Unrecognized chain ID %s", params["chainId"])
	}

	id, err := hexutil.DecodeUint64(params["chainId"])
	if err != nil {
		return err
	}

	s.w.chainID = id
	return nil
}

func (s *walletService) AddEthereumChain(params AddChainParams) error {
	s.w.added = append(s.w.added, params)
	s.w.known[params.ChainID] = true
	return s.SwitchEthereumChain(map[string]string{"chainId": params.ChainID})
}

func newProvider(t *testing.T, w *fakeWallet) *RPCProvider {
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", &ethService{w: w}))
	require.NoError(t, server.RegisterName("wallet", &walletService{w: w}))
	t.Cleanup(server.Stop)

	p := NewRPCProvider(rpc.DialInProc(server))
	t.Cleanup(p.Close)
	return p
}

func TestRPCProvider_SwitchChain(t *testing.T) {
	amoy := AddChainParams{
		ChainID:        "0x13882",
		ChainName:      "Polygon Amoy Testnet",
		RPCURLs:        []string{"https://rpc-amoy.polygon.technology/"},
		NativeCurrency: NativeCurrency{Name: "MATIC", Symbol: "MATIC", Decimals: 18},
	}

	tests := []struct {
		name        string
		wallet      *fakeWallet
		wantChainID uint64
		wantAdded   int
		wantCode    int
	}{
		{
			name:        "known chain",
			wallet:      &fakeWallet{chainID: 1, known: map[string]bool{"0x13882": true}},
			wantChainID: 80002,
		},
		{
			name:        "unknown chain is added",
			wallet:      &fakeWallet{chainID: 1, known: map[string]bool{}},
			wantChainID: 80002,
			wantAdded:   1,
		},
		{
			name:        "user rejected",
			wallet:      &fakeWallet{chainID: 1, known: map[string]bool{"0x13882": true}, reject: true},
			wantChainID: 1,
			wantCode:    CodeUserRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p := newProvider(t, tt.wallet)

			err := p.SwitchChain(ctx, amoy)
			if tt.wantCode != 0 {
				code, ok := CodeOf(err)
				require.True(t, ok)
				require.Equal(t, tt.wantCode, code)
				require.True(t, IsUserRejected(err))
			} else {
				require.NoError(t, err)
			}

			chainID, err := p.ChainID(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.wantChainID, chainID.Uint64())
			require.Len(t, tt.wallet.added, tt.wantAdded)
		})
	}
}

func TestIsUserRejected(t *testing.T) {
	require.False(t, IsUserRejected(nil))
	require.True(t, IsUserRejected(errors.New("User Rejected the request")))
	require.True(t, IsUserRejected(NewError(CodeUserRejected, "denied")))
	require.False(t, IsUserRejected(NewError(-32603, "internal error")))
}
