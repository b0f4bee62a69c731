package wallet

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// AddChainParams is the parameter of wallet_addEthereumChain (EIP-3085).
type AddChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
}

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

type switchChainParams struct {
	ChainID string `json:"chainId"`
}

// RPCProvider talks to a wallet through its json-rpc interface.
type RPCProvider struct {
	client *rpc.Client
}

func Dial(ctx context.Context, url string) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}

	return &RPCProvider{client: client}, nil
}

func NewRPCProvider(client *rpc.Client) *RPCProvider {
	return &RPCProvider{client: client}
}

func (p *RPCProvider) ChainID(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if err := p.client.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return nil, err
	}

	return (*big.Int)(&result), nil
}

// SwitchChain asks the wallet to switch to the chain. If the wallet does not know the chain, it
// is asked to add it, which also switches to it.
func (p *RPCProvider) SwitchChain(ctx context.Context, params AddChainParams) error {
	err := p.client.CallContext(ctx, nil, "wallet_switchEthereumChain",
		switchChainParams{ChainID: params.ChainID})
	if err == nil {
		return nil
	}

	if code, ok := CodeOf(err); !ok || code != CodeUnrecognizedChain {
		return err
	}

	if err := p.client.CallContext(ctx, nil, "wallet_addEthereumChain", params); err != nil {
		return errors.Join(ErrAddChain, err)
	}

	return nil
}

var ErrAddChain = errors.New("cannot add chain to wallet")

func (p *RPCProvider) Close() {
	p.client.Close()
}
