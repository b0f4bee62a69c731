package nftclaim

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/neftit-lab/backend/internal/domain/chain"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

// Dialer connects the minter key to the NFT contract of a chain.
type Dialer struct {
	key *ecdsa.PrivateKey
}

func NewDialer(privateKeyHex string) (*Dialer, error) {
	if privateKeyHex == "" {
		return nil, errors.New("minter private key is not configured")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid minter private key: %w", err)
	}

	return &Dialer{key: key}, nil
}

// Dial returns the NFT contract of d through the first rpc endpoint that answers with the
// expected chain id.
func (d *Dialer) Dial(ctx context.Context, descriptor chain.ChainDescriptor) (ContractCaller, error) {
	if !common.IsHexAddress(descriptor.NFTContract) {
		return nil, fmt.Errorf("no nft contract on %s", descriptor.Network)
	}

	var lastErr error
	for _, url := range descriptor.RPCURLs {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}

		chainID, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			lastErr = err
			xcontext.Logger(ctx).Warnf("Rpc %s of %s is unhealthy: %v", url, descriptor.Network, err)
			continue
		}

		if chainID.Cmp(new(big.Int).SetUint64(descriptor.ChainID)) != 0 {
			client.Close()
			lastErr = fmt.Errorf("rpc %s serves chain %s, expected %d", url, chainID, descriptor.ChainID)
			continue
		}

		contract, err := NewContract(common.HexToAddress(descriptor.NFTContract), client, d.key, chainID)
		if err != nil {
			client.Close()
			return nil, err
		}

		return contract, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no rpc endpoint for %s", descriptor.Network)
	}

	return nil, lastErr
}
