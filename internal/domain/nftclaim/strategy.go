package nftclaim

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

const (
	StrategyDropClaim     = "drop_claim"
	StrategyLazyMintClaim = "lazy_mint_claim"
	StrategyMintTo        = "mint_to"
)

type ClaimRequest struct {
	Receiver    common.Address
	MetadataURI string
}

type ClaimReceipt struct {
	Strategy string
	TxHash   string
	TokenID  string
}

type Strategy interface {
	Name() string
	Claim(ctx context.Context, req ClaimRequest) (*ClaimReceipt, error)
}

// dropClaim claims one token for free from the active claim condition.
type dropClaim struct {
	contract ContractCaller
}

func NewDropClaim(contract ContractCaller) *dropClaim {
	return &dropClaim{contract: contract}
}

func (s *dropClaim) Name() string {
	return StrategyDropClaim
}

func (s *dropClaim) Claim(ctx context.Context, req ClaimRequest) (*ClaimReceipt, error) {
	receipt, err := s.contract.Transact(ctx, "claim",
		req.Receiver,
		big.NewInt(1),
		NativeCurrency,
		big.NewInt(0),
		AllowlistProof{
			Proof:                  [][32]byte{},
			QuantityLimitPerWallet: big.NewInt(0),
			PricePerToken:          big.NewInt(0),
			Currency:               NativeCurrency,
		},
		[]byte{},
	)
	if err != nil {
		return nil, err
	}

	return newClaimReceipt(s.Name(), receipt), nil
}

// lazyMintThenClaim lazy mints one token with the metadata uri and claims it.
type lazyMintThenClaim struct {
	contract ContractCaller
	claim    *dropClaim
}

func NewLazyMintThenClaim(contract ContractCaller) *lazyMintThenClaim {
	return &lazyMintThenClaim{contract: contract, claim: NewDropClaim(contract)}
}

func (s *lazyMintThenClaim) Name() string {
	return StrategyLazyMintClaim
}

func (s *lazyMintThenClaim) Claim(ctx context.Context, req ClaimRequest) (*ClaimReceipt, error) {
	if req.MetadataURI == "" {
		return nil, fmt.Errorf("metadata uri is required for lazy mint")
	}

	if _, err := s.contract.Transact(ctx, "lazyMint", big.NewInt(1), req.MetadataURI, []byte{}); err != nil {
		return nil, err
	}

	receipt, err := s.claim.Claim(ctx, req)
	if err != nil {
		return nil, err
	}

	receipt.Strategy = s.Name()
	return receipt, nil
}

type mintTo struct {
	contract ContractCaller
}

func NewMintTo(contract ContractCaller) *mintTo {
	return &mintTo{contract: contract}
}

func (s *mintTo) Name() string {
	return StrategyMintTo
}

func (s *mintTo) Claim(ctx context.Context, req ClaimRequest) (*ClaimReceipt, error) {
	receipt, err := s.contract.Transact(ctx, "mintTo", req.Receiver, req.MetadataURI)
	if err != nil {
		return nil, err
	}

	return newClaimReceipt(s.Name(), receipt), nil
}

// StrategiesByName builds the strategies named in names, in the same order. Unknown names are
// reported as an error.
func StrategiesByName(contract ContractCaller, names ...string) ([]Strategy, error) {
	strategies := []Strategy{}
	for _, name := range names {
		switch name {
		case StrategyDropClaim:
			strategies = append(strategies, NewDropClaim(contract))
		case StrategyLazyMintClaim:
			strategies = append(strategies, NewLazyMintThenClaim(contract))
		case StrategyMintTo:
			strategies = append(strategies, NewMintTo(contract))
		default:
			return nil, fmt.Errorf("unknown claim strategy %s", name)
		}
	}

	return strategies, nil
}

func newClaimReceipt(strategy string, receipt *ethtypes.Receipt) *ClaimReceipt {
	result := &ClaimReceipt{Strategy: strategy, TxHash: receipt.TxHash.Hex()}
	if tokenID, ok := MintedTokenID(receipt); ok {
		result.TokenID = tokenID
	}

	return result
}
