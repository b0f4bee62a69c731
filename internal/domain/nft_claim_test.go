package domain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/internal/domain/chain"
	"github.com/neftit-lab/backend/internal/domain/nftclaim"
	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/internal/repository"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/testutil"
	"github.com/neftit-lab/backend/pkg/wallet"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x00000000000000000000000000000000000000AA"

type fakeContract struct {
	errs    map[string]error
	methods []string
}

func (c *fakeContract) Transact(ctx context.Context, method string, args ...any) (*ethtypes.Receipt, error) {
	c.methods = append(c.methods, method)
	if err := c.errs[method]; err != nil {
		return nil, err
	}

	return &ethtypes.Receipt{
		Status: ethtypes.ReceiptStatusSuccessful,
		TxHash: ethcommon.HexToHash("0xbeef"),
		Logs: []*ethtypes.Log{{
			Topics: []ethcommon.Hash{
				crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")),
				{},
				{},
				ethcommon.BigToHash(big.NewInt(42)),
			},
		}},
	}, nil
}

type fakeDialer struct {
	contract *fakeContract
	err      error
	dialed   []string
}

func (d *fakeDialer) Dial(ctx context.Context, descriptor chain.ChainDescriptor) (nftclaim.ContractCaller, error) {
	d.dialed = append(d.dialed, descriptor.Network)
	if d.err != nil {
		return nil, d.err
	}

	return d.contract, nil
}

func newNFTClaimDomain(
	t *testing.T, ctx context.Context, dialer *fakeDialer, publisher *testutil.MockPublisher,
) *nftClaimDomain {
	registry, err := chain.NewRegistry(config.ChainConfigs{
		DefaultNetwork: config.DefaultNetwork,
		Chains:         config.DefaultChains(),
	})
	require.NoError(t, err)

	return NewNFTClaimDomain(
		xcontext.Configs(ctx).Claim,
		registry,
		repository.NewNFTClaimRepository(),
		dialer,
		publisher,
	)
}

func claimRequest() *model.ClaimNFTRequest {
	return &model.ClaimNFTRequest{
		NFT:           model.NFTRecord{ID: "nft-1", Status: "offchain", AssignedChain: "Base"},
		WalletAddress: testWallet,
		MetadataURI:   "ipfs://meta",
	}
}

func Test_nftClaimDomain_Claim(t *testing.T) {
	ctx := testutil.MockContext()
	dialer := &fakeDialer{contract: &fakeContract{errs: map[string]error{
		"claim": errors.New("execution reverted: !Qty"),
	}}}
	publisher := &testutil.MockPublisher{}
	d := newNFTClaimDomain(t, ctx, dialer, publisher)

	resp, err := d.Claim(ctx, claimRequest())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "base-sepolia", resp.Network)
	require.Equal(t, nftclaim.StrategyMintTo, resp.Strategy)
	require.Equal(t, "42", resp.TokenID)
	require.Equal(t, "https://sepolia.basescan.org/tx/"+resp.TxHash, resp.ExplorerURL)
	require.Equal(t, []string{"claim", "lazyMint", "claim", "mintTo"}, dialer.contract.methods)
	require.Equal(t, []string{string(common.TopicNFTClaimed)}, publisher.Topics())

	claim, err := repository.NewNFTClaimRepository().GetByID(ctx, resp.ClaimID)
	require.NoError(t, err)
	require.Equal(t, entity.NFTClaimSucceeded, claim.Status)
	require.Equal(t, "0x00000000000000000000000000000000000000aa", claim.WalletAddress)

	_, err = d.Claim(ctx, claimRequest())
	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_nftClaimDomain_ClaimErrors(t *testing.T) {
	tests := []struct {
		name     string
		req      func() *model.ClaimNFTRequest
		dialer   *fakeDialer
		wantCode errorx.Code
	}{
		{
			name: "invalid wallet",
			req: func() *model.ClaimNFTRequest {
				req := claimRequest()
				req.WalletAddress = "alice"
				return req
			},
			dialer:   &fakeDialer{contract: &fakeContract{}},
			wantCode: errorx.BadRequest,
		},
		{
			name: "chain not detected",
			req: func() *model.ClaimNFTRequest {
				req := claimRequest()
				req.NFT = model.NFTRecord{ID: "nft-1", Status: "onchain"}
				return req
			},
			dialer:   &fakeDialer{contract: &fakeContract{}},
			wantCode: errorx.ChainNotDetected,
		},
		{
			name: "unknown network",
			req: func() *model.ClaimNFTRequest {
				req := claimRequest()
				req.NFT = model.NFTRecord{ID: "nft-1", Blockchain: "solana"}
				return req
			},
			dialer:   &fakeDialer{contract: &fakeContract{}},
			wantCode: errorx.ChainNotConfigured,
		},
		{
			name:     "dial failure",
			req:      claimRequest,
			dialer:   &fakeDialer{err: errors.New("connection refused")},
			wantCode: errorx.Unavailable,
		},
		{
			name: "user rejected",
			req:  claimRequest,
			dialer: &fakeDialer{contract: &fakeContract{errs: map[string]error{
				"claim": wallet.NewError(wallet.CodeUserRejected, "User denied transaction signature"),
			}}},
			wantCode: errorx.ClaimRejected,
		},
		{
			name: "insufficient funds everywhere",
			req:  claimRequest,
			dialer: &fakeDialer{contract: &fakeContract{errs: map[string]error{
				"claim":    errors.New("insufficient funds for gas * price + value"),
				"lazyMint": errors.New("insufficient funds for gas * price + value"),
				"mintTo":   errors.New("insufficient funds for gas * price + value"),
			}}},
			wantCode: errorx.ClaimInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			d := newNFTClaimDomain(t, ctx, tt.dialer, &testutil.MockPublisher{})

			_, err := d.Claim(ctx, tt.req())
			var errx errorx.Error
			require.True(t, errors.As(err, &errx))
			require.Equal(t, tt.wantCode, errx.Code)
		})
	}
}
