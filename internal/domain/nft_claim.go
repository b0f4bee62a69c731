package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/internal/domain/chain"
	"github.com/neftit-lab/backend/internal/domain/nftclaim"
	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/internal/repository"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/pubsub"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ContractDialer interface {
	Dial(ctx context.Context, descriptor chain.ChainDescriptor) (nftclaim.ContractCaller, error)
}

type NFTClaimDomain interface {
	Claim(context.Context, *model.ClaimNFTRequest) (*model.ClaimNFTResponse, error)
}

type nftClaimDomain struct {
	cfg       config.ClaimConfigs
	registry  *chain.Registry
	claimRepo repository.NFTClaimRepository
	dialer    ContractDialer
	publisher pubsub.Publisher
}

func NewNFTClaimDomain(
	cfg config.ClaimConfigs,
	registry *chain.Registry,
	claimRepo repository.NFTClaimRepository,
	dialer ContractDialer,
	publisher pubsub.Publisher,
) *nftClaimDomain {
	if publisher == nil {
		publisher = pubsub.NopPublisher()
	}

	return &nftClaimDomain{
		cfg:       cfg,
		registry:  registry,
		claimRepo: claimRepo,
		dialer:    dialer,
		publisher: publisher,
	}
}

func (d *nftClaimDomain) Claim(
	ctx context.Context, req *model.ClaimNFTRequest,
) (*model.ClaimNFTResponse, error) {
	if !ethcommon.IsHexAddress(req.WalletAddress) {
		return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	if req.NFT.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "NFT ID is required")
	}

	if req.MetadataURI == "" {
		return nil, errorx.New(errorx.BadRequest, "Metadata URI is required")
	}

	network, ok := chain.Resolve(ctx, req.NFT)
	if !ok {
		return nil, errorx.New(errorx.ChainNotDetected, "Could not determine chain for NFT")
	}

	descriptor, ok := d.registry.ByNetwork(network)
	if !ok || descriptor.NFTContract == "" {
		return nil, errorx.New(errorx.ChainNotConfigured, "No NFT contract configured for %s", network)
	}

	wallet := strings.ToLower(req.WalletAddress)
	_, err := d.claimRepo.GetSucceeded(ctx, wallet, req.NFT.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "NFT already claimed by this wallet")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get claim of %s by %s: %v", req.NFT.ID, wallet, err)
		return nil, errorx.Unknown
	}

	claim := &entity.NFTClaim{
		Base:          entity.Base{ID: uuid.NewString()},
		NFTID:         req.NFT.ID,
		WalletAddress: wallet,
		Network:       network,
		Contract:      descriptor.NFTContract,
		MetadataURI:   req.MetadataURI,
		Status:        entity.NFTClaimPending,
	}
	if err := d.claimRepo.Create(ctx, claim); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create claim: %v", err)
		return nil, errorx.Unknown
	}

	contract, err := d.dialer.Dial(ctx, descriptor)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot dial nft contract of %s: %v", network, err)
		d.markFailed(ctx, claim.ID, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot connect to %s", descriptor.DisplayName)
	}

	strategies, err := nftclaim.StrategiesByName(contract, d.cfg.Strategies...)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid claim strategies: %v", err)
		d.markFailed(ctx, claim.ID, err)
		return nil, errorx.Unknown
	}

	runCtx := ctx
	if d.cfg.ReceiptTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.cfg.ReceiptTimeout)
		defer cancel()
	}

	receipt, err := nftclaim.NewRunner(strategies...).Run(runCtx, nftclaim.ClaimRequest{
		Receiver:    ethcommon.HexToAddress(req.WalletAddress),
		MetadataURI: req.MetadataURI,
	})
	if err != nil {
		d.markFailed(ctx, claim.ID, err)
		return nil, claimError(err)
	}

	err = d.claimRepo.UpdateByID(ctx, claim.ID, &entity.NFTClaim{
		Strategy: receipt.Strategy,
		TxHash:   receipt.TxHash,
		TokenID:  receipt.TokenID,
		Status:   entity.NFTClaimSucceeded,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update claim %s with tx %s: %v", claim.ID, receipt.TxHash, err)
	}

	event := model.NFTClaimedEvent{
		ClaimID:  claim.ID,
		NFTID:    claim.NFTID,
		Wallet:   wallet,
		Network:  network,
		TxHash:   receipt.TxHash,
		TokenID:  receipt.TokenID,
		Strategy: receipt.Strategy,
		At:       time.Now(),
	}
	if err := pubsub.Publish(ctx, d.publisher, common.TopicNFTClaimed, claim.ID, event); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish nft claimed event: %v", err)
	}

	resp := &model.ClaimNFTResponse{
		Success:  true,
		Message:  "NFT claimed successfully!",
		ClaimID:  claim.ID,
		Network:  network,
		Contract: descriptor.NFTContract,
		Strategy: receipt.Strategy,
		TxHash:   receipt.TxHash,
		TokenID:  receipt.TokenID,
	}
	if len(descriptor.ExplorerURLs) > 0 {
		resp.ExplorerURL = strings.TrimSuffix(descriptor.ExplorerURLs[0], "/") + "/tx/" + receipt.TxHash
	}

	return resp, nil
}

func (d *nftClaimDomain) markFailed(ctx context.Context, claimID string, cause error) {
	err := d.claimRepo.UpdateByID(ctx, claimID, &entity.NFTClaim{
		Status: entity.NFTClaimFailed,
		Error:  cause.Error(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark claim %s as failed: %v", claimID, err)
	}
}

func claimError(err error) error {
	kind, message := nftclaim.ClassifyError(err)
	switch kind {
	case nftclaim.ErrorUserRejected:
		return errorx.New(errorx.ClaimRejected, "%s", message)
	case nftclaim.ErrorInsufficientFunds:
		return errorx.New(errorx.ClaimInsufficientFunds, "%s", message)
	case nftclaim.ErrorReverted:
		return errorx.New(errorx.ClaimReverted, "%s", message).WithDetail("%v", err)
	default:
		return errorx.New(errorx.BadResponse, "%s", message).WithDetail("%v", err)
	}
}
