package domain

import (
	"context"

	"github.com/neftit-lab/backend/internal/domain/chain"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/enum"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

type ChainDomain interface {
	ResolveChain(context.Context, *model.ResolveChainRequest) (*model.ResolveChainResponse, error)
	PlanOperation(context.Context, *model.PlanOperationRequest) (*model.PlanOperationResponse, error)
	GetChains(context.Context, *model.GetChainsRequest) (*model.GetChainsResponse, error)
}

type chainDomain struct {
	registry *chain.Registry
}

func NewChainDomain(registry *chain.Registry) *chainDomain {
	return &chainDomain{registry: registry}
}

func (d *chainDomain) ResolveChain(
	ctx context.Context, req *model.ResolveChainRequest,
) (*model.ResolveChainResponse, error) {
	network, ok := chain.Resolve(ctx, req.NFT)
	if !ok {
		return nil, errorx.New(errorx.ChainNotDetected, "Could not determine chain for NFT")
	}

	descriptor, ok := d.registry.ByNetwork(network)
	if !ok {
		xcontext.Logger(ctx).Errorf("Resolved network %s of nft %s is not configured", network, req.NFT.ID)
		return nil, errorx.New(errorx.ChainNotConfigured, "Network %s is not configured", network)
	}

	return &model.ResolveChainResponse{Success: true, Chain: descriptor.Info()}, nil
}

func (d *chainDomain) PlanOperation(
	ctx context.Context, req *model.PlanOperationRequest,
) (*model.PlanOperationResponse, error) {
	operation, err := enum.ToEnum[model.OperationType](req.Operation)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid operation %q", req.Operation)
	}

	plan := chain.PlanForMany(ctx, req.NFTs, operation)
	if !plan.Success {
		switch plan.Reason {
		case model.SwitchReasonInvalidInput:
			return nil, errorx.New(errorx.BadRequest, "%s", plan.Message)
		case model.SwitchReasonDetection:
			return nil, errorx.New(errorx.ChainNotDetected, "%s", plan.Message)
		default:
			return nil, errorx.New(errorx.BadRequest, "%s", plan.Message)
		}
	}

	for _, network := range plan.Chains {
		if _, ok := d.registry.ByNetwork(network); !ok {
			return nil, errorx.New(errorx.ChainNotConfigured, "Network %s is not configured", network)
		}
	}

	return &model.PlanOperationResponse{
		Success: true,
		Message: plan.Message,
		Context: chain.NewOperationContext(ctx, operation, req.NFTs),
		Groups:  chain.GroupByChain(ctx, req.NFTs),
		Plan:    plan,
	}, nil
}

func (d *chainDomain) GetChains(
	ctx context.Context, req *model.GetChainsRequest,
) (*model.GetChainsResponse, error) {
	chains := []model.ChainInfo{}
	for _, network := range d.registry.Networks() {
		descriptor, _ := d.registry.ByNetwork(network)
		chains = append(chains, descriptor.Info())
	}

	return &model.GetChainsResponse{
		Success:        true,
		DefaultNetwork: d.registry.Default().Network,
		Chains:         chains,
	}, nil
}
