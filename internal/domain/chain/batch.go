package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// NewOperationContext collects the chains an operation over nfts touches. Offchain NFTs of a
// burn do not touch any chain.
func NewOperationContext(
	ctx context.Context, operation model.OperationType, nfts []model.NFTRecord,
) model.ClaimOperationContext {
	opCtx := model.ClaimOperationContext{
		Operation: operation,
		NFTs:      nfts,
		Chains:    []string{},
	}

	for _, group := range groupByChain(ctx, nfts, operation == model.OperationBurn) {
		opCtx.Chains = append(opCtx.Chains, group.Network)
	}

	return opCtx
}

// GroupByChain groups the NFTs with status onchain by their resolved network, in first-seen
// order. NFTs whose chain cannot be resolved are left out.
func GroupByChain(ctx context.Context, nfts []model.NFTRecord) []model.ChainGroup {
	return groupByChain(ctx, nfts, true)
}

func groupByChain(ctx context.Context, nfts []model.NFTRecord, onchainOnly bool) []model.ChainGroup {
	groups := []model.ChainGroup{}
	index := map[string]int{}
	for _, nft := range nfts {
		if onchainOnly && !isOnchain(nft) {
			continue
		}

		network, ok := Resolve(ctx, nft)
		if !ok {
			continue
		}

		i, ok := index[network]
		if !ok {
			i = len(groups)
			index[network] = i
			groups = append(groups, model.ChainGroup{Network: network})
		}

		groups[i].NFTs = append(groups[i].NFTs, nft)
	}

	return groups
}

// PlanForMany decides which chain an operation over nfts must run on, without touching the
// wallet. A result with Success and a non-empty Network still needs a switch to that network.
func PlanForMany(
	ctx context.Context, nfts []model.NFTRecord, operation model.OperationType,
) model.SwitchResult {
	plan, _ := planForMany(ctx, nfts, operation)
	return plan
}

// planForMany also returns the NFT the switch is made for: the first NFT, or the first onchain
// NFT of a burn. Its chain must resolve on its own.
func planForMany(
	ctx context.Context, nfts []model.NFTRecord, operation model.OperationType,
) (model.SwitchResult, model.NFTRecord) {
	if len(nfts) == 0 {
		return model.SwitchResult{
			Success: false,
			Message: "No NFTs provided",
			Reason:  model.SwitchReasonInvalidInput,
		}, model.NFTRecord{}
	}

	if operation == model.OperationBurn {
		return planBurn(ctx, nfts)
	}

	chains := networksOf(groupByChain(ctx, nfts, false))
	switch len(chains) {
	case 0:
		return model.SwitchResult{
			Success: false,
			Message: "Could not determine chain for selected NFTs",
			Reason:  model.SwitchReasonDetection,
		}, model.NFTRecord{}

	case 1:
		return singleChainPlan(ctx, nfts[0], chains)

	default:
		return model.SwitchResult{
			Success: false,
			Message: fmt.Sprintf(
				"Selected NFTs are on different chains: %s. Please select NFTs from the same chain.",
				strings.Join(chains, ", "),
			),
			Reason: model.SwitchReasonMixedChains,
			Chains: chains,
		}, model.NFTRecord{}
	}
}

// planBurn only looks at NFTs with status onchain. Offchain burns and NFTs without a status never
// need a chain.
func planBurn(ctx context.Context, nfts []model.NFTRecord) (model.SwitchResult, model.NFTRecord) {
	idx := slices.IndexFunc(nfts, isOnchain)
	if idx < 0 {
		return model.SwitchResult{
			Success: true,
			Message: "All selected NFTs are offchain, no network switch needed",
		}, model.NFTRecord{}
	}

	chains := networksOf(GroupByChain(ctx, nfts))
	switch len(chains) {
	case 0:
		return model.SwitchResult{
			Success: false,
			Message: "Could not determine chain for onchain NFTs",
			Reason:  model.SwitchReasonDetection,
		}, model.NFTRecord{}

	case 1:
		return singleChainPlan(ctx, nfts[idx], chains)

	default:
		xcontext.Logger(ctx).Infof("Burn spans %d chains: %v", len(chains), chains)
		return model.SwitchResult{
			Success: true,
			Message: fmt.Sprintf("Multi-chain burn: %d chains (%s)", len(chains), strings.Join(chains, ", ")),
			Chains:  chains,
		}, model.NFTRecord{}
	}
}

func singleChainPlan(
	ctx context.Context, representative model.NFTRecord, chains []string,
) (model.SwitchResult, model.NFTRecord) {
	network, ok := Resolve(ctx, representative)
	if !ok {
		return model.SwitchResult{
			Success: false,
			Message: "Could not determine which chain this NFT belongs to",
			Reason:  model.SwitchReasonDetection,
		}, model.NFTRecord{}
	}

	return model.SwitchResult{Success: true, Network: network, Chains: chains}, representative
}

// SwitchForMany switches the wallet to the chain of the representative NFT of an operation over
// nfts. A burn over several chains succeeds without switching; the caller sequences it with
// GroupByChain and SwitchForGroups.
func (s *Switcher) SwitchForMany(
	ctx context.Context, nfts []model.NFTRecord, operation model.OperationType,
) model.SwitchResult {
	plan, representative := planForMany(ctx, nfts, operation)
	if !plan.Success || plan.Network == "" {
		return plan
	}

	result := s.SwitchToChain(ctx, representative, operation)
	result.Chains = plan.Chains
	return result
}

// GroupHandler runs the part of an operation belonging to one chain, after the wallet switched
// to that chain.
type GroupHandler func(ctx context.Context, group model.ChainGroup) error

// SwitchForGroups switches to the chain of each group in order and runs handler on it. It stops
// at the first failed switch or handler error.
func (s *Switcher) SwitchForGroups(
	ctx context.Context,
	groups []model.ChainGroup,
	operation model.OperationType,
	handler GroupHandler,
) model.SwitchResult {
	done := []string{}
	for _, group := range groups {
		result := s.SwitchToNetwork(ctx, group.Network, operation)
		if !result.Success {
			result.Chains = done
			return result
		}

		if handler != nil {
			if err := handler(ctx, group); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot process %d NFTs on %s: %v", len(group.NFTs), group.Network, err)
				return model.SwitchResult{
					Success: false,
					Message: fmt.Sprintf("Failed to process NFTs on %s: %v", group.Network, err),
					Reason:  model.SwitchReasonUpstream,
					Network: group.Network,
					Chains:  done,
				}
			}
		}

		done = append(done, group.Network)
	}

	return model.SwitchResult{
		Success: true,
		Message: fmt.Sprintf("Processed %d chains", len(done)),
		Chains:  done,
	}
}

func isOnchain(nft model.NFTRecord) bool {
	return nft.Status == "onchain"
}

func networksOf(groups []model.ChainGroup) []string {
	networks := make([]string, 0, len(groups))
	for _, g := range groups {
		networks = append(networks, g.Network)
	}

	return networks
}
