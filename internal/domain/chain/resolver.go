package chain

import (
	"context"
	"strings"

	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

// DefaultOffchainNetwork is returned for offchain NFTs which carry no usable chain hint.
const DefaultOffchainNetwork = config.DefaultNetwork

// networkSynonyms is matched in order, the first keyword contained in a candidate wins.
var networkSynonyms = []struct {
	keyword string
	network string
}{
	{"ethereum", "sepolia"},
	{"polygon", "polygon-amoy"},
	{"bsc", "bsc-testnet"},
	{"binance", "bsc-testnet"},
	{"avalanche", "avalanche-fuji"},
	{"avax", "avalanche-fuji"},
	{"optimism", "optimism-sepolia"},
	{"arbitrum", "arbitrum-sepolia"},
	{"base", "base-sepolia"},
}

var chainTraitTypes = []string{"chain", "network", "assigned_chain"}

func IsOffchain(nft model.NFTRecord) bool {
	return nft.Status == "offchain" || nft.Type == "offchain"
}

// Resolve returns the network of nft. Direct chain fields always win. Offchain NFTs are matched
// against the synonym table and fall back to DefaultOffchainNetwork. Other NFTs without a direct
// field are not resolved.
func Resolve(ctx context.Context, nft model.NFTRecord) (string, bool) {
	for _, direct := range []string{nft.Blockchain, nft.ClaimedBlockchain, nft.Chain} {
		if direct != "" {
			network := strings.ToLower(direct)
			xcontext.Logger(ctx).Debugf("NFT %s resolved by direct field: %s", nft.ID, network)
			return network, true
		}
	}

	if IsOffchain(nft) {
		for _, candidate := range offchainCandidates(nft) {
			if network, ok := matchSynonym(candidate); ok {
				xcontext.Logger(ctx).Debugf("NFT %s resolved by hint %q: %s", nft.ID, candidate, network)
				return network, true
			}
		}

		xcontext.Logger(ctx).Debugf("NFT %s has no chain hint, use default %s", nft.ID, DefaultOffchainNetwork)
		return DefaultOffchainNetwork, true
	}

	if nft.Status == "onchain" {
		xcontext.Logger(ctx).Debugf("Onchain NFT %s has no chain field", nft.ID)
	} else {
		xcontext.Logger(ctx).Debugf("Cannot determine chain of NFT %s", nft.ID)
	}

	return "", false
}

func offchainCandidates(nft model.NFTRecord) []string {
	candidates := []string{
		nft.AssignedChain,
		nft.Chain,
		nft.Network,
		nft.Metadata.Chain,
		nft.Metadata.Network,
		nft.AttributeMap["chain"],
		nft.AttributeMap["network"],
	}

	for _, attr := range nft.Attributes {
		traitType := strings.ToLower(attr.TraitType)
		for _, t := range chainTraitTypes {
			if traitType == t {
				candidates = append(candidates, attr.Value)
				break
			}
		}
	}

	result := []string{}
	for _, c := range candidates {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			result = append(result, c)
		}
	}

	return result
}

func matchSynonym(candidate string) (string, bool) {
	for _, s := range networkSynonyms {
		if strings.Contains(candidate, s.keyword) {
			return s.network, true
		}
	}

	return "", false
}
