package model

import "github.com/neftit-lab/backend/pkg/enum"

type OperationType string

var (
	OperationClaim = enum.New(OperationType("claim"), "claim")
	OperationStake = enum.New(OperationType("stake"), "stake")
	OperationBurn  = enum.New(OperationType("burn"), "burn")
)

// SwitchReason classifies an unsuccessful switch result.
type SwitchReason string

var (
	SwitchReasonNone          = enum.New(SwitchReason(""), "")
	SwitchReasonInvalidInput  = enum.New(SwitchReason("invalid_input"), "invalid_input")
	SwitchReasonDetection     = enum.New(SwitchReason("detection"), "detection")
	SwitchReasonConfiguration = enum.New(SwitchReason("configuration"), "configuration")
	SwitchReasonCancelled     = enum.New(SwitchReason("cancelled"), "cancelled")
	SwitchReasonUpstream      = enum.New(SwitchReason("upstream"), "upstream")
	SwitchReasonInconsistency = enum.New(SwitchReason("inconsistency"), "inconsistency")
	SwitchReasonMixedChains   = enum.New(SwitchReason("mixed_chains"), "mixed_chains")
	SwitchReasonInternal      = enum.New(SwitchReason("internal"), "internal")
)

type SwitchResult struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Cancelled bool         `json:"cancelled,omitempty"`
	Reason    SwitchReason `json:"reason,omitempty"`

	// Network is the target network, Switched is true if a switch request was actually issued.
	Network  string   `json:"network,omitempty"`
	Switched bool     `json:"switched,omitempty"`
	Chains   []string `json:"chains,omitempty"`
}

// ClaimOperationContext describes one user action over a set of NFTs.
type ClaimOperationContext struct {
	Operation OperationType `json:"operation"`
	NFTs      []NFTRecord   `json:"nfts"`
	Chains    []string      `json:"chains"`
}

type ChainGroup struct {
	Network string      `json:"network"`
	NFTs    []NFTRecord `json:"nfts"`
}

type ChainInfo struct {
	Key          string   `json:"key"`
	Network      string   `json:"network"`
	ChainID      uint64   `json:"chainId"`
	ChainIDHex   string   `json:"chainIdHex"`
	Name         string   `json:"name"`
	RPCURL       string   `json:"rpcUrl"`
	ExplorerURLs []string `json:"blockExplorerUrls"`
	NFTContract  string   `json:"nftContract,omitempty"`
}

type ResolveChainRequest struct {
	NFT NFTRecord `json:"nft"`
}

type ResolveChainResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Chain   ChainInfo `json:"chain"`
}

type PlanOperationRequest struct {
	Operation string      `json:"operation"`
	NFTs      []NFTRecord `json:"nfts"`
}

type PlanOperationResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Context ClaimOperationContext `json:"context"`
	Groups  []ChainGroup          `json:"groups"`
	Plan    SwitchResult          `json:"plan"`
}

type GetChainsRequest struct{}

type GetChainsResponse struct {
	Success        bool        `json:"success"`
	DefaultNetwork string      `json:"defaultNetwork"`
	Chains         []ChainInfo `json:"chains"`
}
