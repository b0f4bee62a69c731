package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/idutil"
	"github.com/neftit-lab/backend/pkg/pubsub"
	"github.com/neftit-lab/backend/pkg/wallet"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

// WalletProvider is the wallet whose active chain is switched.
type WalletProvider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	SwitchChain(ctx context.Context, params wallet.AddChainParams) error
}

type Switcher struct {
	registry  *Registry
	wallet    WalletProvider
	publisher pubsub.Publisher

	// switchMutex serializes requests to the wallet, which refuses concurrent requests.
	switchMutex sync.Mutex
}

func NewSwitcher(registry *Registry, wallet WalletProvider, publisher pubsub.Publisher) *Switcher {
	if publisher == nil {
		publisher = pubsub.NopPublisher()
	}

	return &Switcher{registry: registry, wallet: wallet, publisher: publisher}
}

func (s *Switcher) Registry() *Registry {
	return s.registry
}

// SwitchToChain resolves the chain of nft and makes it the active chain of the wallet. Every
// failure is reported in the result.
func (s *Switcher) SwitchToChain(
	ctx context.Context, nft model.NFTRecord, operation model.OperationType,
) model.SwitchResult {
	network, ok := Resolve(ctx, nft)
	if !ok {
		result := model.SwitchResult{
			Success: false,
			Message: "Could not determine which chain this NFT belongs to",
			Reason:  model.SwitchReasonDetection,
		}
		observeSwitch(result)
		return result
	}

	return s.SwitchToNetwork(ctx, network, operation)
}

// SwitchToNetwork makes network the active chain of the wallet.
func (s *Switcher) SwitchToNetwork(
	ctx context.Context, network string, operation model.OperationType,
) (result model.SwitchResult) {
	defer func() {
		if r := recover(); r != nil {
			xcontext.Logger(ctx).Errorf("Unexpected error while switching to %s: %v", network, r)
			result = model.SwitchResult{
				Success: false,
				Message: "Unexpected error while switching network",
				Reason:  model.SwitchReasonInternal,
				Network: network,
			}
		}

		observeSwitch(result)
	}()

	s.switchMutex.Lock()
	defer s.switchMutex.Unlock()

	current, err := s.currentNetwork(ctx)
	if err != nil {
		return providerFailure(ctx, network, err)
	}

	if current == network {
		xcontext.Logger(ctx).Debugf("Wallet is already on %s", network)
		return model.SwitchResult{Success: true, Network: network}
	}

	descriptor, ok := s.registry.ByNetwork(network)
	if !ok {
		return model.SwitchResult{
			Success: false,
			Message: fmt.Sprintf("Chain %s not found in configuration", network),
			Reason:  model.SwitchReasonConfiguration,
			Network: network,
		}
	}

	if _, ok := s.registry.KeyOf(network); !ok {
		return model.SwitchResult{
			Success: false,
			Message: fmt.Sprintf("Chain key not found for network: %s", network),
			Reason:  model.SwitchReasonConfiguration,
			Network: network,
		}
	}

	xcontext.Logger(ctx).Infof("Switch wallet from %q to %s for %s", current, network, operation)
	if err := s.wallet.SwitchChain(ctx, descriptor.AddChainParams()); err != nil {
		return providerFailure(ctx, network, err)
	}

	after, err := s.currentNetwork(ctx)
	if err != nil {
		return providerFailure(ctx, network, err)
	}

	if after != network {
		return model.SwitchResult{
			Success:  false,
			Message:  fmt.Sprintf("Failed to switch to %s. Current chain: %s", network, after),
			Reason:   model.SwitchReasonInconsistency,
			Network:  network,
			Switched: true,
		}
	}

	event := model.ChainSwitchedEvent{
		Network:   network,
		ChainID:   descriptor.ChainID,
		Operation: operation,
		At:        time.Now(),
	}
	err = pubsub.Publish(ctx, s.publisher, common.TopicChainSwitched, idutil.NewSnowflake().String(), event)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish chain switched event: %v", err)
	}

	return model.SwitchResult{
		Success:  true,
		Message:  fmt.Sprintf("Successfully switched to %s", descriptor.DisplayName),
		Network:  network,
		Switched: true,
	}
}

// currentNetwork returns the network of the active wallet chain. A chain which is not
// configured is reported by its id.
func (s *Switcher) currentNetwork(ctx context.Context) (string, error) {
	chainID, err := s.wallet.ChainID(ctx)
	if err != nil {
		return "", err
	}

	if !chainID.IsUint64() {
		return chainID.String(), nil
	}

	if d, ok := s.registry.ByChainID(chainID.Uint64()); ok {
		return d.Network, nil
	}

	return chainID.String(), nil
}

func providerFailure(ctx context.Context, network string, err error) model.SwitchResult {
	if wallet.IsUserRejected(err) {
		xcontext.Logger(ctx).Infof("User cancelled the switch to %s: %v", network, err)
		return model.SwitchResult{
			Success:   false,
			Message:   "Network switch was cancelled",
			Cancelled: true,
			Reason:    model.SwitchReasonCancelled,
			Network:   network,
		}
	}

	xcontext.Logger(ctx).Errorf("Cannot switch to %s: %v", network, err)
	return model.SwitchResult{
		Success: false,
		Message: fmt.Sprintf("Failed to switch network: %s", err.Error()),
		Reason:  model.SwitchReasonUpstream,
		Network: network,
	}
}

func observeSwitch(result model.SwitchResult) {
	outcome := "success"
	if !result.Success {
		outcome = string(result.Reason)
	}

	common.IncCounter(common.ChainSwitchTotal, outcome)
}
