package chain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/wallet"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type NativeCurrency struct {
	Name     string
	Symbol   string
	Decimals int
}

// ChainDescriptor describes a supported EVM chain. Descriptors never change after the registry
// is built.
type ChainDescriptor struct {
	// Key is the identifier used for wallet switch calls, e.g. POLYGON_AMOY.
	Key         string
	Network     string
	DisplayName string
	ChainID     uint64

	// RPCURL is the preferred rpc endpoint, the first of RPCURLs.
	RPCURL         string
	RPCURLs        []string
	ExplorerURLs   []string
	NativeCurrency NativeCurrency
	NFTContract    string
	StakeContract  string
}

func (d ChainDescriptor) AddChainParams() wallet.AddChainParams {
	rpcURLs := []string{}
	if d.RPCURL != "" {
		rpcURLs = append(rpcURLs, d.RPCURL)
	}

	return wallet.AddChainParams{
		ChainID:           HexChainID(d.ChainID),
		ChainName:         d.DisplayName,
		RPCURLs:           rpcURLs,
		BlockExplorerURLs: append([]string{}, d.ExplorerURLs...),
		NativeCurrency: wallet.NativeCurrency{
			Name:     d.NativeCurrency.Name,
			Symbol:   d.NativeCurrency.Symbol,
			Decimals: d.NativeCurrency.Decimals,
		},
	}
}

func (d ChainDescriptor) Info() model.ChainInfo {
	return model.ChainInfo{
		Key:          d.Key,
		Network:      d.Network,
		ChainID:      d.ChainID,
		ChainIDHex:   HexChainID(d.ChainID),
		Name:         d.DisplayName,
		RPCURL:       d.RPCURL,
		ExplorerURLs: append([]string{}, d.ExplorerURLs...),
		NFTContract:  d.NFTContract,
	}
}

// HexChainID returns the 0x-prefixed hex form of a chain id.
func HexChainID(id uint64) string {
	return hexutil.EncodeUint64(id)
}

type Registry struct {
	byNetwork      map[string]ChainDescriptor
	byKey          map[string]ChainDescriptor
	byChainID      map[uint64]ChainDescriptor
	defaultNetwork string
}

func NewRegistry(cfg config.ChainConfigs) (*Registry, error) {
	r := &Registry{
		byNetwork:      make(map[string]ChainDescriptor),
		byKey:          make(map[string]ChainDescriptor),
		byChainID:      make(map[uint64]ChainDescriptor),
		defaultNetwork: strings.ToLower(cfg.DefaultNetwork),
	}

	for _, c := range cfg.Chains {
		network := strings.ToLower(strings.TrimSpace(c.Network))
		if network == "" {
			return nil, fmt.Errorf("chain %q has no network", c.DisplayName)
		}

		if _, ok := r.byNetwork[network]; ok {
			return nil, fmt.Errorf("duplicated network %s", network)
		}

		if _, ok := r.byChainID[c.ChainID]; ok {
			return nil, fmt.Errorf("duplicated chain id %d", c.ChainID)
		}

		d := ChainDescriptor{
			Key:          c.Key,
			Network:      network,
			DisplayName:  c.DisplayName,
			ChainID:      c.ChainID,
			RPCURLs:      append([]string{}, c.RPCURLs...),
			ExplorerURLs: append([]string{}, c.ExplorerURLs...),
			NativeCurrency: NativeCurrency{
				Name:     c.NativeCurrency.Name,
				Symbol:   c.NativeCurrency.Symbol,
				Decimals: c.NativeCurrency.Decimals,
			},
			NFTContract:   c.NFTContract,
			StakeContract: c.StakeContract,
		}
		if len(d.RPCURLs) > 0 {
			d.RPCURL = d.RPCURLs[0]
		}

		r.byNetwork[network] = d
		r.byChainID[c.ChainID] = d
		if d.Key != "" {
			if _, ok := r.byKey[d.Key]; ok {
				return nil, fmt.Errorf("duplicated chain key %s", d.Key)
			}
			r.byKey[d.Key] = d
		}
	}

	if r.defaultNetwork == "" {
		r.defaultNetwork = config.DefaultNetwork
	}

	if _, ok := r.byNetwork[r.defaultNetwork]; !ok && len(r.byNetwork) > 0 {
		return nil, fmt.Errorf("default network %s is not configured", r.defaultNetwork)
	}

	return r, nil
}

func (r *Registry) ByNetwork(network string) (ChainDescriptor, bool) {
	d, ok := r.byNetwork[strings.ToLower(network)]
	return d, ok
}

func (r *Registry) ByKey(key string) (ChainDescriptor, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

func (r *Registry) ByChainID(id uint64) (ChainDescriptor, bool) {
	d, ok := r.byChainID[id]
	return d, ok
}

// KeyOf returns the wallet switch key of network.
func (r *Registry) KeyOf(network string) (string, bool) {
	d, ok := r.ByNetwork(network)
	if !ok || d.Key == "" {
		return "", false
	}

	return d.Key, true
}

// Networks returns all configured networks in alphabetical order.
func (r *Registry) Networks() []string {
	networks := maps.Keys(r.byNetwork)
	slices.Sort(networks)
	return networks
}

func (r *Registry) Default() ChainDescriptor {
	return r.byNetwork[r.defaultNetwork]
}
