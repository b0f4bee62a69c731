package main

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const (
	endpointAttempts = 3
	endpointTimeout  = 10 * time.Second
	maxParallelDials = 8
)

type endpointStatus struct {
	Network string
	URL     string
	ChainID uint64
	Err     error
}

func (s *srv) checkChains(*cli.Context) error {
	chains := xcontext.Configs(s.ctx).Chain.Chains
	statuses := checkEndpoints(s.ctx, chains, endpointAttempts)

	healthy := map[string]int{}
	for _, status := range statuses {
		if status.Err != nil {
			xcontext.Logger(s.ctx).Warnf("%s | %s | %v", status.Network, status.URL, status.Err)
			continue
		}

		healthy[status.Network]++
		xcontext.Logger(s.ctx).Infof("%s | %s | chain id %d", status.Network, status.URL, status.ChainID)
	}

	down := []string{}
	for _, c := range chains {
		if healthy[c.Network] == 0 {
			down = append(down, c.Network)
		}
	}

	if len(down) > 0 {
		return fmt.Errorf("no healthy rpc endpoint for %v", down)
	}

	return nil
}

// checkEndpoints asks every rpc url of chains for its chain id, retrying each url up to attempts
// times. The statuses keep the order of the configuration.
func checkEndpoints(ctx context.Context, chains []config.ChainConfig, attempts uint) []endpointStatus {
	statuses := []endpointStatus{}
	for _, c := range chains {
		for _, url := range c.RPCURLs {
			statuses = append(statuses, endpointStatus{Network: c.Network, URL: url, ChainID: c.ChainID})
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(maxParallelDials)

	for i := range statuses {
		status := &statuses[i]
		g.Go(func() error {
			status.Err = retry.Do(
				func() error { return checkEndpoint(ctx, status.URL, status.ChainID) },
				retry.Context(ctx),
				retry.Attempts(attempts),
				retry.Delay(200*time.Millisecond),
				retry.LastErrorOnly(true),
			)
			return nil
		})
	}

	_ = g.Wait()
	return statuses
}

func checkEndpoint(ctx context.Context, url string, expected uint64) error {
	ctx, cancel := context.WithTimeout(ctx, endpointTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return err
	}

	if !chainID.IsUint64() || chainID.Uint64() != expected {
		return retry.Unrecoverable(fmt.Errorf("unexpected chain id %s, want %d", chainID, expected))
	}

	return nil
}
