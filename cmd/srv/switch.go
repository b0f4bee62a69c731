package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/neftit-lab/backend/internal/domain/chain"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/wallet"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) switchChain(cctx *cli.Context) error {
	network := cctx.Args().First()
	if network == "" {
		network = xcontext.Configs(s.ctx).Chain.DefaultNetwork
	}

	if err := s.loadRegistry(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	provider, err := wallet.Dial(s.ctx, cctx.String("wallet"))
	if err != nil {
		return err
	}
	defer provider.Close()

	switcher := chain.NewSwitcher(s.registry, provider, s.publisher)
	result := switcher.SwitchToNetwork(s.ctx, network, model.OperationClaim)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}

	if !result.Success {
		return errors.New(result.Message)
	}

	return nil
}
