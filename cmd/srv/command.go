package main

import (
	"github.com/urfave/cli/v2"
)

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "neftit"
	s.app.Usage = "NEFTIT backend services"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.toml",
			Usage:   "Path of the toml config file, environment variables override it",
			EnvVars: []string{"CONFIG_PATH"},
		},
		&cli.Int64Flag{
			Name:    "node-id",
			Value:   0,
			Usage:   "Snowflake node id of this process",
			EnvVars: []string{"NODE_ID"},
		},
	}
	s.app.Before = s.setup
	s.app.After = s.teardown
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serves chain resolution, operation planning, the discord role cache and nft claims.`,
		},
		{
			Action:      s.startDiscord,
			Name:        "discord",
			Usage:       "Start discord verification service",
			Category:    "Api",
			Description: `Verifies guild membership and roles through the Discord bot API.`,
		},
		{
			Action:      s.startTwitter,
			Name:        "twitter",
			Usage:       "Start twitter verification service",
			Category:    "Api",
			Description: `Verifies retweets, tweets and follows by reading public profile pages.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Periodically removes expired discord role snapshots.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database",
			Category: "Tool",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "down",
					Usage: "Revert the given number of migrations instead of migrating up",
				},
			},
		},
		{
			Action:      s.checkChains,
			Name:        "check-chains",
			Usage:       "Check the rpc endpoints of every configured chain",
			Category:    "Tool",
			Description: `Dials every rpc url and compares eth_chainId with the configured chain id.`,
		},
		{
			Action:    s.switchChain,
			Name:      "switch",
			Usage:     "Switch the chain of a wallet rpc endpoint",
			ArgsUsage: "<network>",
			Category:  "Tool",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "wallet",
					Usage:    "JSON-RPC url of the wallet",
					Required: true,
				},
			},
		},
		{
			Action:    s.issueAdminToken,
			Name:      "issue-admin-token",
			Usage:     "Print an admin token for the api service",
			ArgsUsage: "<subject>",
			Category:  "Tool",
		},
	}
}
