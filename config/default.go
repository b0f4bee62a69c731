package config

import "time"

const DefaultNetwork = "polygon-amoy"

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     "3306",
			Database: "neftit",
			User:     "mysql",
			LogLevel: "error",
		},
		ApiServer:     ServerConfigs{Port: "8080", AllowedOrigins: []string{"*"}},
		DiscordServer: ServerConfigs{Port: "3001", AllowedOrigins: []string{"*"}},
		TwitterServer: ServerConfigs{Port: "3003", AllowedOrigins: []string{"*"}},
		Auth: AuthConfigs{
			AdminToken: TokenConfigs{Expiration: 24 * time.Hour},
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{ClientID: "neftit"},
		Discord: DiscordConfigs{
			APIURL:       "https://discord.com/api/v10",
			VerifierURL:  "http://localhost:3001",
			CacheTTL:     2 * time.Hour,
			CacheBackend: "database",
		},
		Twitter: TwitterConfigs{
			ProfileURL:  "https://twitter.com",
			Timeout:     15 * time.Second,
			MaxPageSize: 1024 * 1024,
			CacheTTL:    5 * time.Minute,
			DelayMin:    time.Second,
			DelayMax:    3 * time.Second,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			},
		},
		Chain: ChainConfigs{
			DefaultNetwork: DefaultNetwork,
			Chains:         DefaultChains(),
		},
		Claim: ClaimConfigs{
			ReceiptTimeout: 2 * time.Minute,
			Strategies:     []string{"drop_claim", "lazy_mint_claim", "mint_to"},
		},
		Cron:    CronConfigs{CleanupInterval: time.Hour},
		Metrics: MetricsConfigs{Enabled: true, Path: "/metrics"},
	}
}

// DefaultChains returns the supported EVM testnets.
func DefaultChains() []ChainConfig {
	eth := CurrencyConfig{Name: "Ether", Symbol: "ETH", Decimals: 18}

	return []ChainConfig{
		{
			Key:         "POLYGON_AMOY",
			Network:     "polygon-amoy",
			ChainID:     80002,
			DisplayName: "Polygon Amoy Testnet",
			RPCURLs: []string{
				"https://rpc-amoy.polygon.technology/",
				"https://polygon-amoy.drpc.org",
				"https://polygon-amoy-bor-rpc.publicnode.com",
				"https://rpc.ankr.com/polygon_amoy",
			},
			ExplorerURLs:   []string{"https://amoy.polygonscan.com/"},
			NativeCurrency: CurrencyConfig{Name: "MATIC", Symbol: "MATIC", Decimals: 18},
			NFTContract:    "0x5Bb23220cC12585264fCd144C448eF222c8572A2",
			StakeContract:  "0x1F2Dbf590b1c4C96c1ddb4FF55002Dbb33DA294e",
		},
		{
			Key:         "SEPOLIA",
			Network:     "sepolia",
			ChainID:     11155111,
			DisplayName: "Ethereum Sepolia",
			RPCURLs: []string{
				"https://ethereum-sepolia-rpc.publicnode.com",
				"https://rpc.ankr.com/eth_sepolia",
				"https://1rpc.io/sepolia",
			},
			ExplorerURLs:   []string{"https://sepolia.etherscan.io/"},
			NativeCurrency: CurrencyConfig{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
			NFTContract:    "0xedE55c384D620dD9a06d39fA632b2B55f29Bd387",
			StakeContract:  "0x637B5CbfBFd074Fe468e2B976b780862448F984C",
		},
		{
			Key:         "BSC_TESTNET",
			Network:     "bsc-testnet",
			ChainID:     97,
			DisplayName: "BNB Smart Chain Testnet",
			RPCURLs: []string{
				"https://data-seed-prebsc-1-s1.bnbchain.org:8545",
				"https://data-seed-prebsc-2-s1.bnbchain.org:8545",
				"https://bsc-testnet.publicnode.com",
				"https://bsc-testnet-rpc.publicnode.com",
			},
			ExplorerURLs:   []string{"https://testnet.bscscan.com/"},
			NativeCurrency: CurrencyConfig{Name: "Test BNB", Symbol: "tBNB", Decimals: 18},
			NFTContract:    "0xfaAA35A41f070B7408740Fefff0635fD5B66398b",
			StakeContract:  "0x1FAe00647ff1931Ab9d234E685EAf5211bed12b7",
		},
		{
			Key:         "AVALANCHE_FUJI",
			Network:     "avalanche-fuji",
			ChainID:     43113,
			DisplayName: "Avalanche Fuji Testnet",
			RPCURLs: []string{
				"https://api.avax-test.network/ext/bc/C/rpc",
				"https://avalanche-fuji-c-chain-rpc.publicnode.com",
				"https://rpc.ankr.com/avalanche_fuji",
				"https://ava-testnet.public.blastapi.io/ext/bc/C/rpc",
			},
			ExplorerURLs:   []string{"https://testnet.snowtrace.io/"},
			NativeCurrency: CurrencyConfig{Name: "AVAX", Symbol: "AVAX", Decimals: 18},
			NFTContract:    "0x7a85EE8944EC9d15528c7517D1FD2A173f552F08",
			StakeContract:  "0x95F2B1d375532690a78f152E4c90F4a6196fB8Df",
		},
		{
			Key:         "ARBITRUM_SEPOLIA",
			Network:     "arbitrum-sepolia",
			ChainID:     421614,
			DisplayName: "Arbitrum Sepolia",
			RPCURLs: []string{
				"https://sepolia-rollup.arbitrum.io/rpc",
				"https://arbitrum-sepolia.blockpi.network/v1/rpc/public",
				"https://arbitrum-sepolia-rpc.publicnode.com",
			},
			ExplorerURLs:   []string{"https://sepolia.arbiscan.io/"},
			NativeCurrency: eth,
			NFTContract:    "0x71EC87B1aFBe18255e8c415c3d84c9369719de21",
			StakeContract:  "0x5B17525Db3B6811F36a0e301d0Ff286b44b51147",
		},
		{
			Key:         "OPTIMISM_SEPOLIA",
			Network:     "optimism-sepolia",
			ChainID:     11155420,
			DisplayName: "Optimism Sepolia",
			RPCURLs: []string{
				"https://sepolia.optimism.io",
				"https://optimism-sepolia.blockpi.network/v1/rpc/public",
				"https://optimism-sepolia-rpc.publicnode.com",
			},
			ExplorerURLs:   []string{"https://sepolia-optimism.etherscan.io/"},
			NativeCurrency: eth,
			NFTContract:    "0x68C3734b65e3b2f7858123ccb5Bfc5fd7cC1D733",
			StakeContract:  "0x37Fdb126989C1c355b93f0155FEe0CbD0e892AF8",
		},
		{
			Key:         "BASE_SEPOLIA",
			Network:     "base-sepolia",
			ChainID:     84532,
			DisplayName: "Base Sepolia",
			RPCURLs: []string{
				"https://sepolia.base.org",
				"https://base-sepolia.blockpi.network/v1/rpc/public",
				"https://base-sepolia-rpc.publicnode.com",
			},
			ExplorerURLs:   []string{"https://sepolia.basescan.org/"},
			NativeCurrency: eth,
			NFTContract:    "0x10ca82E3F31459f7301BDE2ca8Cf93CCA4113705",
			StakeContract:  "0xB250CD56aDB08cd30aBC275b9E20978A92bC4dd1",
		},
	}
}
