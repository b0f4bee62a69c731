package chain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/neftit-lab/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func parseNFT(t *testing.T, s string) model.NFTRecord {
	nft := model.NFTRecord{}
	require.NoError(t, json.Unmarshal([]byte(s), &nft))
	return nft
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		nft     string
		want    string
		wantErr bool
	}{
		{
			name: "onchain with blockchain",
			nft:  `{"status":"onchain","blockchain":"polygon-amoy"}`,
			want: "polygon-amoy",
		},
		{
			name: "direct field is lower-cased",
			nft:  `{"claimed_blockchain":"SEPOLIA"}`,
			want: "sepolia",
		},
		{
			name: "blockchain wins over claimed_blockchain and chain",
			nft:  `{"blockchain":"bsc-testnet","claimed_blockchain":"sepolia","chain":"base-sepolia"}`,
			want: "bsc-testnet",
		},
		{
			name: "direct field wins over conflicting attributes",
			nft: `{"status":"offchain","chain":"sepolia",
				"attributes":[{"trait_type":"network","value":"Polygon"}]}`,
			want: "sepolia",
		},
		{
			name: "offchain attribute synonym",
			nft: `{"status":"offchain",
				"attributes":[{"trait_type":"network","value":"Avalanche Fuji C-Chain"}]}`,
			want: "avalanche-fuji",
		},
		{
			name: "offchain trait type is case-insensitive",
			nft: `{"type":"offchain",
				"attributes":[{"trait_type":"Assigned_Chain","value":"  Arbitrum One "}]}`,
			want: "arbitrum-sepolia",
		},
		{
			name: "offchain assigned chain",
			nft:  `{"status":"offchain","assigned_chain":"Optimism"}`,
			want: "optimism-sepolia",
		},
		{
			name: "offchain metadata",
			nft:  `{"status":"offchain","metadata":{"network":"Binance Smart Chain"}}`,
			want: "bsc-testnet",
		},
		{
			name: "offchain attribute map",
			nft:  `{"status":"offchain","attributes":{"chain":"Base"}}`,
			want: "base-sepolia",
		},
		{
			name: "synonym order is respected",
			nft:  `{"status":"offchain","network":"ethereum on polygon"}`,
			want: "sepolia",
		},
		{
			name: "assigned chain comes before network",
			nft:  `{"status":"offchain","network":"avax","assigned_chain":"bsc"}`,
			want: "bsc-testnet",
		},
		{
			name: "unrelated traits are ignored",
			nft: `{"status":"offchain",
				"attributes":[{"trait_type":"rarity","value":"Ethereum legend"}]}`,
			want: "polygon-amoy",
		},
		{
			name: "offchain without hint uses default",
			nft:  `{"status":"offchain","name":"Genesis"}`,
			want: "polygon-amoy",
		},
		{
			name: "offchain with unknown hint uses default",
			nft:  `{"status":"offchain","network":"solana"}`,
			want: "polygon-amoy",
		},
		{
			name:    "onchain without direct field",
			nft:     `{"status":"onchain","network":"polygon"}`,
			wantErr: true,
		},
		{
			name:    "unknown shape",
			nft:     `{"name":"x"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nft := parseNFT(t, tt.nft)
			original := parseNFT(t, tt.nft)

			got, ok := Resolve(context.Background(), nft)
			if tt.wantErr {
				require.False(t, ok)
				require.Empty(t, got)
			} else {
				require.True(t, ok)
				require.Equal(t, tt.want, got)
			}

			require.Equal(t, original, nft)
		})
	}
}

func TestIsOffchain(t *testing.T) {
	require.True(t, IsOffchain(model.NFTRecord{Status: "offchain"}))
	require.True(t, IsOffchain(model.NFTRecord{Type: "offchain"}))
	require.False(t, IsOffchain(model.NFTRecord{Status: "onchain"}))
	require.False(t, IsOffchain(model.NFTRecord{}))
}
