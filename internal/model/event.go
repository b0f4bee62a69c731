package model

import "time"

type ChainSwitchedEvent struct {
	Network   string        `json:"network"`
	ChainID   uint64        `json:"chain_id"`
	Operation OperationType `json:"operation"`
	At        time.Time     `json:"at"`
}

type DiscordRolesVerifiedEvent struct {
	UserID     string    `json:"user_id"`
	GuildID    string    `json:"guild_id"`
	Roles      []string  `json:"roles"`
	VerifiedAt time.Time `json:"verified_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type NFTClaimedEvent struct {
	ClaimID  string    `json:"claim_id"`
	NFTID    string    `json:"nft_id"`
	Wallet   string    `json:"wallet"`
	Network  string    `json:"network"`
	TxHash   string    `json:"tx_hash"`
	TokenID  string    `json:"token_id"`
	Strategy string    `json:"strategy"`
	At       time.Time `json:"at"`
}
