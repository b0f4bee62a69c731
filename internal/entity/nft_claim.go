package entity

import "github.com/neftit-lab/backend/pkg/enum"

type NFTClaimStatus string

var (
	NFTClaimPending   = enum.New(NFTClaimStatus("pending"), "pending")
	NFTClaimSucceeded = enum.New(NFTClaimStatus("succeeded"), "succeeded")
	NFTClaimFailed    = enum.New(NFTClaimStatus("failed"), "failed")
)

type NFTClaim struct {
	Base

	NFTID         string         `gorm:"index;size:128"`
	WalletAddress string         `gorm:"index;size:64"`
	Network       string         `gorm:"size:64"`
	Contract      string         `gorm:"size:64"`
	MetadataURI   string         `gorm:"type:text"`
	Strategy      string         `gorm:"size:32"`
	TxHash        string         `gorm:"size:80"`
	TokenID       string         `gorm:"size:80"`
	Status        NFTClaimStatus `gorm:"size:16"`
	Error         string         `gorm:"type:text"`
}
