package model

type ClaimNFTRequest struct {
	NFT           NFTRecord `json:"nft"`
	WalletAddress string    `json:"walletAddress"`
	MetadataURI   string    `json:"metadataUri"`
}

type ClaimNFTResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ClaimID     string `json:"claimId"`
	Network     string `json:"network"`
	Contract    string `json:"contract"`
	Strategy    string `json:"strategy"`
	TxHash      string `json:"txHash"`
	TokenID     string `json:"tokenId,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
