package repository

import (
	"testing"
	"time"

	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNFTClaimRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewNFTClaimRepository()
	wallet := "0xabc"

	first := &entity.NFTClaim{
		Base:          entity.Base{ID: "claim-1", CreatedAt: time.Now().Add(-time.Minute)},
		NFTID:         "nft-1",
		WalletAddress: wallet,
		Network:       "polygon-amoy",
		Status:        entity.NFTClaimFailed,
		Error:         "execution reverted",
	}
	second := &entity.NFTClaim{
		Base:          entity.Base{ID: "claim-2", CreatedAt: time.Now()},
		NFTID:         "nft-1",
		WalletAddress: wallet,
		Network:       "polygon-amoy",
		Status:        entity.NFTClaimPending,
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	_, err := repo.GetSucceeded(ctx, wallet, "nft-1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.UpdateByID(ctx, "claim-2", &entity.NFTClaim{
		Status:   entity.NFTClaimSucceeded,
		TxHash:   "0x01",
		Strategy: "drop_claim",
	})
	require.NoError(t, err)

	got, err := repo.GetSucceeded(ctx, wallet, "nft-1")
	require.NoError(t, err)
	require.Equal(t, "claim-2", got.ID)
	require.Equal(t, "0x01", got.TxHash)

	byID, err := repo.GetByID(ctx, "claim-1")
	require.NoError(t, err)
	require.Equal(t, entity.NFTClaimFailed, byID.Status)

	claims, err := repo.GetByWallet(ctx, wallet)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	require.Equal(t, "claim-2", claims[0].ID)

	_, err = repo.GetByID(ctx, "claim-3")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
