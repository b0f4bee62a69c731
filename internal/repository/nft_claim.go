package repository

import (
	"context"

	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

type NFTClaimRepository interface {
	Create(context.Context, *entity.NFTClaim) error
	UpdateByID(context.Context, string, *entity.NFTClaim) error
	GetByID(context.Context, string) (*entity.NFTClaim, error)
	GetByWallet(context.Context, string) ([]entity.NFTClaim, error)
	GetSucceeded(ctx context.Context, wallet, nftID string) (*entity.NFTClaim, error)
}

type nftClaimRepository struct{}

func NewNFTClaimRepository() *nftClaimRepository {
	return &nftClaimRepository{}
}

func (r *nftClaimRepository) Create(ctx context.Context, e *entity.NFTClaim) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *nftClaimRepository) UpdateByID(ctx context.Context, id string, e *entity.NFTClaim) error {
	return xcontext.DB(ctx).Model(&entity.NFTClaim{}).Where("id=?", id).Updates(e).Error
}

func (r *nftClaimRepository) GetByID(ctx context.Context, id string) (*entity.NFTClaim, error) {
	result := entity.NFTClaim{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nftClaimRepository) GetByWallet(ctx context.Context, wallet string) ([]entity.NFTClaim, error) {
	result := []entity.NFTClaim{}
	err := xcontext.DB(ctx).
		Where("wallet_address=?", wallet).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetSucceeded returns the successful claim of nftID by wallet.
func (r *nftClaimRepository) GetSucceeded(ctx context.Context, wallet, nftID string) (*entity.NFTClaim, error) {
	result := entity.NFTClaim{}
	err := xcontext.DB(ctx).
		Where("wallet_address=? AND nft_id=? AND status=?", wallet, nftID, entity.NFTClaimSucceeded).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
