package repository

import (
	"context"
	"time"

	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// DiscordRoleCacheRepository stores role snapshots. Get returns gorm.ErrRecordNotFound when no
// snapshot exists, whatever the backend is.
type DiscordRoleCacheRepository interface {
	Get(ctx context.Context, userID, guildID string) (*entity.DiscordRoleCache, error)
	Upsert(ctx context.Context, e *entity.DiscordRoleCache) error
	Delete(ctx context.Context, userID, guildID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type discordRoleCacheRepository struct{}

func NewDiscordRoleCacheRepository() *discordRoleCacheRepository {
	return &discordRoleCacheRepository{}
}

func (r *discordRoleCacheRepository) Get(
	ctx context.Context, userID, guildID string,
) (*entity.DiscordRoleCache, error) {
	result := entity.DiscordRoleCache{}
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND guild_id=?", userID, guildID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *discordRoleCacheRepository) Upsert(ctx context.Context, e *entity.DiscordRoleCache) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "guild_id"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"roles":       e.Roles,
				"verified_at": e.VerifiedAt,
				"expires_at":  e.ExpiresAt,
				"updated_at":  time.Now(),
				"deleted_at":  nil,
			}),
		}).Create(e).Error
}

func (r *discordRoleCacheRepository) Delete(ctx context.Context, userID, guildID string) error {
	return xcontext.DB(ctx).Unscoped().
		Delete(&entity.DiscordRoleCache{}, "user_id=? AND guild_id=?", userID, guildID).Error
}

func (r *discordRoleCacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := xcontext.DB(ctx).Unscoped().
		Delete(&entity.DiscordRoleCache{}, "expires_at <= ?", now)
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}
