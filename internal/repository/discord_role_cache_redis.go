package repository

import (
	"context"
	"time"

	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/neftit-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

type redisDiscordRoleCacheRepository struct {
	redisClient xredis.Client
}

// NewRedisDiscordRoleCacheRepository keeps snapshots in redis. Keys expire together with the
// snapshot.
func NewRedisDiscordRoleCacheRepository(redisClient xredis.Client) *redisDiscordRoleCacheRepository {
	return &redisDiscordRoleCacheRepository{redisClient: redisClient}
}

func (r *redisDiscordRoleCacheRepository) Get(
	ctx context.Context, userID, guildID string,
) (*entity.DiscordRoleCache, error) {
	result := entity.DiscordRoleCache{}
	err := r.redisClient.GetObj(ctx, common.RedisKeyDiscordRoleCache(userID, guildID), &result)
	if err != nil {
		if xredis.IsNil(err) {
			return nil, gorm.ErrRecordNotFound
		}

		return nil, err
	}

	return &result, nil
}

func (r *redisDiscordRoleCacheRepository) Upsert(ctx context.Context, e *entity.DiscordRoleCache) error {
	ttl := time.Until(e.ExpiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, e.UserID, e.GuildID)
	}

	return r.redisClient.SetObj(ctx, common.RedisKeyDiscordRoleCache(e.UserID, e.GuildID), e, ttl)
}

func (r *redisDiscordRoleCacheRepository) Delete(ctx context.Context, userID, guildID string) error {
	return r.redisClient.Del(ctx, common.RedisKeyDiscordRoleCache(userID, guildID))
}

// DeleteExpired removes snapshots whose expiry passed but whose key is still alive, which
// happens when the clock of the writer drifted.
func (r *redisDiscordRoleCacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	keys, err := r.redisClient.ScanKeys(ctx, common.RedisKeyDiscordRoleCache("*", "*"))
	if err != nil {
		return 0, err
	}

	expired := []string{}
	for _, key := range keys {
		e := entity.DiscordRoleCache{}
		if err := r.redisClient.GetObj(ctx, key, &e); err != nil {
			if !xredis.IsNil(err) {
				xcontext.Logger(ctx).Warnf("Cannot get role cache at key %s: %v", key, err)
			}
			continue
		}

		if e.Expired(now) {
			expired = append(expired, key)
		}
	}

	if len(expired) == 0 {
		return 0, nil
	}

	if err := r.redisClient.Del(ctx, expired...); err != nil {
		return 0, err
	}

	return int64(len(expired)), nil
}
