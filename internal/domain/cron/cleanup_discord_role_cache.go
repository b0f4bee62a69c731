package cron

import (
	"context"
	"time"

	"github.com/neftit-lab/backend/internal/domain/discordrole"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

type CleanupDiscordRoleCacheCronJob struct {
	cache    *discordrole.RoleCache
	interval time.Duration
}

func NewCleanupDiscordRoleCacheCronJob(
	cache *discordrole.RoleCache, interval time.Duration,
) *CleanupDiscordRoleCacheCronJob {
	if interval <= 0 {
		interval = time.Hour
	}

	return &CleanupDiscordRoleCacheCronJob{cache: cache, interval: interval}
}

func (job *CleanupDiscordRoleCacheCronJob) Do(ctx context.Context) {
	deleted, err := job.cache.CleanupExpired(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cleanup discord role cache: %v", err)
		return
	}

	if deleted > 0 {
		xcontext.Logger(ctx).Infof("Removed %d expired discord role snapshots", deleted)
	}
}

func (job *CleanupDiscordRoleCacheCronJob) RunNow() bool {
	return true
}

func (job *CleanupDiscordRoleCacheCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
