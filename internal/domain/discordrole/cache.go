package discordrole

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/client"
	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/internal/repository"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/pubsub"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const DefaultTTL = 2 * time.Hour

// RoleCache answers role checks of discord users from a role snapshot, refreshing the snapshot
// with a single batch call to the verifier when it is missing or expired.
type RoleCache struct {
	repo      repository.DiscordRoleCacheRepository
	verifier  client.DiscordVerifierCaller
	publisher pubsub.Publisher

	guildID        string
	trackedRoleIDs []string
	ttl            time.Duration
	now            func() time.Time
}

func NewRoleCache(
	cfg config.DiscordConfigs,
	repo repository.DiscordRoleCacheRepository,
	verifier client.DiscordVerifierCaller,
	publisher pubsub.Publisher,
) *RoleCache {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if publisher == nil {
		publisher = pubsub.NopPublisher()
	}

	return &RoleCache{
		repo:           repo,
		verifier:       verifier,
		publisher:      publisher,
		guildID:        cfg.GuildID,
		trackedRoleIDs: append([]string{}, cfg.TrackedRoleIDs...),
		ttl:            ttl,
		now:            time.Now,
	}
}

// WithClock replaces the clock used for expiry.
func (c *RoleCache) WithClock(now func() time.Time) *RoleCache {
	c.now = now
	return c
}

// HasRole reports whether the user holds roleID. A valid snapshot answers without calling the
// verifier, whatever the role.
func (c *RoleCache) HasRole(ctx context.Context, userID, roleID string) (bool, error) {
	if userID == "" || roleID == "" {
		return false, errorx.New(errorx.BadRequest, "Discord user ID and role ID are required")
	}

	snapshot, err := c.validSnapshot(ctx, userID)
	if err != nil {
		return false, err
	}

	if snapshot != nil {
		common.IncCounter(common.DiscordRoleCacheLookupTotal, "hit")
		return snapshot.HasRole(roleID), nil
	}

	common.IncCounter(common.DiscordRoleCacheLookupTotal, "miss")
	result, err := c.refresh(ctx, userID, roleID)
	if err != nil {
		return false, err
	}

	return result.RoleStatus[roleID], nil
}

// BatchVerify returns the status of every tracked role of the user.
func (c *RoleCache) BatchVerify(ctx context.Context, userID string) (*model.RoleStatusResult, error) {
	if userID == "" {
		return nil, errorx.New(errorx.BadRequest, "Discord user ID is required")
	}

	snapshot, err := c.validSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if snapshot != nil {
		common.IncCounter(common.DiscordRoleCacheLookupTotal, "hit")
		status := make(map[string]bool, len(c.trackedRoleIDs))
		for _, roleID := range c.trackedRoleIDs {
			status[roleID] = snapshot.HasRole(roleID)
		}

		return &model.RoleStatusResult{
			Success:    true,
			RoleStatus: status,
			Cached:     true,
			VerifiedAt: snapshot.VerifiedAt,
			ExpiresAt:  snapshot.ExpiresAt,
		}, nil
	}

	common.IncCounter(common.DiscordRoleCacheLookupTotal, "miss")
	return c.refresh(ctx, userID, "")
}

// ForceRefresh deletes the snapshot of the user, the next check always calls the verifier.
func (c *RoleCache) ForceRefresh(ctx context.Context, userID string) error {
	if userID == "" {
		return errorx.New(errorx.BadRequest, "Discord user ID is required")
	}

	if err := c.repo.Delete(ctx, userID, c.guildID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete role cache of %s: %v", userID, err)
		return errorx.Unknown
	}

	return nil
}

// CleanupExpired deletes all expired snapshots. Reads never depend on it.
func (c *RoleCache) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := c.repo.DeleteExpired(ctx, c.now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cleanup expired role cache: %v", err)
		return 0, errorx.Unknown
	}

	return deleted, nil
}

func (c *RoleCache) validSnapshot(ctx context.Context, userID string) (*entity.DiscordRoleCache, error) {
	snapshot, err := c.repo.Get(ctx, userID, c.guildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get role cache of %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	if snapshot.Expired(c.now()) {
		return nil, nil
	}

	return snapshot, nil
}

// refresh asks the verifier for the tracked roles plus extraRoleID and stores the roles the user
// holds. Nothing is stored if the verifier fails.
func (c *RoleCache) refresh(
	ctx context.Context, userID, extraRoleID string,
) (*model.RoleStatusResult, error) {
	roleIDs := append([]string{}, c.trackedRoleIDs...)
	if extraRoleID != "" && !slices.Contains(roleIDs, extraRoleID) {
		roleIDs = append(roleIDs, extraRoleID)
	}

	status, err := c.verifier.VerifyRoles(ctx, userID, c.guildID, roleIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify discord roles of %s: %v", userID, err)
		return nil, errorx.New(errorx.Unavailable, "Failed to verify Discord roles").
			WithDetail("%v", err)
	}

	now := c.now()
	held := entity.StringList{}
	for _, roleID := range roleIDs {
		if status[roleID] {
			held = append(held, roleID)
		}
	}

	snapshot := &entity.DiscordRoleCache{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     userID,
		GuildID:    c.guildID,
		Roles:      held,
		VerifiedAt: now,
		ExpiresAt:  now.Add(c.ttl),
	}

	if err := c.repo.Upsert(ctx, snapshot); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot store role cache of %s: %v", userID, err)
	} else {
		event := model.DiscordRolesVerifiedEvent{
			UserID:     userID,
			GuildID:    c.guildID,
			Roles:      held,
			VerifiedAt: snapshot.VerifiedAt,
			ExpiresAt:  snapshot.ExpiresAt,
		}
		if err := pubsub.Publish(ctx, c.publisher, common.TopicDiscordRolesVerified, userID, event); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish roles verified event: %v", err)
		}
	}

	roleStatus := make(map[string]bool, len(roleIDs))
	for _, roleID := range roleIDs {
		roleStatus[roleID] = status[roleID]
	}

	return &model.RoleStatusResult{
		Success:    true,
		RoleStatus: roleStatus,
		VerifiedAt: snapshot.VerifiedAt,
		ExpiresAt:  snapshot.ExpiresAt,
	}, nil
}
