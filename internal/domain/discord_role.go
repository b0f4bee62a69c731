package domain

import (
	"context"

	"github.com/neftit-lab/backend/internal/domain/discordrole"
	"github.com/neftit-lab/backend/internal/model"
)

type DiscordRoleDomain interface {
	CheckDiscordRole(context.Context, *model.CheckDiscordRoleRequest) (*model.CheckDiscordRoleResponse, error)
	VerifyDiscordRoles(context.Context, *model.VerifyDiscordRolesRequest) (*model.VerifyDiscordRolesResponse, error)
	RefreshDiscordRoles(context.Context, *model.RefreshDiscordRolesRequest) (*model.RefreshDiscordRolesResponse, error)
	CleanupDiscordRoleCache(context.Context, *model.CleanupDiscordRoleCacheRequest) (*model.CleanupDiscordRoleCacheResponse, error)
}

type discordRoleDomain struct {
	cache *discordrole.RoleCache
}

func NewDiscordRoleDomain(cache *discordrole.RoleCache) *discordRoleDomain {
	return &discordRoleDomain{cache: cache}
}

func (d *discordRoleDomain) CheckDiscordRole(
	ctx context.Context, req *model.CheckDiscordRoleRequest,
) (*model.CheckDiscordRoleResponse, error) {
	hasRole, err := d.cache.HasRole(ctx, req.DiscordUserID, req.RoleID)
	if err != nil {
		return nil, err
	}

	return &model.CheckDiscordRoleResponse{Success: true, HasRole: hasRole, RoleID: req.RoleID}, nil
}

func (d *discordRoleDomain) VerifyDiscordRoles(
	ctx context.Context, req *model.VerifyDiscordRolesRequest,
) (*model.VerifyDiscordRolesResponse, error) {
	return d.cache.BatchVerify(ctx, req.DiscordUserID)
}

func (d *discordRoleDomain) RefreshDiscordRoles(
	ctx context.Context, req *model.RefreshDiscordRolesRequest,
) (*model.RefreshDiscordRolesResponse, error) {
	if err := d.cache.ForceRefresh(ctx, req.DiscordUserID); err != nil {
		return nil, err
	}

	return &model.RefreshDiscordRolesResponse{
		Success: true,
		Message: "Discord role cache cleared, roles will be verified on the next check",
	}, nil
}

func (d *discordRoleDomain) CleanupDiscordRoleCache(
	ctx context.Context, req *model.CleanupDiscordRoleCacheRequest,
) (*model.CleanupDiscordRoleCacheResponse, error) {
	deleted, err := d.cache.CleanupExpired(ctx)
	if err != nil {
		return nil, err
	}

	return &model.CleanupDiscordRoleCacheResponse{
		Success: true,
		Message: "Expired Discord role cache entries removed",
		Deleted: deleted,
	}, nil
}
