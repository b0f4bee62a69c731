package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fatih/structs"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/api/discord"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

type DiscordEndpoint interface {
	GetMember(ctx context.Context, guildID, userID string) (discord.Member, error)
}

type DiscordVerificationDomain interface {
	VerifyJoin(context.Context, *model.VerifyDiscordJoinRequest) (*model.VerifyDiscordJoinResponse, error)
	VerifyRole(context.Context, *model.VerifyDiscordRoleRequest) (*model.VerifyDiscordRoleResponse, error)
	VerifyComplete(context.Context, *model.VerifyDiscordCompleteRequest) (*model.VerifyDiscordCompleteResponse, error)
	VerifyRolesBatch(context.Context, *model.VerifyDiscordRolesBatchRequest) (*model.VerifyDiscordRolesBatchResponse, error)
	VerifyBadgeRoles(context.Context, *model.VerifyBadgeRolesRequest) (*model.VerifyBadgeRolesResponse, error)
	Health(context.Context, *model.DiscordHealthRequest) (*model.DiscordHealthResponse, error)
}

type discordVerificationDomain struct {
	cfg      config.DiscordConfigs
	endpoint DiscordEndpoint
}

func NewDiscordVerificationDomain(cfg config.DiscordConfigs, endpoint DiscordEndpoint) *discordVerificationDomain {
	return &discordVerificationDomain{cfg: cfg, endpoint: endpoint}
}

func (d *discordVerificationDomain) VerifyJoin(
	ctx context.Context, req *model.VerifyDiscordJoinRequest,
) (*model.VerifyDiscordJoinResponse, error) {
	if req.DiscordUserID == "" {
		return nil, missingParameter("discordUserId")
	}

	if req.GuildID == "" {
		return nil, missingParameter("guildId")
	}

	member, isMember, err := d.getMember(ctx, req.GuildID, req.DiscordUserID, "Failed to verify Discord membership")
	if err != nil {
		return nil, err
	}

	if !isMember {
		return &model.VerifyDiscordJoinResponse{
			Success:  false,
			Message:  "User not found in Discord server. Please join the Discord server first.",
			IsMember: false,
		}, nil
	}

	return &model.VerifyDiscordJoinResponse{
		Success:  true,
		Message:  "Discord membership verified successfully!",
		IsMember: true,
		GuildID:  req.GuildID,
		UserID:   req.DiscordUserID,
		MemberData: &model.DiscordMemberData{
			Username:      member.User.Username,
			Discriminator: member.User.Discriminator,
			JoinedAt:      member.JoinedAt,
			Roles:         member.Roles,
		},
	}, nil
}

func (d *discordVerificationDomain) VerifyRole(
	ctx context.Context, req *model.VerifyDiscordRoleRequest,
) (*model.VerifyDiscordRoleResponse, error) {
	if err := validateRoleRequest(req); err != nil {
		return nil, err
	}

	member, isMember, err := d.getMember(ctx, req.GuildID, req.DiscordUserID, "Failed to verify Discord role")
	if err != nil {
		return nil, err
	}

	if !isMember {
		return &model.VerifyDiscordRoleResponse{
			Success: false,
			Message: "User not found in Discord server. Please join the Discord server first.",
		}, nil
	}

	resp := &model.VerifyDiscordRoleResponse{
		Success:  true,
		IsMember: true,
		HasRole:  member.HasRole(req.RoleID),
		GuildID:  req.GuildID,
		RoleID:   req.RoleID,
		UserID:   req.DiscordUserID,
	}

	if resp.HasRole {
		resp.Message = "Discord role verified successfully!"
	} else {
		resp.Message = "User does not have required role"
	}

	return resp, nil
}

func (d *discordVerificationDomain) VerifyComplete(
	ctx context.Context, req *model.VerifyDiscordCompleteRequest,
) (*model.VerifyDiscordCompleteResponse, error) {
	if err := validateRoleRequest(req); err != nil {
		return nil, err
	}

	member, isMember, err := d.getMember(ctx, req.GuildID, req.DiscordUserID, "Failed to verify Discord membership")
	if err != nil {
		return nil, err
	}

	if !isMember {
		return &model.VerifyDiscordCompleteResponse{
			Success: false,
			Message: "Please join the Discord server first before verifying role",
		}, nil
	}

	resp := &model.VerifyDiscordCompleteResponse{
		Success:   true,
		IsMember:  true,
		HasRole:   member.HasRole(req.RoleID),
		GuildID:   req.GuildID,
		RoleID:    req.RoleID,
		UserRoles: member.Roles,
	}

	if resp.HasRole {
		resp.Message = "Discord membership and role verified successfully!"
	} else {
		resp.Message = "Discord membership verified, but required role not found"
	}

	return resp, nil
}

func (d *discordVerificationDomain) VerifyRolesBatch(
	ctx context.Context, req *model.VerifyDiscordRolesBatchRequest,
) (*model.VerifyDiscordRolesBatchResponse, error) {
	if req.DiscordUserID == "" || len(req.RoleIDs) == 0 || req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Discord user ID, role IDs, and guild ID are required").
			WithDetail("Missing required parameters")
	}

	member, isMember, err := d.getMember(ctx, req.GuildID, req.DiscordUserID, "Failed to verify Discord roles")
	if err != nil {
		return nil, err
	}

	if !isMember {
		return &model.VerifyDiscordRolesBatchResponse{
			Success:    true,
			Message:    "User is not a member of the Discord server",
			RoleStatus: map[string]bool{},
		}, nil
	}

	return &model.VerifyDiscordRolesBatchResponse{
		Success:    true,
		Message:    "Discord roles verified successfully",
		RoleStatus: roleStatusOf(member, req.RoleIDs),
	}, nil
}

func (d *discordVerificationDomain) VerifyBadgeRoles(
	ctx context.Context, req *model.VerifyBadgeRolesRequest,
) (*model.VerifyBadgeRolesResponse, error) {
	if req.DiscordUserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Discord user ID is required").
			WithDetail("Missing required parameter")
	}

	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Guild ID is required").
			WithDetail("Missing required parameter")
	}

	if len(req.RoleIDs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Role IDs array is required").
			WithDetail("Missing required parameter")
	}

	member, isMember, err := d.getMember(ctx, req.GuildID, req.DiscordUserID, "Failed to verify Discord roles")
	if err != nil {
		return nil, err
	}

	if !isMember {
		return &model.VerifyBadgeRolesResponse{
			Success:  true,
			Message:  "User is not a member of the Discord server",
			Roles:    map[string]bool{},
			IsMember: false,
		}, nil
	}

	return &model.VerifyBadgeRolesResponse{
		Success:  true,
		Message:  "Badge roles verified successfully",
		Roles:    roleStatusOf(member, req.RoleIDs),
		IsMember: true,
		GuildID:  req.GuildID,
		UserID:   req.DiscordUserID,
	}, nil
}

func (d *discordVerificationDomain) Health(
	ctx context.Context, req *model.DiscordHealthRequest,
) (*model.DiscordHealthResponse, error) {
	return &model.DiscordHealthResponse{
		Success:   true,
		Message:   "Discord verification service is running",
		Timestamp: time.Now().UTC(),
		Config: structs.Map(model.DiscordHealthConfig{
			BotTokenConfigured: d.cfg.BotToken != "",
			APIURL:             d.cfg.APIURL,
			Note:               "All Discord IDs are provided per request",
		}),
	}, nil
}

// getMember returns the guild member. A user who is not a member is not an error.
func (d *discordVerificationDomain) getMember(
	ctx context.Context, guildID, userID, failMessage string,
) (discord.Member, bool, error) {
	member, err := d.endpoint.GetMember(ctx, guildID, userID)
	if err == nil {
		return member, true, nil
	}

	if errors.Is(err, discord.ErrNotMember) {
		return discord.Member{}, false, nil
	}

	if resetAt, ok := discord.IsRateLimit(err); ok {
		xcontext.Logger(ctx).Warnf("Discord rate limit of guild %s until %s", guildID, resetAt)
		return discord.Member{}, false, errorx.New(errorx.TooManyRequests, "%s", failMessage).
			WithDetail("Discord API returned status: %d", http.StatusTooManyRequests)
	}

	status := http.StatusInternalServerError
	var statusErr discord.StatusError
	if errors.As(err, &statusErr) {
		status = statusErr.Status
	}

	xcontext.Logger(ctx).Errorf("Cannot get discord member %s of guild %s: %v", userID, guildID, err)
	return discord.Member{}, false, errorx.New(errorx.BadResponse, "%s", failMessage).
		WithDetail("Discord API returned status: %d", status)
}

func validateRoleRequest(req *model.VerifyDiscordRoleRequest) error {
	if req.DiscordUserID == "" {
		return missingParameter("discordUserId")
	}

	if req.GuildID == "" {
		return missingParameter("guildId")
	}

	if req.RoleID == "" {
		return missingParameter("roleId")
	}

	return nil
}

func missingParameter(name string) error {
	return errorx.New(errorx.BadRequest, "Missing required parameter: %s", name)
}

func roleStatusOf(member discord.Member, roleIDs []string) map[string]bool {
	status := make(map[string]bool, len(roleIDs))
	for _, roleID := range roleIDs {
		status[roleID] = member.HasRole(roleID)
	}

	return status
}
