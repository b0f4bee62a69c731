package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/api/discord"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/testutil"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

var testMember = discord.Member{
	User:     discord.User{ID: "user-1", Username: "alice", Discriminator: "0001"},
	JoinedAt: "2024-01-01T00:00:00.000000+00:00",
	Roles:    []string{"role-a", "role-c"},
}

func endpointReturning(member discord.Member, err error) *testutil.MockDiscordEndpoint {
	return &testutil.MockDiscordEndpoint{
		GetMemberFunc: func(ctx context.Context, guildID, userID string) (discord.Member, error) {
			return member, err
		},
	}
}

func newDiscordVerificationDomain(ctx context.Context, endpoint DiscordEndpoint) *discordVerificationDomain {
	return NewDiscordVerificationDomain(xcontext.Configs(ctx).Discord, endpoint)
}

func requireErrorx(t *testing.T, err error, code errorx.Code, message, detail string) {
	t.Helper()

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, code, errx.Code)
	require.Equal(t, message, errx.Message)
	require.Equal(t, detail, errx.Detail)
}

func Test_discordVerificationDomain_VerifyJoin(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.VerifyDiscordJoinRequest
		member   discord.Member
		getErr   error
		want     *model.VerifyDiscordJoinResponse
		wantCode errorx.Code
		wantMsg  string
		wantDet  string
	}{
		{
			name:     "missing user",
			req:      &model.VerifyDiscordJoinRequest{GuildID: "guild-1"},
			wantCode: errorx.BadRequest,
			wantMsg:  "Missing required parameter: discordUserId",
		},
		{
			name:     "missing guild",
			req:      &model.VerifyDiscordJoinRequest{DiscordUserID: "user-1"},
			wantCode: errorx.BadRequest,
			wantMsg:  "Missing required parameter: guildId",
		},
		{
			name:   "member",
			req:    &model.VerifyDiscordJoinRequest{DiscordUserID: "user-1", GuildID: "guild-1"},
			member: testMember,
			want: &model.VerifyDiscordJoinResponse{
				Success:  true,
				Message:  "Discord membership verified successfully!",
				IsMember: true,
				GuildID:  "guild-1",
				UserID:   "user-1",
				MemberData: &model.DiscordMemberData{
					Username:      "alice",
					Discriminator: "0001",
					JoinedAt:      testMember.JoinedAt,
					Roles:         testMember.Roles,
				},
			},
		},
		{
			name:   "not a member",
			req:    &model.VerifyDiscordJoinRequest{DiscordUserID: "user-1", GuildID: "guild-1"},
			getErr: discord.ErrNotMember,
			want: &model.VerifyDiscordJoinResponse{
				Success: false,
				Message: "User not found in Discord server. Please join the Discord server first.",
			},
		},
		{
			name:     "upstream status",
			req:      &model.VerifyDiscordJoinRequest{DiscordUserID: "user-1", GuildID: "guild-1"},
			getErr:   discord.StatusError{Status: http.StatusForbidden},
			wantCode: errorx.BadResponse,
			wantMsg:  "Failed to verify Discord membership",
			wantDet:  "Discord API returned status: 403",
		},
		{
			name:     "network error",
			req:      &model.VerifyDiscordJoinRequest{DiscordUserID: "user-1", GuildID: "guild-1"},
			getErr:   errors.New("connection refused"),
			wantCode: errorx.BadResponse,
			wantMsg:  "Failed to verify Discord membership",
			wantDet:  "Discord API returned status: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			d := newDiscordVerificationDomain(ctx, endpointReturning(tt.member, tt.getErr))

			got, err := d.VerifyJoin(ctx, tt.req)
			if tt.wantCode != 0 {
				requireErrorx(t, err, tt.wantCode, tt.wantMsg, tt.wantDet)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_discordVerificationDomain_VerifyRole(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.VerifyDiscordRoleRequest
		getErr   error
		want     *model.VerifyDiscordRoleResponse
		wantCode errorx.Code
		wantMsg  string
	}{
		{
			name:     "missing role",
			req:      &model.VerifyDiscordRoleRequest{DiscordUserID: "user-1", GuildID: "guild-1"},
			wantCode: errorx.BadRequest,
			wantMsg:  "Missing required parameter: roleId",
		},
		{
			name: "has role",
			req:  &model.VerifyDiscordRoleRequest{DiscordUserID: "user-1", GuildID: "guild-1", RoleID: "role-a"},
			want: &model.VerifyDiscordRoleResponse{
				Success:  true,
				Message:  "Discord role verified successfully!",
				IsMember: true,
				HasRole:  true,
				GuildID:  "guild-1",
				RoleID:   "role-a",
				UserID:   "user-1",
			},
		},
		{
			name: "missing role of member",
			req:  &model.VerifyDiscordRoleRequest{DiscordUserID: "user-1", GuildID: "guild-1", RoleID: "role-b"},
			want: &model.VerifyDiscordRoleResponse{
				Success:  true,
				Message:  "User does not have required role",
				IsMember: true,
				HasRole:  false,
				GuildID:  "guild-1",
				RoleID:   "role-b",
				UserID:   "user-1",
			},
		},
		{
			name:   "not a member",
			req:    &model.VerifyDiscordRoleRequest{DiscordUserID: "user-1", GuildID: "guild-1", RoleID: "role-a"},
			getErr: discord.ErrNotMember,
			want: &model.VerifyDiscordRoleResponse{
				Success: false,
				Message: "User not found in Discord server. Please join the Discord server first.",
			},
		},
		{
			name:     "rate limited",
			req:      &model.VerifyDiscordRoleRequest{DiscordUserID: "user-1", GuildID: "guild-1", RoleID: "role-a"},
			getErr:   fmt.Errorf("get member: %w", discord.RateLimitError{ResetAt: time.Unix(1700000000, 0)}),
			wantCode: errorx.TooManyRequests,
			wantMsg:  "Failed to verify Discord role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			d := newDiscordVerificationDomain(ctx, endpointReturning(testMember, tt.getErr))

			got, err := d.VerifyRole(ctx, tt.req)
			if tt.wantCode != 0 {
				var errx errorx.Error
				require.True(t, errors.As(err, &errx))
				require.Equal(t, tt.wantCode, errx.Code)
				require.Equal(t, tt.wantMsg, errx.Message)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_discordVerificationDomain_VerifyComplete(t *testing.T) {
	ctx := testutil.MockContext()
	d := newDiscordVerificationDomain(ctx, endpointReturning(testMember, nil))

	got, err := d.VerifyComplete(ctx, &model.VerifyDiscordCompleteRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleID: "role-c",
	})
	require.NoError(t, err)
	require.Equal(t, &model.VerifyDiscordCompleteResponse{
		Success:   true,
		Message:   "Discord membership and role verified successfully!",
		IsMember:  true,
		HasRole:   true,
		GuildID:   "guild-1",
		RoleID:    "role-c",
		UserRoles: testMember.Roles,
	}, got)

	got, err = d.VerifyComplete(ctx, &model.VerifyDiscordCompleteRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleID: "role-x",
	})
	require.NoError(t, err)
	require.Equal(t, "Discord membership verified, but required role not found", got.Message)
	require.False(t, got.HasRole)

	d = newDiscordVerificationDomain(ctx, endpointReturning(discord.Member{}, discord.ErrNotMember))
	got, err = d.VerifyComplete(ctx, &model.VerifyDiscordCompleteRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleID: "role-a",
	})
	require.NoError(t, err)
	require.Equal(t, &model.VerifyDiscordCompleteResponse{
		Success: false,
		Message: "Please join the Discord server first before verifying role",
	}, got)
}

func Test_discordVerificationDomain_VerifyRolesBatch(t *testing.T) {
	ctx := testutil.MockContext()

	d := newDiscordVerificationDomain(ctx, endpointReturning(testMember, nil))
	_, err := d.VerifyRolesBatch(ctx, &model.VerifyDiscordRolesBatchRequest{DiscordUserID: "user-1", GuildID: "guild-1"})
	requireErrorx(t, err, errorx.BadRequest,
		"Discord user ID, role IDs, and guild ID are required", "Missing required parameters")

	got, err := d.VerifyRolesBatch(ctx, &model.VerifyDiscordRolesBatchRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleIDs: []string{"role-a", "role-b", "role-c"},
	})
	require.NoError(t, err)
	require.True(t, got.Success)
	require.Equal(t, map[string]bool{"role-a": true, "role-b": false, "role-c": true}, got.RoleStatus)

	d = newDiscordVerificationDomain(ctx, endpointReturning(discord.Member{}, discord.ErrNotMember))
	got, err = d.VerifyRolesBatch(ctx, &model.VerifyDiscordRolesBatchRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleIDs: []string{"role-a"},
	})
	require.NoError(t, err)
	require.Equal(t, &model.VerifyDiscordRolesBatchResponse{
		Success:    true,
		Message:    "User is not a member of the Discord server",
		RoleStatus: map[string]bool{},
	}, got)

	d = newDiscordVerificationDomain(ctx, endpointReturning(discord.Member{}, discord.StatusError{Status: 502}))
	_, err = d.VerifyRolesBatch(ctx, &model.VerifyDiscordRolesBatchRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleIDs: []string{"role-a"},
	})
	requireErrorx(t, err, errorx.BadResponse, "Failed to verify Discord roles", "Discord API returned status: 502")
}

func Test_discordVerificationDomain_VerifyBadgeRoles(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.VerifyBadgeRolesRequest
		wantMsg string
	}{
		{name: "missing user", req: &model.VerifyBadgeRolesRequest{GuildID: "g", RoleIDs: []string{"r"}}, wantMsg: "Discord user ID is required"},
		{name: "missing guild", req: &model.VerifyBadgeRolesRequest{DiscordUserID: "u", RoleIDs: []string{"r"}}, wantMsg: "Guild ID is required"},
		{name: "missing roles", req: &model.VerifyBadgeRolesRequest{DiscordUserID: "u", GuildID: "g"}, wantMsg: "Role IDs array is required"},
	}

	ctx := testutil.MockContext()
	d := newDiscordVerificationDomain(ctx, endpointReturning(testMember, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.VerifyBadgeRoles(ctx, tt.req)
			requireErrorx(t, err, errorx.BadRequest, tt.wantMsg, "Missing required parameter")
		})
	}

	got, err := d.VerifyBadgeRoles(ctx, &model.VerifyBadgeRolesRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleIDs: []string{"role-a", "role-b"},
	})
	require.NoError(t, err)
	require.Equal(t, &model.VerifyBadgeRolesResponse{
		Success:  true,
		Message:  "Badge roles verified successfully",
		Roles:    map[string]bool{"role-a": true, "role-b": false},
		IsMember: true,
		GuildID:  "guild-1",
		UserID:   "user-1",
	}, got)

	d = newDiscordVerificationDomain(ctx, endpointReturning(discord.Member{}, discord.ErrNotMember))
	got, err = d.VerifyBadgeRoles(ctx, &model.VerifyBadgeRolesRequest{
		DiscordUserID: "user-1", GuildID: "guild-1", RoleIDs: []string{"role-a"},
	})
	require.NoError(t, err)
	require.True(t, got.Success)
	require.False(t, got.IsMember)
	require.Empty(t, got.Roles)
}

func Test_discordVerificationDomain_Health(t *testing.T) {
	ctx := testutil.MockContext()
	d := newDiscordVerificationDomain(ctx, endpointReturning(testMember, nil))

	got, err := d.Health(ctx, &model.DiscordHealthRequest{})
	require.NoError(t, err)
	require.True(t, got.Success)
	require.Equal(t, "Discord verification service is running", got.Message)
	require.Equal(t, true, got.Config["botTokenConfigured"])
}
