package testutil

import (
	"context"
	"errors"

	"github.com/neftit-lab/backend/pkg/api/discord"
)

type MockDiscordEndpoint struct {
	GetMemberFunc func(ctx context.Context, guildID, userID string) (discord.Member, error)
}

func (e *MockDiscordEndpoint) GetMember(ctx context.Context, guildID, userID string) (discord.Member, error) {
	if e.GetMemberFunc != nil {
		return e.GetMemberFunc(ctx, guildID, userID)
	}

	return discord.Member{}, errors.New("not implemented")
}

type MockDiscordVerifierCaller struct {
	VerifyRolesFunc func(ctx context.Context, userID, guildID string, roleIDs []string) (map[string]bool, error)
}

func (c *MockDiscordVerifierCaller) VerifyRoles(
	ctx context.Context, userID, guildID string, roleIDs []string,
) (map[string]bool, error) {
	if c.VerifyRolesFunc != nil {
		return c.VerifyRolesFunc(ctx, userID, guildID, roleIDs)
	}

	return nil, errors.New("not implemented")
}
