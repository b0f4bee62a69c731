package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/neftit-lab/backend/pkg/api"
)

// DiscordVerifierCaller calls the discord verification service.
type DiscordVerifierCaller interface {
	// VerifyRoles returns whether the user holds each of roleIDs in the guild. A user who is not a
	// member holds no role.
	VerifyRoles(ctx context.Context, userID, guildID string, roleIDs []string) (map[string]bool, error)
}

type discordVerifierCaller struct {
	apiGenerator api.Generator
}

func NewDiscordVerifierCaller(verifierURL string) *discordVerifierCaller {
	return &discordVerifierCaller{apiGenerator: api.NewGenerator(verifierURL)}
}

func (c *discordVerifierCaller) VerifyRoles(
	ctx context.Context, userID, guildID string, roleIDs []string,
) (map[string]bool, error) {
	resp, err := c.apiGenerator.New("/verify-discord-roles-batch").
		Body(api.JSON{
			"discordUserId": userID,
			"roleIds":       roleIDs,
			"guildId":       guildID,
		}).
		POST(ctx)
	if err != nil {
		return nil, err
	}

	body := resp.Body
	if body == nil {
		return nil, fmt.Errorf("invalid response of verifier (status %d)", resp.Code)
	}

	success, _ := body.GetBool("success")
	if resp.Code != http.StatusOK || !success {
		message, _ := body.GetString("message")
		detail, _ := body.GetString("error")
		return nil, fmt.Errorf("verifier returned status %d: %s (%s)", resp.Code, message, detail)
	}

	roleStatus, err := body.GetBoolMap("roleStatus")
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(roleIDs))
	for _, roleID := range roleIDs {
		result[roleID] = roleStatus[roleID]
	}

	return result, nil
}
