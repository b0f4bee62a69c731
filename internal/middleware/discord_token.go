package middleware

import (
	"context"

	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

// RequireDiscordBotToken fails every request while the bot token is missing.
func RequireDiscordBotToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.Configs(ctx).Discord.BotToken == "" {
			return nil, errorx.New(errorx.Internal, "Discord bot token not configured on server")
		}

		return nil, nil
	}
}
