package main

import (
	"github.com/neftit-lab/backend/internal/domain"
	"github.com/neftit-lab/backend/internal/middleware"
	"github.com/neftit-lab/backend/pkg/api/discord"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startDiscord(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Discord.BotToken == "" {
		xcontext.Logger(s.ctx).Warnf("DISCORD_BOT_TOKEN is not set, verification requests will fail")
	}

	verificationDomain := domain.NewDiscordVerificationDomain(cfg.Discord, discord.New(cfg.Discord))

	s.router = s.newRouter()
	router.GET(s.router, "/health", verificationDomain.Health)

	verifyRouter := s.router.Branch()
	verifyRouter.Before(middleware.RequireDiscordBotToken())
	{
		router.POST(verifyRouter, "/verify-discord-join", verificationDomain.VerifyJoin)
		router.POST(verifyRouter, "/verify-discord-role", verificationDomain.VerifyRole)
		router.POST(verifyRouter, "/verify-discord-complete", verificationDomain.VerifyComplete)
		router.POST(verifyRouter, "/verify-discord-roles-batch", verificationDomain.VerifyRolesBatch)
		router.POST(verifyRouter, "/verify-badge-roles", verificationDomain.VerifyBadgeRoles)
	}

	return s.serve("discord", cfg.DiscordServer)
}
