package main

import (
	"github.com/neftit-lab/backend/internal/domain"
	"github.com/neftit-lab/backend/internal/domain/nftclaim"
	"github.com/neftit-lab/backend/internal/middleware"
	"github.com/neftit-lab/backend/pkg/authenticator"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	if err := s.migrateDB(); err != nil {
		return err
	}

	if err := s.loadRegistry(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadRepos(); err != nil {
		return err
	}

	s.loadRoleCache()
	s.loadApiDomains()
	s.loadApiRouter()

	return s.serve("api", xcontext.Configs(s.ctx).ApiServer)
}

func (s *srv) loadApiDomains() {
	cfg := xcontext.Configs(s.ctx)

	s.chainDomain = domain.NewChainDomain(s.registry)
	s.discordRoleDomain = domain.NewDiscordRoleDomain(s.roleCache)

	dialer, err := nftclaim.NewDialer(cfg.Claim.MinterPrivateKey)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("NFT claims are disabled: %v", err)
		return
	}

	s.nftClaimDomain = domain.NewNFTClaimDomain(cfg.Claim, s.registry, s.nftClaimRepo, dialer, s.publisher)
}

func (s *srv) loadApiRouter() {
	s.router = s.newRouter()

	// Chain API
	router.POST(s.router, "/resolveChain", s.chainDomain.ResolveChain)
	router.POST(s.router, "/planOperation", s.chainDomain.PlanOperation)
	router.GET(s.router, "/getChains", s.chainDomain.GetChains)

	// Discord role API
	router.POST(s.router, "/checkDiscordRole", s.discordRoleDomain.CheckDiscordRole)
	router.POST(s.router, "/verifyDiscordRoles", s.discordRoleDomain.VerifyDiscordRoles)

	// NFT API
	if s.nftClaimDomain != nil {
		router.POST(s.router, "/claimNFT", s.nftClaimDomain.Claim)
	}

	// These following APIs need an admin token.
	adminRouter := s.router.Branch()
	tokenEngine := authenticator.NewTokenEngine[middleware.AdminToken](xcontext.Configs(s.ctx).Auth.AdminToken)
	adminRouter.Before(middleware.OnlyAdmin(tokenEngine))
	{
		router.POST(adminRouter, "/admin/refreshDiscordRoles", s.discordRoleDomain.RefreshDiscordRoles)
		router.POST(adminRouter, "/admin/cleanupDiscordRoleCache", s.discordRoleDomain.CleanupDiscordRoleCache)
	}
}
