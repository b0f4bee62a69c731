package main

import (
	"github.com/neftit-lab/backend/internal/domain"
	"github.com/neftit-lab/backend/internal/domain/scraper"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startTwitter(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx)

	session := scraper.NewSession(cfg.Twitter)
	defer session.Close()

	verificationDomain := domain.NewTwitterVerificationDomain(
		cfg.Twitter, session, scraper.NewTaskCache(cfg.Twitter.CacheTTL))

	s.router = s.newRouter()
	router.POST(s.router, "/verify-retweet", verificationDomain.VerifyRetweet)
	router.POST(s.router, "/verify-tweet", verificationDomain.VerifyTweet)
	router.POST(s.router, "/verify-follow", verificationDomain.VerifyFollow)
	router.POST(s.router, "/reset-browser", verificationDomain.ResetBrowser)
	router.POST(s.router, "/clear-cache", verificationDomain.ClearCache)
	router.GET(s.router, "/health", verificationDomain.Health)

	return s.serve("twitter", cfg.TwitterServer)
}
