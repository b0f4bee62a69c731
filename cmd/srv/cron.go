package main

import (
	"os/signal"
	"syscall"

	"github.com/neftit-lab/backend/internal/domain/cron"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	if err := s.migrateDB(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadRepos(); err != nil {
		return err
	}

	s.loadRoleCache()

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(
		ctx,
		cron.NewCleanupDiscordRoleCacheCronJob(s.roleCache, xcontext.Configs(s.ctx).Cron.CleanupInterval),
	)

	return nil
}
