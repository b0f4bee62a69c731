package main

import (
	"github.com/neftit-lab/backend/migration"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())

	if steps := cctx.Int("down"); steps > 0 {
		if err := migration.Rollback(s.ctx, steps); err != nil {
			return err
		}

		xcontext.Logger(s.ctx).Infof("Reverted %d migrations", steps)
		return nil
	}

	return s.migrateDB()
}
