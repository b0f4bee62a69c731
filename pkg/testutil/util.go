package testutil

import (
	"context"
	"time"

	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/pkg/logger"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.Auth.AdminToken = config.TokenConfigs{Secret: "secret", Expiration: time.Minute}
	cfg.Discord.BotToken = "bot-token"
	cfg.Discord.GuildID = "guild-1"
	cfg.Discord.TrackedRoleIDs = []string{"role-a", "role-b"}
	cfg.Twitter.DelayMin = 0
	cfg.Twitter.DelayMax = 0
	return cfg
}

// MockContext returns a context carrying a silent logger, the mock configs and a fresh in-memory
// database with all tables migrated.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a different database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
