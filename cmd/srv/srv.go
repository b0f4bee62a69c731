package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/client"
	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/internal/domain"
	"github.com/neftit-lab/backend/internal/domain/chain"
	"github.com/neftit-lab/backend/internal/domain/discordrole"
	"github.com/neftit-lab/backend/internal/middleware"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/internal/repository"
	"github.com/neftit-lab/backend/migration"
	"github.com/neftit-lab/backend/pkg/idutil"
	"github.com/neftit-lab/backend/pkg/kafka"
	"github.com/neftit-lab/backend/pkg/logger"
	"github.com/neftit-lab/backend/pkg/prometheus"
	"github.com/neftit-lab/backend/pkg/pubsub"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/neftit-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	router *router.Router

	redisClient    xredis.Client
	broker         *pubsub.Broker
	kafkaPublisher *kafka.Publisher
	publisher      pubsub.Publisher

	registry *chain.Registry

	discordRoleCacheRepo repository.DiscordRoleCacheRepository
	nftClaimRepo         repository.NFTClaimRepository

	roleCache *discordrole.RoleCache

	chainDomain       domain.ChainDomain
	discordRoleDomain domain.DiscordRoleDomain
	nftClaimDomain    domain.NFTClaimDomain
}

func (s *srv) setup(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(cctx.Context, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.LogLevel)))
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: 20 * time.Second})

	idutil.SetNode(cctx.Int64("node-id"))
	return nil
}

func (s *srv) teardown(*cli.Context) error {
	if s.ctx == nil {
		return nil
	}

	if s.kafkaPublisher != nil {
		if err := s.kafkaPublisher.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop kafka publisher: %v", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close redis client: %v", err)
		}
	}

	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}

func (s *srv) migrateDB() error {
	return migration.Migrate(s.ctx)
}

func (s *srv) loadRedisClient() error {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis)
	return err
}

// loadPublisher publishes domain events to the in-process broker, and to kafka when brokers are
// configured.
func (s *srv) loadPublisher() error {
	s.broker = pubsub.NewBroker()
	s.publisher = pubsub.Fanout{s.broker}

	pubsub.Subscribe(s.broker, common.TopicChainSwitched, func(ctx context.Context, e model.ChainSwitchedEvent) {
		xcontext.Logger(s.ctx).Infof("Chain switched to %s (%d) for %s", e.Network, e.ChainID, e.Operation)
	})
	pubsub.Subscribe(s.broker, common.TopicDiscordRolesVerified, func(ctx context.Context, e model.DiscordRolesVerifiedEvent) {
		xcontext.Logger(s.ctx).Debugf("Discord roles of %s verified in %s", e.UserID, e.GuildID)
	})
	pubsub.Subscribe(s.broker, common.TopicNFTClaimed, func(ctx context.Context, e model.NFTClaimedEvent) {
		xcontext.Logger(s.ctx).Infof("NFT %s claimed by %s on %s: %s", e.NFTID, e.Wallet, e.Network, e.TxHash)
	})

	cfg := xcontext.Configs(s.ctx).Kafka
	if cfg.Addr == "" {
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg)
	if err != nil {
		return err
	}

	s.kafkaPublisher = publisher
	s.publisher = pubsub.Fanout{s.broker, publisher}
	return nil
}

func (s *srv) loadRegistry() error {
	var err error
	s.registry, err = chain.NewRegistry(xcontext.Configs(s.ctx).Chain)
	return err
}

func (s *srv) loadRepos() error {
	s.nftClaimRepo = repository.NewNFTClaimRepository()

	switch backend := xcontext.Configs(s.ctx).Discord.CacheBackend; backend {
	case "redis":
		if err := s.loadRedisClient(); err != nil {
			return err
		}
		s.discordRoleCacheRepo = repository.NewRedisDiscordRoleCacheRepository(s.redisClient)
	case "database", "":
		s.discordRoleCacheRepo = repository.NewDiscordRoleCacheRepository()
	default:
		return fmt.Errorf("unknown discord role cache backend %q", backend)
	}

	return nil
}

func (s *srv) loadRoleCache() {
	cfg := xcontext.Configs(s.ctx).Discord
	s.roleCache = discordrole.NewRoleCache(
		cfg,
		s.discordRoleCacheRepo,
		client.NewDiscordVerifierCaller(cfg.VerifierURL),
		s.publisher,
	)
}

func (s *srv) newRouter() *router.Router {
	r := router.New(s.ctx)
	r.Before(middleware.WithStartTime())
	r.AddCloser(middleware.Logger(), middleware.Prometheus())

	if metrics := xcontext.Configs(s.ctx).Metrics; metrics.Enabled {
		r.Handle(metrics.Path, prometheus.NewHandler(common.PromCollectors()...))
	}

	return r
}

// serve runs the http server until the process receives SIGINT or SIGTERM.
func (s *srv) serve(name string, cfg config.ServerConfigs) error {
	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:    cfg.Address(),
		Handler: s.router.Handler(cfg.AllowedOrigins...),
	}

	errCh := make(chan error, 1)
	go func() {
		xcontext.Logger(s.ctx).Infof("Starting %s server on port: %s", name, cfg.Port)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	xcontext.Logger(s.ctx).Infof("Stopping %s server", name)
	return httpSrv.Shutdown(shutdownCtx)
}
