package config

import (
	"errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads the configs from the toml file at path and overrides them with the environment
// variables. An empty path only applies the environment.
func Load(path string) (Configs, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Configs{}, err
			}
		}
	}

	applyEnv(&cfg)

	if len(cfg.Chain.Chains) == 0 {
		cfg.Chain.Chains = DefaultChains()
	}

	if cfg.Chain.DefaultNetwork == "" {
		cfg.Chain.DefaultNetwork = DefaultNetwork
	}

	return cfg, nil
}

func applyEnv(cfg *Configs) {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Database, "DB_NAME")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")

	setString(&cfg.ApiServer.Port, "API_PORT")
	setString(&cfg.DiscordServer.Port, "PORT")
	setString(&cfg.TwitterServer.Port, "TWITTER_PORT")

	setString(&cfg.Auth.AdminToken.Secret, "AUTH_TOKEN_SECRET")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Kafka.Addr, "KAFKA_BROKERS")

	setString(&cfg.Discord.BotToken, "DISCORD_BOT_TOKEN")
	setString(&cfg.Discord.VerifierURL, "DISCORD_VERIFIER_URL")
	setString(&cfg.Discord.GuildID, "DISCORD_GUILD_ID")
	if roles := os.Getenv("DISCORD_TRACKED_ROLE_IDS"); roles != "" {
		cfg.Discord.TrackedRoleIDs = splitList(roles)
	}

	setString(&cfg.Claim.MinterPrivateKey, "MINTER_PRIVATE_KEY")
}

func setString(field *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*field = value
	}
}

func splitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}
