package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	Database      DatabaseConfigs
	ApiServer     ServerConfigs
	DiscordServer ServerConfigs
	TwitterServer ServerConfigs
	Auth          AuthConfigs
	Redis         RedisConfigs
	Kafka         KafkaConfigs
	Discord       DiscordConfigs
	Twitter       TwitterConfigs
	Chain         ChainConfigs
	Claim         ClaimConfigs
	Cron          CronConfigs
	Metrics       MetricsConfigs
}

type DatabaseConfigs struct {
	// Driver is one of mysql, postgres or sqlite.
	Driver   string
	DSN      string
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type ServerConfigs struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	AdminToken TokenConfigs
}

type TokenConfigs struct {
	Secret     string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfigs struct {
	Addr     string
	ClientID string
}

type DiscordConfigs struct {
	BotToken string
	BotID    string

	// APIURL is the Discord REST API root including the version.
	APIURL string

	// VerifierURL is the base URL of the discord verification service used by the role cache.
	VerifierURL string

	GuildID        string
	TrackedRoleIDs []string
	CacheTTL       time.Duration

	// CacheBackend is either "database" or "redis".
	CacheBackend string
}

type TwitterConfigs struct {
	ProfileURL  string
	Timeout     time.Duration
	MaxPageSize int64
	CacheTTL    time.Duration
	DelayMin    time.Duration
	DelayMax    time.Duration
	UserAgents  []string
}

type ChainConfigs struct {
	DefaultNetwork string
	Chains         []ChainConfig
}

type ChainConfig struct {
	Key            string
	Network        string
	ChainID        uint64
	DisplayName    string
	RPCURLs        []string
	ExplorerURLs   []string
	NativeCurrency CurrencyConfig
	NFTContract    string
	StakeContract  string
}

type CurrencyConfig struct {
	Name     string
	Symbol   string
	Decimals int
}

type ClaimConfigs struct {
	MinterPrivateKey string
	ReceiptTimeout   time.Duration
	Strategies       []string
}

type CronConfigs struct {
	CleanupInterval time.Duration
}

type MetricsConfigs struct {
	Enabled bool
	Path    string
}
