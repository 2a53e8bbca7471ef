package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionStoreMongo = "mongo"
	SessionStoreRedis = "redis"
)

type Config struct {
	Port      string `env:"PORT,      default=3000"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=720h"`
	BcryptCost      int           `env:"BCRYPT_COST,       default=10"`
	SessionStore    string        `env:"SESSION_STORE,     default=mongo"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	User     string `env:"MONGODB_USER,     required"`
	Password string `env:"MONGODB_PASSWORD, required"`
	Host     string `env:"MONGODB_URL,      required"`
	Database string `env:"MONGODB_DB,       required"`
	Options  string `env:"MONGODB_OPTIONS"`
	Scheme   string `env:"MONGODB_SCHEME,   default=mongodb+srv"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// URI assembles the connection string with the credentials escaped as URL
// userinfo.
func (m MongoConfig) URI() string {
	uri := fmt.Sprintf("%s://%s@%s/%s",
		m.Scheme, url.UserPassword(m.User, m.Password).String(), m.Host, m.Database)
	if opts := strings.TrimPrefix(m.Options, "?"); opts != "" {
		uri += "?" + opts
	}
	return uri
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom is Load with an explicit variable source.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.SessionStore {
	case SessionStoreMongo, SessionStoreRedis:
	default:
		return nil, fmt.Errorf("config: SESSION_STORE must be %q or %q, got %q",
			SessionStoreMongo, SessionStoreRedis, cfg.SessionStore)
	}
	return &cfg, nil
}
