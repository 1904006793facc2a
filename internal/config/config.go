package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Gamma     UpstreamConfig  `mapstructure:"gamma"`
	Clob      UpstreamConfig  `mapstructure:"clob"`
	Comments  UpstreamConfig  `mapstructure:"comments"`
	Chain     ChainConfig     `mapstructure:"chain"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Builder   BuilderConfig   `mapstructure:"builder"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// AuthConfig points at the hosted auth provider that issues and resolves
// bearer tokens. AnonKey rides along on public calls, ServiceKey on
// privileged ones. JWTSecret is optional: when set, tokens are checked
// locally before spending an upstream round-trip.
type AuthConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	AnonKey    string `mapstructure:"anon_key"`
	ServiceKey string `mapstructure:"service_key"`
	JWTSecret  string `mapstructure:"jwt_secret"`
}

type UpstreamConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type ChainConfig struct {
	ID int64 `mapstructure:"id"`
}

type CORSConfig struct {
	// AllowedOrigins is a comma-separated list in the environment.
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

func (c CORSConfig) Origins() []string {
	if strings.TrimSpace(c.AllowedOrigins) == "" {
		return nil
	}
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// BuilderConfig holds the attribution credentials for the signing endpoints.
// All three must be present for signing to be enabled.
type BuilderConfig struct {
	ApiKey        string `mapstructure:"api_key"`
	ApiSecret     string `mapstructure:"api_secret"`
	ApiPassphrase string `mapstructure:"api_passphrase"`
}

func (b BuilderConfig) Enabled() bool {
	return b.ApiKey != "" && b.ApiSecret != "" && b.ApiPassphrase != ""
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
	// AuditRetentionDays bounds how long persisted audit entries are kept.
	// Zero disables the retention sweep.
	AuditRetentionDays int `mapstructure:"audit_retention_days"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	// Environment variables support
	// e.g. POLYPROXY_AUTH_BASE_URL
	viper.SetEnvPrefix("polyproxy")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("gamma.base_url", "https://gamma-api.polymarket.com")
	viper.SetDefault("clob.base_url", "https://clob.polymarket.com")
	viper.SetDefault("comments.base_url", "https://gamma-api.polymarket.com")
	viper.SetDefault("chain.id", 137)
	viper.SetDefault("ratelimit.window_seconds", 60)
	viper.SetDefault("ratelimit.max_requests", 120)
	viper.SetDefault("database.audit_retention_days", 30)
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults and env vars")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate collects every offending key so a broken deployment reports all
// of its problems at once instead of one per restart.
func (c *Config) Validate() error {
	var bad []string

	if c.Auth.BaseURL == "" {
		bad = append(bad, "auth.base_url (required)")
	} else if !isAbsoluteURL(c.Auth.BaseURL) {
		bad = append(bad, "auth.base_url (not a valid URL)")
	}
	if c.Auth.AnonKey == "" {
		bad = append(bad, "auth.anon_key (required)")
	}
	if c.Auth.ServiceKey == "" {
		bad = append(bad, "auth.service_key (required)")
	}
	if !isAbsoluteURL(c.Gamma.BaseURL) {
		bad = append(bad, "gamma.base_url (not a valid URL)")
	}
	if !isAbsoluteURL(c.Clob.BaseURL) {
		bad = append(bad, "clob.base_url (not a valid URL)")
	}
	if !isAbsoluteURL(c.Comments.BaseURL) {
		bad = append(bad, "comments.base_url (not a valid URL)")
	}
	if c.Chain.ID <= 0 {
		bad = append(bad, "chain.id (must be positive)")
	}
	if c.RateLimit.WindowSeconds <= 0 {
		bad = append(bad, "ratelimit.window_seconds (must be positive)")
	}
	if c.RateLimit.MaxRequests <= 0 {
		bad = append(bad, "ratelimit.max_requests (must be positive)")
	}
	if c.Database.AuditRetentionDays < 0 {
		bad = append(bad, "database.audit_retention_days (must not be negative)")
	}

	// Builder credentials are optional but all-or-none.
	b := c.Builder
	set := 0
	for _, v := range []string{b.ApiKey, b.ApiSecret, b.ApiPassphrase} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		bad = append(bad, "builder.api_key/api_secret/api_passphrase (all three required to enable signing)")
	}

	if len(bad) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(bad, ", "))
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
