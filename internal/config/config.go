// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN. Required by cmd/server, cmd/migrate, and cmd/seed.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// AppURL is the public base URL used in invitation signup links (e.g. https://alumni.example.com).
	AppURL string `mapstructure:"APP_URL"`
	// Env is the application environment ("development", "production"). Controls the
	// Secure cookie attribute and whether invitation emails are actually sent.
	Env string `mapstructure:"APP_ENV"`

	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or path to file.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	// JWTIssuer is the iss claim on id and session tokens.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim on id and session tokens.
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// IDTokenTTL is the identity-assertion lifetime (e.g. "1h").
	IDTokenTTL string `mapstructure:"ID_TOKEN_TTL"`
	// SessionTTL is the session-cookie lifetime (e.g. "120h" = 5 days).
	SessionTTL string `mapstructure:"SESSION_TTL"`
	// BcryptCost is the bcrypt cost factor (4-31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// AdminEmail is the bootstrap admin address; always eligible to sign up and
	// receives role=admin on profile creation. Checked before any invitation lookup.
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	// ResendAPIKey is the Resend API key for invitation and post emails. When empty
	// or when Env is not production, emails are logged instead of sent.
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	// ResendBaseURL is the Resend API base URL (default https://api.resend.com).
	ResendBaseURL string `mapstructure:"RESEND_BASE_URL"`
	// EmailFrom is the From header on outbound mail.
	EmailFrom string `mapstructure:"EMAIL_FROM"`

	// OTLPEndpoint enables OTel export when set (e.g. http://localhost:4317).
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`

	// Telemetry (optional). When Kafka brokers are set, the HTTP server emits
	// request telemetry to Kafka and cmd/worker ships it to Loki.
	TelemetryKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	TelemetryKafkaTopic   string `mapstructure:"TELEMETRY_KAFKA_TOPIC"`
	// LokiURL is used by cmd/worker to push consumed telemetry (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the telemetry worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("JWT_ISSUER", "alumni-auth")
	v.SetDefault("JWT_AUDIENCE", "alumni-api")
	v.SetDefault("ID_TOKEN_TTL", "1h")
	v.SetDefault("SESSION_TTL", "120h") // 5d
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("EMAIL_FROM", "Alumni Network <noreply@localhost>")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("TELEMETRY_KAFKA_TOPIC", "alumni-telemetry")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "alumni-telemetry-worker")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// IDTokenTTLDuration parses IDTokenTTL as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) IDTokenTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.IDTokenTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// SessionTTLDuration parses SessionTTL as a time.Duration. Returns 120h if unset or invalid.
func (c *Config) SessionTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 120 * time.Hour
	}
	return d
}

// TelemetryKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if telemetry is enabled (non-empty list) and to create the producer.
func (c *Config) TelemetryKafkaBrokersList() []string {
	if c == nil || c.TelemetryKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.TelemetryKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
