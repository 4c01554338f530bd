package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Storage  StorageConfig  `yaml:"storage"`
	Upload   UploadConfig   `yaml:"upload"`
	Payment  PaymentConfig  `yaml:"payment"`
	Redis    RedisConfig    `yaml:"redis"`
	CORS     CORSConfig     `yaml:"cors"`
}

type ServerConfig struct {
	Name string `yaml:"name" env:"SERVER_NAME, overwrite"`
	Host string `yaml:"host" env:"SERVER_HOST, overwrite"`
	Port int    `yaml:"port" env:"SERVER_PORT, overwrite"`
	Env  string `yaml:"env" env:"SERVER_ENV, overwrite"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER, overwrite"` // postgres, mysql
	DSN    string `yaml:"url" env:"DATABASE_URL, overwrite"`
	// Reset drops and recreates the schema on start.
	Reset bool `yaml:"reset" env:"DATABASE_RESET, overwrite"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET, overwrite"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL, overwrite"`
}

type AuthConfig struct {
	FrontendURL   string        `yaml:"frontend_url" env:"FRONTEND_URL, overwrite"`
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env:"RESET_TOKEN_TTL, overwrite"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST, overwrite"`
	SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT, overwrite"`
	SMTPUsername string `yaml:"smtp_user" env:"SMTP_USER, overwrite"`
	SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD, overwrite"`
	FromEmail    string `yaml:"from_email" env:"SMTP_FROM_EMAIL, overwrite"`
	FromName     string `yaml:"from_name" env:"SMTP_FROM_NAME, overwrite"`
}

type StorageConfig struct {
	Type      string `yaml:"type" env:"STORAGE_TYPE, overwrite"`           // local, s3, cloudflare_r2
	BasePath  string `yaml:"base_path" env:"STORAGE_BASE_PATH, overwrite"` // local only
	Bucket    string `yaml:"bucket" env:"STORAGE_BUCKET, overwrite"`
	Region    string `yaml:"region" env:"STORAGE_REGION, overwrite"`
	AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY, overwrite"`
	SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY, overwrite"`
	Endpoint  string `yaml:"endpoint" env:"STORAGE_ENDPOINT, overwrite"`
}

type UploadConfig struct {
	MaxSize           int64 `yaml:"max_size" env:"UPLOAD_MAX_SIZE, overwrite"`
	MaxImageDimension int   `yaml:"max_image_dimension" env:"UPLOAD_MAX_IMAGE_DIMENSION, overwrite"`
	ImageQuality      int   `yaml:"image_quality" env:"UPLOAD_IMAGE_QUALITY, overwrite"`
}

type PaymentConfig struct {
	Gateway        string  `yaml:"gateway" env:"PAYMENT_GATEWAY, overwrite"` // stripe, sandbox
	SecretKey      string  `yaml:"secret_key" env:"STRIPE_SECRET_KEY, overwrite"`
	PublishableKey string  `yaml:"publishable_key" env:"STRIPE_PUBLISHABLE_KEY, overwrite"`
	WebhookSecret  string  `yaml:"webhook_secret" env:"STRIPE_WEBHOOK_SECRET, overwrite"`
	TokenPriceUSD  float64 `yaml:"token_price_usd" env:"TOKEN_PRICE_USD, overwrite"`
	USDToCOPRate   float64 `yaml:"usd_to_cop_rate" env:"USD_TO_COP_RATE, overwrite"`
	Currency       string  `yaml:"currency" env:"PAYMENT_CURRENCY, overwrite"`
	WelcomeTokens  int     `yaml:"welcome_tokens" env:"WELCOME_TOKENS, overwrite"`
}

type RedisConfig struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR, overwrite"` // empty disables webhook dedup cache
	DB   int    `yaml:"db" env:"REDIS_DB, overwrite"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ORIGINS, overwrite"`
}

// Load reads the YAML file at CONFIG_PATH (default config/config.yaml, optional),
// overlays environment variables and fills defaults.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	return LoadFrom(context.Background(), path)
}

func LoadFrom(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// environment only
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "freelink"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 24 * time.Hour
	}
	if c.Auth.ResetTokenTTL == 0 {
		c.Auth.ResetTokenTTL = time.Hour
	}
	if c.Auth.FrontendURL == "" {
		c.Auth.FrontendURL = "http://localhost:5173"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Freelink"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.BasePath == "" {
		c.Storage.BasePath = "./uploads"
	}
	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = 10 * 1024 * 1024
	}
	if c.Upload.MaxImageDimension == 0 {
		c.Upload.MaxImageDimension = 1024
	}
	if c.Upload.ImageQuality == 0 {
		c.Upload.ImageQuality = 85
	}
	if c.Payment.Gateway == "" {
		c.Payment.Gateway = "sandbox"
	}
	if c.Payment.TokenPriceUSD == 0 {
		c.Payment.TokenPriceUSD = 1
	}
	if c.Payment.USDToCOPRate == 0 {
		c.Payment.USDToCOPRate = 4000
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "COP"
	}
	if c.Payment.WelcomeTokens == 0 {
		c.Payment.WelcomeTokens = 5
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (database.url or DATABASE_URL)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("jwt secret is required outside development")
		}
		c.JWT.Secret = "development-secret"
	}
	switch c.Payment.Gateway {
	case "stripe":
		if c.Payment.SecretKey == "" || c.Payment.WebhookSecret == "" {
			return errors.New("stripe gateway needs secret_key and webhook_secret")
		}
	case "sandbox":
		if c.Payment.WebhookSecret == "" {
			c.Payment.WebhookSecret = c.JWT.Secret
		}
	default:
		return fmt.Errorf("unsupported payment gateway: %s", c.Payment.Gateway)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// SMTPEnabled reports whether outbound mail is configured.
func (c *Config) SMTPEnabled() bool {
	return c.Email.SMTPHost != ""
}
