package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	RabbitMQURL string `mapstructure:"rabbitmq_url"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	LogLevel    string `mapstructure:"log_level"`

	// AllowedOrigins is the comma-separated CORS allow list.
	AllowedOrigins string `mapstructure:"allowed_origins"`

	SMTP struct {
		Host     string `mapstructure:"smtp_host"`
		Port     int    `mapstructure:"smtp_port"`
		User     string `mapstructure:"smtp_user"`
		Password string `mapstructure:"smtp_password"`
		From     string `mapstructure:"smtp_from"`
	} `mapstructure:",squash"`

	Razorpay struct {
		KeyID         string `mapstructure:"razorpay_key_id"`
		KeySecret     string `mapstructure:"razorpay_key_secret"`
		AccountNumber string `mapstructure:"razorpay_account_number"`
		BaseURL       string `mapstructure:"razorpay_base_url"`
	} `mapstructure:",squash"`

	BlandAIKey string `mapstructure:"bland_ai_key"`
}

// Load reads .env if present, then the environment. Every key can be set as an
// uppercase env var (DATABASE_URL, SMTP_HOST, ...).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"port", "database_url", "rabbitmq_url", "jwt_secret", "log_level", "allowed_origins",
		"smtp_host", "smtp_port", "smtp_user", "smtp_password", "smtp_from",
		"razorpay_key_id", "razorpay_key_secret", "razorpay_account_number", "razorpay_base_url",
		"bland_ai_key",
	} {
		_ = v.BindEnv(key)
	}

	applyDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("allowed_origins", "http://localhost:5173")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("razorpay_base_url", "https://api.razorpay.com/v1")
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// CORSOrigins splits the allow list into the form the CORS middleware takes.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RazorpayConfigured reports whether real payout credentials are present; the
// payment client falls back to mock transfers when they are not.
func (c *Config) RazorpayConfigured() bool {
	return c.Razorpay.KeyID != "" && c.Razorpay.KeySecret != ""
}
