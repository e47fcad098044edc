package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	ERPNext ERPNextConfig
	Billing BillingConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ERPNextConfig holds endpoint and credentials for the accounting backend.
type ERPNextConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	APISecret      string `mapstructure:"api_secret"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
	DefaultCompany string `mapstructure:"default_company"`
}

// MissingVars returns the env variable names of required ERPNext settings
// that are absent. An empty slice means the config is usable.
func (e *ERPNextConfig) MissingVars() []string {
	var missing []string
	if e.BaseURL == "" {
		missing = append(missing, "SNDBILL_ERPNEXT_BASE_URL")
	}
	if e.APIKey == "" {
		missing = append(missing, "SNDBILL_ERPNEXT_API_KEY")
	}
	if e.APISecret == "" {
		missing = append(missing, "SNDBILL_ERPNEXT_API_SECRET")
	}
	return missing
}

// BillingConfig holds invoice assembly settings.
type BillingConfig struct {
	Currency         string  `mapstructure:"currency"`
	VATRate          float64 `mapstructure:"vat_rate"`
	PaymentTermsDays int     `mapstructure:"payment_terms_days"`
	SellingPriceList string  `mapstructure:"selling_price_list"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the SNDBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SNDBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "sndbill")
	v.SetDefault("db.password", "sndbill_secret")
	v.SetDefault("db.name", "sndbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// ERPNext defaults (credentials have no defaults on purpose)
	v.SetDefault("erpnext.base_url", "")
	v.SetDefault("erpnext.api_key", "")
	v.SetDefault("erpnext.api_secret", "")
	v.SetDefault("erpnext.timeout_secs", 60)
	v.SetDefault("erpnext.default_company", "Samhan Naser Al-Dosri Est")

	// Billing defaults
	v.SetDefault("billing.currency", "SAR")
	v.SetDefault("billing.vat_rate", 15.0)
	v.SetDefault("billing.payment_terms_days", 30)
	v.SetDefault("billing.selling_price_list", "Standard Selling")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
