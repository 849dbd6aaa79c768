package config

import (
	"time"

	"github.com/koso-app/koso/internal/ledger"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Server     ServerConfig   `mapstructure:"server"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type DefaultsConfig struct {
	Account  string `mapstructure:"account"`
	Currency string `mapstructure:"currency"`
	Symbol   string `mapstructure:"symbol"`
}

type LedgerConfig struct {
	WithdrawalFee       int64 `mapstructure:"withdrawal_fee"`
	MinimumDeposit      int64 `mapstructure:"minimum_deposit"`
	HistoryWindow       int   `mapstructure:"history_window"`
	MonthlyFee          int64 `mapstructure:"monthly_fee"`
	MonthlyFeeThreshold int64 `mapstructure:"monthly_fee_threshold"`
}

type AuthConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	LoginPath  string        `mapstructure:"login_path"`
	ForgotPath string        `mapstructure:"forgot_path"`
	SignupPath string        `mapstructure:"signup_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Retries    int           `mapstructure:"retries"`
	Backoff    time.Duration `mapstructure:"backoff"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Defaults: DefaultsConfig{Account: "main", Currency: "NGN", Symbol: "₦"},
		Ledger: LedgerConfig{
			WithdrawalFee:       50,
			MinimumDeposit:      100,
			HistoryWindow:       5,
			MonthlyFee:          100,
			MonthlyFeeThreshold: 2500,
		},
		Auth: AuthConfig{
			BaseURL:    "http://192.168.252.38/koso/api",
			LoginPath:  "/login.php",
			ForgotPath: "/forgot_password.php",
		SignupPath: "/signup.php",
			Timeout:    10 * time.Second,
			Retries:    2,
			Backoff:    500 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			IdempotencyTTL: 24 * time.Hour,
		},
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// Policy converts the ledger section into the ledger's business rules.
func (c *Config) Policy() ledger.Policy {
	p := ledger.DefaultPolicy()
	if c.Ledger.WithdrawalFee >= 0 {
		p.WithdrawalFee = c.Ledger.WithdrawalFee
	}
	if c.Ledger.MinimumDeposit > 0 {
		p.MinimumDeposit = c.Ledger.MinimumDeposit
	}
	if c.Ledger.HistoryWindow > 0 {
		p.HistoryWindow = c.Ledger.HistoryWindow
	}
	return p
}
