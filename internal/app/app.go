package app

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/koso-app/koso/internal/config"
	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/store"
	"github.com/sirupsen/logrus"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Logger  *logrus.Logger

	// Account is the account the CLI operates on, resolved at startup.
	Account *store.Account
	// AssumeYes skips confirmations and the first-run wizard.
	AssumeYes bool
}

// Symbol is the currency symbol used for display.
func (a *App) Symbol() string {
	return a.Service.Config.Defaults.Symbol
}

// NewApp initialize logger, database and services, then return App entity
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	logger, err := NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			return nil, nil, err
		}
		dbPath = filepath.Join(appDir, "koso.db")
	}

	dbStore, err := store.NewStore(dbPath, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.WithField("path", dbPath).Debug("database ready")

	svc := service.NewService(dbStore, cfg, logger)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			logger.WithError(err).Error("error closing database")
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Logger:  logger,
	}, cleanup, nil
}

// NewLogger builds a logrus logger from the log section of the config.
func NewLogger(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format '%s' (must be text or json)", cfg.Format)
	}

	level := logrus.WarnLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	return logger, nil
}

// GetAppDataDir returns the directory holding the config file and database.
func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".koso"), nil
	}

	return filepath.Join(configDir, "koso"), nil
}
