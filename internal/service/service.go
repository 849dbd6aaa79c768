package service

import (
	"github.com/koso-app/koso/internal/auth"
	"github.com/koso-app/koso/internal/config"
	"github.com/koso-app/koso/internal/store"
	"github.com/sirupsen/logrus"
)

type Service struct {
	Ledger *LedgerService
	Auth   *AuthService
	Card   *CardService
	Config *config.Config
}

func NewService(repo store.Repository, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		Ledger: NewLedgerService(repo, cfg, log),
		Auth:   NewAuthService(auth.NewClient(cfg.Auth, log), log),
		Card:   NewCardService(repo, log),
		Config: cfg,
	}
}
