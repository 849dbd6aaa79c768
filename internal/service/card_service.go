package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/koso-app/koso/internal/store"
	"github.com/koso-app/koso/internal/utils"
	"github.com/koso-app/koso/internal/validation"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrCardExists = errors.New("card is already saved")

// CardInput is a debit card as typed by the user. The CVV is checked and
// then dropped; the full number is only kept as a bcrypt hash.
type CardInput struct {
	Holder string
	Number string
	Expiry string
	CVV    string
}

type CardService struct {
	repo store.CardRepository
	log  *logrus.Logger
}

func NewCardService(repo store.CardRepository, log *logrus.Logger) *CardService {
	return &CardService{repo: repo, log: log}
}

func (cs *CardService) AddCard(accountID int64, in CardInput) (*store.Card, error) {
	if err := validation.ValidateCardholder(in.Holder); err != nil {
		return nil, err
	}
	if err := validation.ValidateCardNumber(in.Number); err != nil {
		return nil, err
	}
	if err := validation.ValidateExpiry(in.Expiry); err != nil {
		return nil, err
	}
	if err := validation.ValidateCVV(in.CVV); err != nil {
		return nil, err
	}

	digits := utils.DigitsOnly(in.Number)
	existing, err := cs.repo.GetCardsByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	for _, c := range existing {
		if c.LastFour == utils.LastFour(digits) && MatchesCard(c, digits) {
			return nil, fmt.Errorf("%w: %s", ErrCardExists, utils.MaskCard(c.LastFour))
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(digits), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash card number: %w", err)
	}

	card := store.Card{
		AccountID:  accountID,
		Holder:     strings.TrimSpace(in.Holder),
		LastFour:   utils.LastFour(digits),
		Expiry:     utils.FormatExpiryDate(in.Expiry),
		NumberHash: string(hash),
		CreatedAt:  time.Now().Unix(),
	}
	id, err := cs.repo.CreateCard(card)
	if err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	card.ID = id

	cs.log.WithFields(logrus.Fields{"account_id": accountID, "card_id": id}).Info("card added")
	return &card, nil
}

func (cs *CardService) ListCards(accountID int64) ([]*store.Card, error) {
	return cs.repo.GetCardsByAccount(accountID)
}

// MatchesCard reports whether number is the card stored as card.
func MatchesCard(card *store.Card, number string) bool {
	return bcrypt.CompareHashAndPassword([]byte(card.NumberHash), []byte(utils.DigitsOnly(number))) == nil
}
