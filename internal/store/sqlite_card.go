package store

import (
	"fmt"
)

func (s *Store) CreateCard(card Card) (int64, error) {
	result, err := s.db.Exec(`
        INSERT INTO cards (account_id, holder, last_four, expiry, number_hash, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, card.AccountID, card.Holder, card.LastFour, card.Expiry, card.NumberHash, card.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("failed to save card: %w", ErrConstraintViolation)
		}
		return 0, fmt.Errorf("failed to insert card: %w", err)
	}

	cardID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return cardID, nil
}

func (s *Store) GetCardsByAccount(accountID int64) ([]*Card, error) {
	rows, err := s.db.Query(`
        SELECT id, account_id, holder, last_four, expiry, number_hash, created_at
        FROM cards
        WHERE account_id = ?
        ORDER BY id
    `, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var cards []*Card
	for rows.Next() {
		c := &Card{}
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Holder, &c.LastFour, &c.Expiry, &c.NumberHash, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
