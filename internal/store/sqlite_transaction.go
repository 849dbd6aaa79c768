package store

import (
	"database/sql"
	"fmt"
)

func (s *Store) CreateTransaction(tx Transaction) error {
	_, err := s.db.Exec(`
        INSERT INTO transactions (account_id, seq, kind, amount, fee, goal_id, method, description, timestamp)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, tx.AccountID, tx.Seq, tx.Kind, tx.Amount, tx.Fee, tx.GoalID, tx.Method, tx.Description, tx.Timestamp)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("failed to insert transaction %d of account %d: %w", tx.Seq, tx.AccountID, ErrConstraintViolation)
		}
		return fmt.Errorf("failed to insert transaction : %w", err)
	}
	return nil
}

func (s *Store) GetTransactionsByAccount(accountID int64) ([]*Transaction, error) {
	rows, err := s.db.Query(`
        SELECT account_id, seq, kind, amount, fee, goal_id, method, description, timestamp
        FROM transactions
        WHERE account_id = ?
        ORDER BY seq
    `, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var transactions []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		var goalID sql.NullInt64
		err := rows.Scan(
			&tx.AccountID, &tx.Seq, &tx.Kind,
			&tx.Amount, &tx.Fee, &goalID,
			&tx.Method, &tx.Description, &tx.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if goalID.Valid {
			tx.GoalID = &goalID.Int64
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}
