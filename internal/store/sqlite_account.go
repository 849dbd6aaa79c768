package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) CreateAccount(name, currency string, opening int64) (int64, error) {
	stmt, err := s.db.Prepare(`
        INSERT INTO accounts (name, currency, opening_balance, balance, created_at)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	var newID int64
	err = stmt.QueryRow(name, currency, opening, opening, time.Now().Unix()).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("failed to create account '%s': %w", name, ErrAccountExists)
		}
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("failed to create account '%s': %w", name, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("failed to executing SQL insertion : %w", err)
	}

	return newID, nil
}

const accountColumns = "id, name, currency, opening_balance, balance, created_at"

func (s *Store) GetAllAccounts() ([]*Account, error) {
	rows, err := s.db.Query("SELECT " + accountColumns + " FROM accounts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (s *Store) GetAccountByName(name string) (*Account, error) {
	acc, err := scanAccount(s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE name = ?", name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s' doesn't exist: %w", name, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s' : %w", name, err)
	}
	return acc, nil
}

func (s *Store) GetAccountByID(id int64) (*Account, error) {
	acc, err := scanAccount(s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %d not found: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %d: %w", id, err)
	}
	return acc, nil
}

func (s *Store) AccountExists(name string) (bool, error) {
	var exists bool
	row := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM accounts WHERE name = ?)", name)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

func (s *Store) UpdateAccountBalance(accountID, balance int64) error {
	result, err := s.db.Exec("UPDATE accounts SET balance = ? WHERE id = ?", balance, accountID)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("failed to update balance of account %d: %w", accountID, ErrConstraintViolation)
		}
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return expectOneRow(result, "account", accountID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*Account, error) {
	acc := &Account{}
	err := row.Scan(&acc.ID, &acc.Name, &acc.Currency, &acc.Opening, &acc.Balance, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func expectOneRow(result sql.Result, what string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s with ID %d not found: %w", what, id, ErrRecordNotFound)
	}
	return nil
}
