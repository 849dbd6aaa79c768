package store

import (
	"errors"

	sqlite "github.com/mattn/go-sqlite3"
)

var (
	ErrAccountExists       = errors.New("account already exists")
	ErrGoalExists          = errors.New("goal already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		return errors.Is(sqliteErr.ExtendedCode, sqlite.ErrConstraintUnique) ||
			errors.Is(sqliteErr.ExtendedCode, sqlite.ErrConstraintPrimaryKey)
	}
	return false
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		return errors.Is(sqliteErr.Code, sqlite.ErrConstraint)
	}
	return false
}
