package store

import (
	"fmt"
)

func (s *Store) CreateGoal(accountID int64, name string, target, current int64, frequency string) (int64, error) {
	result, err := s.db.Exec(`
        INSERT INTO goals (account_id, name, target, current, frequency)
        VALUES (?, ?, ?, ?, ?)
    `, accountID, name, target, current, frequency)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("failed to create goal '%s': %w", name, ErrGoalExists)
		}
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("failed to create goal '%s': %w", name, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("failed to insert goal: %w", err)
	}

	goalID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return goalID, nil
}

// GetGoalsByAccount returns the account's goals in creation order.
func (s *Store) GetGoalsByAccount(accountID int64) ([]*Goal, error) {
	rows, err := s.db.Query(`
        SELECT id, account_id, name, target, current, frequency
        FROM goals
        WHERE account_id = ?
        ORDER BY id
    `, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var goals []*Goal
	for rows.Next() {
		g := &Goal{}
		if err := rows.Scan(&g.ID, &g.AccountID, &g.Name, &g.Target, &g.Current, &g.Frequency); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoalCurrent(goalID, current int64) error {
	result, err := s.db.Exec("UPDATE goals SET current = ? WHERE id = ?", current, goalID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return expectOneRow(result, "goal", goalID)
}
