package store

type AccountRepository interface {
	CreateAccount(name, currency string, opening int64) (int64, error)
	GetAllAccounts() ([]*Account, error)
	GetAccountByName(name string) (*Account, error)
	GetAccountByID(id int64) (*Account, error)
	AccountExists(name string) (bool, error)
	UpdateAccountBalance(accountID, balance int64) error
}

type GoalRepository interface {
	CreateGoal(accountID int64, name string, target, current int64, frequency string) (int64, error)
	GetGoalsByAccount(accountID int64) ([]*Goal, error)
	UpdateGoalCurrent(goalID, current int64) error
}

type TransactionRepository interface {
	CreateTransaction(tx Transaction) error
	// GetTransactionsByAccount returns every transaction of the account, oldest first.
	GetTransactionsByAccount(accountID int64) ([]*Transaction, error)
}

type CardRepository interface {
	CreateCard(card Card) (int64, error)
	GetCardsByAccount(accountID int64) ([]*Card, error)
}

type Repository interface {
	AccountRepository
	GoalRepository
	TransactionRepository
	CardRepository

	ExecTx(fn func(Repository) error) error
	Close() error
}
