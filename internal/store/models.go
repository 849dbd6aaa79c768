package store

type Account struct {
	ID        int64
	Name      string
	Currency  string
	Opening   int64
	Balance   int64
	CreatedAt int64
}

type Goal struct {
	ID        int64
	AccountID int64
	Name      string
	Target    int64
	Current   int64
	Frequency string
}

type Transaction struct {
	AccountID   int64
	Seq         int64
	Kind        string
	Amount      int64
	Fee         int64
	GoalID      *int64
	Method      string
	Description string
	Timestamp   int64
}

type Card struct {
	ID         int64
	AccountID  int64
	Holder     string
	LastFour   string
	Expiry     string
	NumberHash string
	CreatedAt  int64
}
