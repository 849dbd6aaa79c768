package constants

var (
	DepositQuickAmounts      = []int64{1000, 5000, 10000, 25000}
	ContributionQuickAmounts = []int64{1000, 2500, 5000, 10000}
)

const (
	// Date Layout
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)
