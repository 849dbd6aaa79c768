package constants

const (
	MaxNameLen   = 100
	CardDigits   = 16
	CVVDigits    = 3
	MinPassword  = 6
	MaxAmountLen = 15
)

const (
	DemoOpeningBalance = 45750
)

// DemoGoal is one entry of the demo dashboard seed.
type DemoGoal struct {
	Name      string
	Target    int64
	Current   int64
	Frequency string
}

var DemoGoals = []DemoGoal{
	{Name: "Food", Target: 30000, Current: 18500, Frequency: "Monthly"},
	{Name: "House Rent", Target: 500000, Current: 125000, Frequency: "Yearly"},
	{Name: "School Fees", Target: 150000, Current: 89000, Frequency: "Semester"},
}

var Frequencies = []string{"Daily", "Weekly", "Monthly", "Semester", "Yearly"}
