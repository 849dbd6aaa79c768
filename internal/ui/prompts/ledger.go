package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/utils"
	"github.com/koso-app/koso/internal/validation"
)

func PromptMethod() (ledger.Method, error) {
	method := ledger.MethodBank

	opts := make([]huh.Option[ledger.Method], 0, len(ledger.Methods))
	for _, m := range ledger.Methods {
		opts = append(opts, huh.NewOption(m.DisplayName(), m))
	}

	err := huh.NewSelect[ledger.Method]().
		Title("Payment method").
		Options(opts...).
		Value(&method).
		Run()
	return method, err
}

// PromptGoal lets the user pick one of the goals and returns its ID.
func PromptGoal(goals []service.GoalStatus, symbol string) (int64, error) {
	if len(goals) == 0 {
		return 0, fmt.Errorf("no goals yet, create one with 'koso goal create'")
	}

	var goalID int64
	opts := make([]huh.Option[int64], 0, len(goals))
	for _, g := range goals {
		label := fmt.Sprintf("%s  %s / %s (%d%%)", g.Name,
			utils.FormatAmount(g.Current, symbol), utils.FormatAmount(g.Target, symbol), g.Progress)
		opts = append(opts, huh.NewOption(label, g.ID))
	}
	goalID = goals[0].ID

	err := huh.NewSelect[int64]().
		Title("Select a goal").
		Options(opts...).
		Value(&goalID).
		Run()
	return goalID, err
}

// GoalInput is the result of the create-goal form.
type GoalInput struct {
	Name      string
	Target    int64
	Frequency string
}

func PromptNewGoal(symbol string, frequencies []string) (GoalInput, error) {
	var name, target string
	frequency := "Monthly"

	freqOpts := make([]huh.Option[string], 0, len(frequencies))
	for _, f := range frequencies {
		freqOpts = append(freqOpts, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Value(&name).
				Validate(validation.ValidateGoalName),
			huh.NewInput().
				Title("Target amount").
				Prompt(symbol+" ").
				Value(&target).
				Validate(validation.ValidateGoalTarget),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(freqOpts...).
				Value(&frequency),
		),
	)
	if err := form.Run(); err != nil {
		return GoalInput{}, err
	}

	amount, err := utils.ParseAmount(target)
	if err != nil {
		return GoalInput{}, err
	}
	return GoalInput{Name: name, Target: amount, Frequency: frequency}, nil
}
