package views

import (
	"fmt"

	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
)

const progressWidth = 20

// ProgressBar draws a fixed-width text bar for a 0..100 percentage.
func ProgressBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * progressWidth / 100
	bar := make([]rune, progressWidth)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return fmt.Sprintf("%s %3d%%", string(bar), percent)
}

func RenderGoals(goals []service.GoalStatus, symbol string) error {
	if len(goals) == 0 {
		pterm.Warning.Println("No savings goals yet")
		return nil
	}

	tableData := pterm.TableData{
		{"ID", "Goal", "Frequency", "Saved", "Target", "Progress"},
	}
	for _, g := range goals {
		bar := ProgressBar(g.Progress)
		if g.Progress >= 100 {
			bar = pterm.Green(bar)
		}
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", g.ID),
			g.Name,
			g.Frequency,
			utils.FormatAmount(g.Current, symbol),
			utils.FormatAmount(g.Target, symbol),
			bar,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
