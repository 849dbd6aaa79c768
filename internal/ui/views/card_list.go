package views

import (
	"time"

	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/store"
	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
)

func RenderCards(cards []*store.Card) error {
	if len(cards) == 0 {
		pterm.Warning.Println("No cards saved")
		return nil
	}

	tableData := pterm.TableData{{"Card", "Holder", "Expiry", "Added"}}
	for _, c := range cards {
		tableData = append(tableData, []string{
			utils.MaskCard(c.LastFour),
			c.Holder,
			c.Expiry,
			time.Unix(c.CreatedAt, 0).Local().Format(constants.DateFormat),
		})
	}

	pterm.DefaultSection.Println("Saved cards")
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
