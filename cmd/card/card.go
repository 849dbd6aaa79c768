package card

import (
	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewCardCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage saved debit cards",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Save a debit card",
		RunE: func(cmd *cobra.Command, args []string) error {
			return addCard(a)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.Service.Card.ListCards(a.Account.ID)
			if err != nil {
				return err
			}
			return views.RenderCards(cards)
		},
	})

	return cmd
}

func addCard(a *app.App) error {
	in, err := prompts.PromptCard()
	if err != nil {
		return err
	}

	card, err := a.Service.Card.AddCard(a.Account.ID, in)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Card %s saved\n", utils.MaskCard(card.LastFour))
	return nil
}
