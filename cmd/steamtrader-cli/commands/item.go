package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"steamtrader/lib/steamtrader/web"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	itemGame = itemCmd.Flags().String("game", "tf2", "The game the item belongs to.")
	itemOffers = itemCmd.Flags().Int("offers", 24, "How many sell offers to list, 24 to 120 in steps of 6.")
	rootCmd.AddCommand(itemCmd)
}

var (
	itemGame   *string
	itemOffers *int
)

var converter = md.NewConverter("", true, nil)

var itemCmd = &cobra.Command{
	Use:   "item <name>",
	Short: "Finds the item group closest to a name and prints its description and sell offers.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := strings.Join(args, " ")

		appID, err := parseGame(*itemGame)
		if err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		site, err := webClient(ctx)
		if err != nil {
			return err
		}

		page, err := site.MainPage(ctx, appID, web.MainPageQuery{Text: name, PerPage: 120})
		if err != nil {
			return fmt.Errorf("search %q: %w", name, err)
		}
		match, ok := web.BestMatch(page.Items, name)
		if !ok {
			return fmt.Errorf("nothing on the market is called %q", name)
		}
		slog.Debug("matched item", "name", match.Item.Name, "gid", match.Item.GID, "similarity", match.Similarity)

		info, err := api.ItemInfo(ctx, match.Item.GID)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n\n%s, gid %d\n\n", info.Name, info.Type, match.Item.GID)
		if info.Description != "" {
			description, err := converter.ConvertString(info.Description)
			if err != nil {
				return fmt.Errorf("render description: %w", err)
			}
			fmt.Printf("%s\n\n", description)
		}

		offers, err := site.ItemInfo(ctx, match.Item.GID, 1, *itemOffers)
		if err != nil {
			return err
		}
		t := newTable()
		t.AppendHeader(table.Row{"Offer", "Item ID", "Name", "Type", "Price", "Notes"})
		for _, offer := range offers.SellOffers {
			notes := ""
			if d, ok := offers.Descriptions[offer.ItemID]; ok && d.Description != "" {
				notes, err = converter.ConvertString(d.Description)
				if err != nil {
					return fmt.Errorf("render notes of item %d: %w", offer.ItemID, err)
				}
			}
			t.AppendRow(table.Row{
				offer.ID,
				offer.ItemID,
				offer.Name,
				offer.Type,
				strconv.FormatFloat(offer.Price, 'f', 2, 64),
				notes,
			})
		}
		t.Render()
		return nil
	},
}
