package commands

import (
	"fmt"
	"strconv"

	"steamtrader/lib/steamtrader"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(balanceCmd)

	inventoryGame = inventoryCmd.Flags().String("game", "tf2", "The game whose inventory to list.")
	inventoryStatus = inventoryCmd.Flags().IntSlice("status", nil, "Only list items with these statuses (0 on sale, 1 to accept, 2 to transfer, 3 pending, 4 buy order).")
	inventoryFilters = inventoryCmd.Flags().StringArray("filter", nil, "Facet constraints like quality=28, repeat a facet to accept any of its ids.")
	inventorySerial = inventoryCmd.Flags().Bool("serial", false, "Fetch item details one at a time.")
	rootCmd.AddCommand(inventoryCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Prints the account balance.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		balance, err := client.Balance(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(strconv.FormatFloat(balance, 'f', 2, 64))
		return nil
	},
}

var (
	inventoryGame    *string
	inventoryStatus  *[]int
	inventoryFilters *[]string
	inventorySerial  *bool
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Lists the items of one game in the inventory, optionally narrowed down by facets.",
	RunE: func(cmd *cobra.Command, args []string) error {
		appID, err := parseGame(*inventoryGame)
		if err != nil {
			return err
		}
		facets, err := parseFacets(*inventoryFilters)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var inv *steamtrader.Inventory
		if *inventorySerial {
			inv, err = client.Inventory(ctx, appID, *inventoryStatus)
			if err != nil {
				return err
			}
			inv.Items, err = steamtrader.FilterInventorySerial(ctx, client, inv.Items, facets, steamtrader.FilterOptions{})
		} else {
			inv, err = client.FilteredInventory(ctx, appID, *inventoryStatus, facets)
		}
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "GID", "Item ID", "Price", "Status"})
		for _, item := range inv.Items {
			t.AppendRow(table.Row{
				formatOptionalInt(item.ID),
				item.GID,
				item.ItemID,
				formatPrice(item.Price),
				item.Status,
			})
		}
		t.AppendFooter(table.Row{"", "", "", "Total", len(inv.Items)})
		t.Render()
		return nil
	},
}
