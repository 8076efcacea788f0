package commands

import (
	"fmt"
	"strconv"

	"steamtrader/lib/steamtrader"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	pricesCurrency = pricesCmd.Flags().Int("currency", 1, "The currency to quote prices in.")
	rootCmd.AddCommand(pricesCmd)

	orderBookMode = orderBookCmd.Flags().String("mode", string(steamtrader.OrderBookAll), "Which side of the book to show: all, sell or buy.")
	orderBookLimit = orderBookCmd.Flags().Int("limit", 0, "How many rows per side to show, 0 shows every row.")
	rootCmd.AddCommand(orderBookCmd)
}

func parseGIDs(args []string) ([]int, error) {
	gids := make([]int, len(args))
	for i, arg := range args {
		gid, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("gid %q is not a number", arg)
		}
		gids[i] = gid
	}
	return gids, nil
}

var pricesCurrency *int

var pricesCmd = &cobra.Command{
	Use:   "prices <gid...>",
	Short: "Prints the lowest prices of the given item groups.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gids, err := parseGIDs(args)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"GID", "Market", "Buy", "Steam", "Sell offers", "Buy offers"})
		for _, gid := range gids {
			prices, err := client.MinPrices(cmd.Context(), gid, *pricesCurrency)
			if err != nil {
				return fmt.Errorf("gid %d: %w", gid, err)
			}
			t.AppendRow(table.Row{
				gid,
				formatPrice(prices.MarketPrice),
				formatPrice(prices.BuyPrice),
				formatPrice(prices.SteamPrice),
				prices.CountSellOffers,
				prices.CountBuyOffers,
			})
		}
		t.Render()
		return nil
	},
}

var (
	orderBookMode  *string
	orderBookLimit *int
)

var orderBookCmd = &cobra.Command{
	Use:   "orderbook <gid>",
	Short: "Prints the order book of an item group.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gids, err := parseGIDs(args)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}
		book, err := client.OrderBook(cmd.Context(), gids[0], steamtrader.OrderBookMode(*orderBookMode), *orderBookLimit)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Sell price", "Count", "Buy price", "Count"})
		rows := max(len(book.Sell), len(book.Buy))
		for i := 0; i < rows; i++ {
			row := make(table.Row, 4)
			if i < len(book.Sell) {
				row[0] = strconv.FormatFloat(book.Sell[i].Price, 'f', 2, 64)
				row[1] = book.Sell[i].Count
			}
			if i < len(book.Buy) {
				row[2] = strconv.FormatFloat(book.Buy[i].Price, 'f', 2, 64)
				row[3] = book.Buy[i].Count
			}
			t.AppendRow(row)
		}
		t.AppendFooter(table.Row{"Total", book.TotalSell, "Total", book.TotalBuy})

		lowestSell, sellOK, highestBuy, buyOK := book.PriceRange()
		if sellOK && buyOK {
			t.SetCaption("spread %.2f (sell from %.2f, buy up to %.2f)", lowestSell-highestBuy, lowestSell, highestBuy)
		}
		t.Render()
		return nil
	},
}
