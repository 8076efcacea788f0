package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"steamtrader/lib/pricestore"
	"steamtrader/lib/steamtrader/web"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	researchGame = researchCmd.Flags().String("game", "tf2", "The game whose market to read.")
	researchPages = researchCmd.Flags().Int("pages", 1, "How many market pages to read.")
	researchPerPage = researchCmd.Flags().Int("per-page", 24, "Items per market page, 24 to 120 in steps of 6.")
	researchSort = researchCmd.Flags().String("sort", "-rating", "Market sort: -rating, rating, -price, price, -benefit, benefit, -name or name.")
	researchText = researchCmd.Flags().String("text", "", "Only items whose name contains this text.")
	researchFilters = researchCmd.Flags().StringArray("filter", nil, "Market filters like quality=28.")
	rootCmd.AddCommand(researchCmd)
}

var (
	researchGame    *string
	researchPages   *int
	researchPerPage *int
	researchSort    *string
	researchText    *string
	researchFilters *[]string
)

func parseWebFilters(pairs []string) (map[string]int, error) {
	filters := map[string]int{}
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("filter %q should look like quality=28", pair)
		}
		id, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("filter %q: id is not a number", pair)
		}
		filters[name] = id
	}
	return filters, nil
}

type researchRow struct {
	item     web.MainPageItem
	snapshot pricestore.Snapshot
	previous *pricestore.Snapshot
}

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Reads market pages, looks up the lowest prices of every listed item and records them in the price store.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appID, err := parseGame(*researchGame)
		if err != nil {
			return err
		}
		filters, err := parseWebFilters(*researchFilters)
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
		store, storing, err := priceStore(ctx)
		if err != nil {
			return err
		}

		var items []web.MainPageItem
		for page := 1; page <= *researchPages; page++ {
			res, err := site.MainPage(ctx, appID, web.MainPageQuery{
				Filters: filters,
				Text:    *researchText,
				Sort:    *researchSort,
				Page:    page,
				PerPage: *researchPerPage,
			})
			if err != nil {
				return fmt.Errorf("market page %d: %w", page, err)
			}
			items = append(items, res.Items...)
			if page >= res.PageCount {
				break
			}
		}

		now := session.clock.Now()
		rows := make([]researchRow, len(items))
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(max(session.config.Concurrency, 1))
		for i, item := range items {
			group.Go(func() error {
				prices, err := api.MinPrices(groupCtx, item.GID, 1)
				if err != nil {
					return fmt.Errorf("%s (gid %d): %w", item.Name, item.GID, err)
				}
				row := researchRow{
					item:     item,
					snapshot: pricestore.FromMinPrices(appID, item.GID, item.Name, prices, now),
				}
				if storing {
					previous, ok, err := store.Latest(groupCtx, item.GID)
					if err != nil {
						return err
					}
					if ok {
						row.previous = &previous
					}
				}
				rows[i] = row
				return nil
			})
		}
		err = group.Wait()
		if err != nil {
			return err
		}

		if storing {
			snapshots := make([]pricestore.Snapshot, len(rows))
			for i, r := range rows {
				snapshots[i] = r.snapshot
			}
			err = store.Push(ctx, snapshots)
			if err != nil {
				return fmt.Errorf("record prices: %w", err)
			}
			slog.Info("recorded prices", "count", len(snapshots))
		}

		t := newTable()
		t.AppendHeader(table.Row{"GID", "Name", "Listed", "Market", "Buy", "Steam", "Change"})
		for _, r := range rows {
			t.AppendRow(table.Row{
				r.item.GID,
				r.item.Name,
				strconv.FormatFloat(r.item.Price, 'f', 2, 64),
				formatPrice(r.snapshot.MarketPrice),
				formatPrice(r.snapshot.BuyPrice),
				formatPrice(r.snapshot.SteamPrice),
				priceChange(r.previous, r.snapshot),
			})
		}
		t.Render()
		return nil
	},
}

// priceChange compares the market price against the last recorded one.
func priceChange(previous *pricestore.Snapshot, current pricestore.Snapshot) string {
	if previous == nil || previous.MarketPrice == nil || current.MarketPrice == nil {
		return ""
	}
	delta := *current.MarketPrice - *previous.MarketPrice
	if delta == 0 {
		return "="
	}
	return fmt.Sprintf("%+.2f since %s", delta, previous.RecordedAt.In(session.clock.Location()).Format("Jan 2 15:04"))
}
