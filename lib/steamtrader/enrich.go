package steamtrader

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	report_enrich_fetch = "enrich.fetch"
	report_multi_sell   = "multi-sell"
)

// ItemInfoFetcher is the one call the facet filter needs, *Client
// implements it.
type ItemInfoFetcher interface {
	ItemInfo(ctx context.Context, gid int) (*ItemInfo, error)
}

type FilterOptions struct {
	// Concurrency bounds the fetches in flight, 0 means 8.
	Concurrency int
	// DedupGroups fetches each gid once and shares the result between the
	// items of that group.
	DedupGroups bool
}

// FilterInventory keeps the items whose details match facets, in their
// original order. It fetches the details of every item concurrently and
// fails as a whole on the first failed fetch, canceling the ones still in
// flight. A nil facets returns items unchanged.
func FilterInventory(ctx context.Context, fetcher ItemInfoFetcher, items []InventoryItem, facets *FacetSet, opts FilterOptions) ([]InventoryItem, error) {
	if facets == nil {
		return items, nil
	}
	err := facets.Validate()
	if err != nil {
		return nil, err
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}

	gids := fetchKeys(items, opts.DedupGroups)
	infos := make([]*ItemInfo, len(gids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Concurrency)
	for i, gid := range gids {
		group.Go(func() error {
			info, err := fetcher.ItemInfo(groupCtx, gid)
			if err != nil {
				return fmt.Errorf("item info of gid %d: %w", gid, err)
			}
			infos[i] = info
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		return nil, err
	}

	return keepMatching(items, gids, infos, facets), nil
}

// FilterInventorySerial behaves like FilterInventory but fetches one item
// after the other.
func FilterInventorySerial(ctx context.Context, fetcher ItemInfoFetcher, items []InventoryItem, facets *FacetSet, opts FilterOptions) ([]InventoryItem, error) {
	if facets == nil {
		return items, nil
	}
	err := facets.Validate()
	if err != nil {
		return nil, err
	}

	gids := fetchKeys(items, opts.DedupGroups)
	infos := make([]*ItemInfo, len(gids))
	for i, gid := range gids {
		info, err := fetcher.ItemInfo(ctx, gid)
		if err != nil {
			return nil, fmt.Errorf("item info of gid %d: %w", gid, err)
		}
		infos[i] = info
	}

	return keepMatching(items, gids, infos, facets), nil
}

// fetchKeys returns the gids to fetch, one per item unless dedup is set.
func fetchKeys(items []InventoryItem, dedup bool) []int {
	gids := make([]int, 0, len(items))
	seen := make(map[int]bool)
	for _, item := range items {
		if dedup {
			if seen[item.GID] {
				continue
			}
			seen[item.GID] = true
		}
		gids = append(gids, item.GID)
	}
	return gids
}

func keepMatching(items []InventoryItem, gids []int, infos []*ItemInfo, facets *FacetSet) []InventoryItem {
	byGID := make(map[int]*ItemInfo, len(gids))
	perItem := len(gids) == len(items)
	if !perItem {
		for i, gid := range gids {
			byGID[gid] = infos[i]
		}
	}

	out := make([]InventoryItem, 0, len(items))
	for i, item := range items {
		var info *ItemInfo
		if perItem {
			info = infos[i]
		} else {
			info = byGID[item.GID]
		}
		var filters *Filters
		if info != nil {
			filters = info.Filters
		}
		if facets.Match(filters) {
			out = append(out, item)
		}
	}
	return out
}

// FilteredInventory returns the inventory of one section narrowed down to
// the items matching facets.
func (c *Client) FilteredInventory(ctx context.Context, appID int, statuses []int, facets *FacetSet) (*Inventory, error) {
	inv, err := c.Inventory(ctx, appID, statuses)
	if err != nil {
		return nil, err
	}
	inv.Items, err = FilterInventory(ctx, c, inv.Items, facets, FilterOptions{
		Concurrency: c.concurrency,
	})
	if err != nil {
		c.tel.ReportBroken(report_enrich_fetch, appID, err)
		return nil, err
	}
	return inv, nil
}

// MultiSell puts up to count inventory items of gid up for sale at price.
// The sales run concurrently, the results follow inventory order, and the
// first failed sale fails the call.
func (c *Client) MultiSell(ctx context.Context, appID, gid int, price float64, count int) ([]SellResult, error) {
	if count < 1 {
		return nil, &ArgumentError{Name: "count", Value: count, Reason: "must be positive"}
	}
	inv, err := c.Inventory(ctx, appID, nil)
	if err != nil {
		return nil, err
	}

	var selected []InventoryItem
	for _, item := range inv.Items {
		if len(selected) == count {
			break
		}
		if item.GID == gid && item.AssetID != nil {
			selected = append(selected, item)
		}
	}

	results := make([]SellResult, len(selected))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)
	for i, item := range selected {
		group.Go(func() error {
			res, err := c.Sell(groupCtx, item.ItemID, *item.AssetID, price)
			if err != nil {
				return fmt.Errorf("sell item %d: %w", item.ItemID, err)
			}
			results[i] = *res
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		c.tel.ReportBroken(report_multi_sell, gid, err)
		return nil, err
	}
	return results, nil
}
