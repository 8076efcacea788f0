package steamtrader

import (
	"context"
	"fmt"
	"math"
)

const report_reprice = "reprice"

type RepriceDirection int

const (
	RepriceKeep RepriceDirection = iota
	// RepriceLower undercuts the cheapest offer by one kopeck.
	RepriceLower
	// RepriceRaise moves up to just below the second cheapest offer when the
	// item is the only unit at the cheapest price.
	RepriceRaise
)

func (d RepriceDirection) String() string {
	switch d {
	case RepriceLower:
		return "lower"
	case RepriceRaise:
		return "raise"
	}
	return "keep"
}

type RepricePlan struct {
	Item      InventoryItem
	OldPrice  float64
	NewPrice  float64
	Direction RepriceDirection
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// PlanReprice decides the new price of an item on sale given the market
// price of its group and the order book. The item is lowered to one kopeck
// under the market price when it sits above it and the new price still beats
// the best buy order. Otherwise it is raised to one kopeck under the second
// sell offer when it is the only unit at the lowest price.
func PlanReprice(item InventoryItem, marketPrice *float64, book *OrderBook) RepricePlan {
	plan := RepricePlan{Item: item, Direction: RepriceKeep}
	if item.Price == nil {
		return plan
	}
	price := *item.Price
	plan.OldPrice = price
	plan.NewPrice = price

	if marketPrice != nil && book != nil && len(book.Buy) > 0 {
		lowered := roundPrice(*marketPrice - 0.01)
		if price > *marketPrice && lowered > book.Buy[0].Price {
			plan.NewPrice = lowered
			plan.Direction = RepriceLower
			return plan
		}
	}

	if book != nil && len(book.Sell) > 1 {
		raised := roundPrice(book.Sell[1].Price - 0.01)
		if price < raised && book.Sell[0].Count == 1 {
			plan.NewPrice = raised
			plan.Direction = RepriceRaise
		}
	}
	return plan
}

type RepriceOptions struct {
	// SkipPrice leaves items listed at exactly this price alone.
	SkipPrice float64
	// DryRun plans without editing any price.
	DryRun bool
}

// Reprice plans a new price for every item of a section that is on sale and
// applies the changes unless opts.DryRun is set. It stops at the first
// failure and returns the plans applied so far.
func (c *Client) Reprice(ctx context.Context, appID int, opts RepriceOptions) ([]RepricePlan, error) {
	inv, err := c.Inventory(ctx, appID, []int{StatusOnSale})
	if err != nil {
		return nil, err
	}

	var plans []RepricePlan
	for _, item := range inv.Items {
		if item.Price != nil && opts.SkipPrice > 0 && *item.Price == opts.SkipPrice {
			continue
		}
		prices, err := c.MinPrices(ctx, item.GID, 1)
		if err != nil {
			return plans, err
		}
		book, err := c.OrderBook(ctx, item.GID, OrderBookAll, 0)
		if err != nil {
			return plans, err
		}

		plan := PlanReprice(item, prices.MarketPrice, book)
		if plan.Direction == RepriceKeep {
			continue
		}
		if opts.DryRun {
			plans = append(plans, plan)
			continue
		}

		_, err = Bind(c, item)[0].EditPrice(ctx, plan.NewPrice)
		if err != nil {
			err = fmt.Errorf("edit price of item %d: %w", item.ItemID, err)
			c.tel.ReportBroken(report_reprice, err)
			return plans, err
		}
		plans = append(plans, plan)
		c.tel.ReportDebug(report_reprice, item.ItemID, plan.OldPrice, plan.NewPrice, plan.Direction.String())
	}
	return plans, nil
}
