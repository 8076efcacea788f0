package steamtrader

import (
	"context"
)

// BoundItem pairs an inventory item with the client that acts on it. The
// item is a copy, nothing on the record refers back to the client.
type BoundItem struct {
	Client *Client
	Item   InventoryItem
}

func Bind(c *Client, items ...InventoryItem) []BoundItem {
	out := make([]BoundItem, len(items))
	for i, item := range items {
		out[i] = BoundItem{Client: c, Item: item}
	}
	return out
}

// Sell puts the item up for sale, it needs the item's asset id.
func (b BoundItem) Sell(ctx context.Context, price float64) (*SellResult, error) {
	if b.Item.AssetID == nil {
		return nil, &ArgumentError{Name: "item", Value: b.Item.ItemID, Reason: "has no asset id, it is not in the steam inventory"}
	}
	return b.Client.Sell(ctx, b.Item.ItemID, *b.Item.AssetID, price)
}

// EditPrice changes the price of the item's offer or order.
func (b BoundItem) EditPrice(ctx context.Context, price float64) (*EditPriceResult, error) {
	if b.Item.ID == nil {
		return nil, &ArgumentError{Name: "item", Value: b.Item.ItemID, Reason: "has no offer id, it is not on sale"}
	}
	return b.Client.EditPrice(ctx, *b.Item.ID, price)
}

// Delete withdraws the item's offer or order.
func (b BoundItem) Delete(ctx context.Context) (*DeleteItemResult, error) {
	if b.Item.ID == nil {
		return nil, &ArgumentError{Name: "item", Value: b.Item.ItemID, Reason: "has no offer id, it is not on sale"}
	}
	return b.Client.DeleteItem(ctx, *b.Item.ID)
}

// Info fetches the details of the item's group.
func (b BoundItem) Info(ctx context.Context) (*ItemInfo, error) {
	return b.Client.ItemInfo(ctx, b.Item.GID)
}

// MinPrices fetches the current prices of the item's group.
func (b BoundItem) MinPrices(ctx context.Context) (*MinPrices, error) {
	return b.Client.MinPrices(ctx, b.Item.GID, 1)
}
