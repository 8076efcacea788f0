package steamtrader

import "steamtrader/lib/schema"

type MinPrices struct {
	Success         bool
	MarketPrice     *float64
	BuyPrice        *float64
	SteamPrice      *float64
	CountSellOffers int
	CountBuyOffers  int
}

var minPricesSchema = &schema.Schema[MinPrices]{
	Name: "MinPrices",
	Fields: []schema.Field[MinPrices]{
		schema.Bool("success", func(r *MinPrices, v bool) { r.Success = v }),
		schema.Float("market_price", func(r *MinPrices, v float64) { r.MarketPrice = &v }).Optional(),
		schema.Float("buy_price", func(r *MinPrices, v float64) { r.BuyPrice = &v }).Optional(),
		schema.Float("steam_price", func(r *MinPrices, v float64) { r.SteamPrice = &v }).Optional(),
		schema.Int("count_sell_offers", func(r *MinPrices, v int) { r.CountSellOffers = v }),
		schema.Int("count_buy_offers", func(r *MinPrices, v int) { r.CountBuyOffers = v }),
	},
}

// Filter is one facet value an item carries, e.g. quality "Unique".
type Filter struct {
	ID    *int
	Title *string
	Color *string
}

var filterSchema = &schema.Schema[Filter]{
	Name: "Filter",
	Fields: []schema.Field[Filter]{
		schema.Int("id", func(r *Filter, v int) { r.ID = &v }).Optional(),
		schema.String("title", func(r *Filter, v string) { r.Title = &v }).Optional(),
		schema.String("color", func(r *Filter, v string) { r.Color = &v }).Optional(),
	},
}

// Filters holds the facet values of one item. Only the slots of the item's
// game are filled, the others stay nil.
type Filters struct {
	Quality []Filter
	Type    []Filter
	UsedBy  []Filter
	Craft   []Filter
	Region  []Filter
	Genre   []Filter
	Mode    []Filter
	Trade   []Filter
	Rarity  []Filter
	Hero    []Filter
}

func filterSlot(name string, set func(*Filters, []Filter)) schema.Field[Filters] {
	return schema.Seq(name, filterSchema, set)
}

var (
	setQuality = func(r *Filters, v []Filter) { r.Quality = v }
	setType    = func(r *Filters, v []Filter) { r.Type = v }
)

var filtersSchema = schema.OneOf("Filters",
	&schema.Schema[Filters]{
		Name: "Filters",
		Fields: []schema.Field[Filters]{
			filterSlot("quality", setQuality),
			filterSlot("type", setType),
			filterSlot("used_by", func(r *Filters, v []Filter) { r.UsedBy = v }).From("class"),
			filterSlot("craft", func(r *Filters, v []Filter) { r.Craft = v }),
		},
	},
	&schema.Schema[Filters]{
		Name: "Filters",
		Fields: []schema.Field[Filters]{
			filterSlot("region", func(r *Filters, v []Filter) { r.Region = v }),
			filterSlot("genre", func(r *Filters, v []Filter) { r.Genre = v }),
			filterSlot("mode", func(r *Filters, v []Filter) { r.Mode = v }),
			filterSlot("trade", func(r *Filters, v []Filter) { r.Trade = v }),
		},
	},
	&schema.Schema[Filters]{
		Name: "Filters",
		Fields: []schema.Field[Filters]{
			filterSlot("rarity", func(r *Filters, v []Filter) { r.Rarity = v }),
			filterSlot("quality", setQuality),
			filterSlot("type", setType),
			filterSlot("hero", func(r *Filters, v []Filter) { r.Hero = v }),
		},
	},
)

type SellOffer struct {
	ID         int
	ClassID    int
	InstanceID int
	ItemID     int
	Price      float64
	Currency   int
}

var sellOfferSchema = &schema.Schema[SellOffer]{
	Name: "SellOffer",
	Fields: []schema.Field[SellOffer]{
		schema.Int("id", func(r *SellOffer, v int) { r.ID = v }),
		schema.Int("classid", func(r *SellOffer, v int) { r.ClassID = v }),
		schema.Int("instanceid", func(r *SellOffer, v int) { r.InstanceID = v }),
		schema.Int("itemid", func(r *SellOffer, v int) { r.ItemID = v }),
		schema.Float("price", func(r *SellOffer, v float64) { r.Price = v }),
		schema.Int("currency", func(r *SellOffer, v int) { r.Currency = v }),
	},
}

type BuyOffer struct {
	ID       int
	Price    float64
	Currency int
}

var buyOfferSchema = &schema.Schema[BuyOffer]{
	Name: "BuyOffer",
	Fields: []schema.Field[BuyOffer]{
		schema.Int("id", func(r *BuyOffer, v int) { r.ID = v }),
		schema.Float("price", func(r *BuyOffer, v float64) { r.Price = v }),
		schema.Int("currency", func(r *BuyOffer, v int) { r.Currency = v }),
	},
}

// SellHistoryItem arrives as a [timestamp, price] pair.
type SellHistoryItem struct {
	Date  int
	Price float64
}

var sellHistoryItemSchema = &schema.Schema[SellHistoryItem]{
	Name: "SellHistoryItem",
	Fields: []schema.Field[SellHistoryItem]{
		schema.Int("date", func(r *SellHistoryItem, v int) { r.Date = v }),
		schema.Float("price", func(r *SellHistoryItem, v float64) { r.Price = v }),
	},
}

type ItemInfo struct {
	Success     bool
	Name        string
	HashName    string
	Type        string
	GameID      int
	ContextID   int
	Color       string
	SmallImage  string
	LargeImage  string
	Marketable  bool
	Tradable    bool
	Description string
	MarketPrice *float64
	BuyPrice    *float64
	SteamPrice  *float64
	Filters     *Filters
	SellOffers  []SellOffer
	BuyOffers   []BuyOffer
	SellHistory []SellHistoryItem
}

var itemInfoSchema = &schema.Schema[ItemInfo]{
	Name: "ItemInfo",
	Fields: []schema.Field[ItemInfo]{
		schema.Bool("success", func(r *ItemInfo, v bool) { r.Success = v }),
		schema.String("name", func(r *ItemInfo, v string) { r.Name = v }),
		schema.String("hash_name", func(r *ItemInfo, v string) { r.HashName = v }),
		schema.String("type", func(r *ItemInfo, v string) { r.Type = v }),
		schema.Int("gameid", func(r *ItemInfo, v int) { r.GameID = v }),
		schema.Int("contextid", func(r *ItemInfo, v int) { r.ContextID = v }),
		schema.String("color", func(r *ItemInfo, v string) { r.Color = v }),
		schema.String("small_image", func(r *ItemInfo, v string) { r.SmallImage = v }),
		schema.String("large_image", func(r *ItemInfo, v string) { r.LargeImage = v }),
		schema.Bool("marketable", func(r *ItemInfo, v bool) { r.Marketable = v }),
		schema.Bool("tradable", func(r *ItemInfo, v bool) { r.Tradable = v }),
		schema.String("description", func(r *ItemInfo, v string) { r.Description = v }),
		schema.Float("market_price", func(r *ItemInfo, v float64) { r.MarketPrice = &v }).Optional(),
		schema.Float("buy_price", func(r *ItemInfo, v float64) { r.BuyPrice = &v }).Optional(),
		schema.Float("steam_price", func(r *ItemInfo, v float64) { r.SteamPrice = &v }).Optional(),
		schema.Nested("filters", filtersSchema, func(r *ItemInfo, v Filters) { r.Filters = &v }).Optional(),
		schema.Seq("sell_offers", sellOfferSchema, func(r *ItemInfo, v []SellOffer) { r.SellOffers = v }),
		schema.Seq("buy_offers", buyOfferSchema, func(r *ItemInfo, v []BuyOffer) { r.BuyOffers = v }),
		schema.Seq("sell_history", sellHistoryItemSchema, func(r *ItemInfo, v []SellHistoryItem) { r.SellHistory = v }),
	},
}

// OrderBookRow arrives as a [price, count] pair.
type OrderBookRow struct {
	Price float64
	Count int
}

var orderBookRowSchema = &schema.Schema[OrderBookRow]{
	Name: "OrderBookRow",
	Fields: []schema.Field[OrderBookRow]{
		schema.Float("price", func(r *OrderBookRow, v float64) { r.Price = v }),
		schema.Int("count", func(r *OrderBookRow, v int) { r.Count = v }),
	},
}

type OrderBook struct {
	Success   bool
	Sell      []OrderBookRow
	Buy       []OrderBookRow
	TotalSell int
	TotalBuy  int
}

var orderBookSchema = &schema.Schema[OrderBook]{
	Name: "OrderBook",
	Fields: []schema.Field[OrderBook]{
		schema.Bool("success", func(r *OrderBook, v bool) { r.Success = v }),
		schema.Seq("sell", orderBookRowSchema, func(r *OrderBook, v []OrderBookRow) { r.Sell = v }),
		schema.Seq("buy", orderBookRowSchema, func(r *OrderBook, v []OrderBookRow) { r.Buy = v }),
		schema.Int("total_sell", func(r *OrderBook, v int) { r.TotalSell = v }),
		schema.Int("total_buy", func(r *OrderBook, v int) { r.TotalBuy = v }),
	},
}

// PriceRange returns the lowest sell price and the highest buy price in the
// book, ok is false for a side with no rows.
func (b OrderBook) PriceRange() (lowestSell float64, sellOK bool, highestBuy float64, buyOK bool) {
	for i, row := range b.Sell {
		if i == 0 || row.Price < lowestSell {
			lowestSell = row.Price
		}
		sellOK = true
	}
	for i, row := range b.Buy {
		if i == 0 || row.Price > highestBuy {
			highestBuy = row.Price
		}
		buyOK = true
	}
	return lowestSell, sellOK, highestBuy, buyOK
}

type Discount struct {
	TotalBuy   float64
	TotalSell  float64
	Discount   float64
	Commission float64
}

var discountSchema = &schema.Schema[Discount]{
	Name: "Discount",
	Fields: []schema.Field[Discount]{
		schema.Float("total_buy", func(r *Discount, v float64) { r.TotalBuy = v }),
		schema.Float("total_sell", func(r *Discount, v float64) { r.TotalSell = v }),
		schema.Float("discount", func(r *Discount, v float64) { r.Discount = v }),
		schema.Float("commission", func(r *Discount, v float64) { r.Commission = v }),
	},
}

// Discounts is keyed by app id.
type Discounts struct {
	Success bool
	Data    map[int]Discount
}

var discountsSchema = &schema.Schema[Discounts]{
	Name: "Discounts",
	Fields: []schema.Field[Discounts]{
		schema.Bool("success", func(r *Discounts, v bool) { r.Success = v }),
		schema.IntMap("data", discountSchema, func(r *Discounts, v map[int]Discount) { r.Data = v }),
	},
}
