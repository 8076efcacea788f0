package web

import "steamtrader/lib/schema"

// MainPageItem is one item group listed on a market page.
type MainPageItem struct {
	// Benefit is set when the price is lower than on the steam market.
	Benefit     bool
	Count       int
	Description string
	GID         int
	HashName    string
	ImageSmall  string
	Name        string
	Outline     string
	Price       float64
	Type        string
}

var mainPageItemSchema = &schema.Schema[MainPageItem]{
	Name:   "MainPageItem",
	Ignore: []string{"color"},
	Fields: []schema.Field[MainPageItem]{
		schema.Bool("benefit", func(r *MainPageItem, v bool) { r.Benefit = v }),
		schema.Int("count", func(r *MainPageItem, v int) { r.Count = v }),
		schema.String("description", func(r *MainPageItem, v string) { r.Description = v }),
		schema.Int("gid", func(r *MainPageItem, v int) { r.GID = v }),
		schema.String("hash_name", func(r *MainPageItem, v string) { r.HashName = v }),
		schema.String("image_small", func(r *MainPageItem, v string) { r.ImageSmall = v }),
		schema.String("name", func(r *MainPageItem, v string) { r.Name = v }),
		schema.String("outline", func(r *MainPageItem, v string) { r.Outline = v }),
		schema.Float("price", func(r *MainPageItem, v float64) { r.Price = v }),
		schema.String("type", func(r *MainPageItem, v string) { r.Type = v }),
	},
}

type mainPageContents struct {
	Items []MainPageItem
}

var mainPageContentsSchema = &schema.Schema[mainPageContents]{
	Name: "MainPageContents",
	Open: true,
	Fields: []schema.Field[mainPageContents]{
		schema.Seq("items", mainPageItemSchema, func(r *mainPageContents, v []MainPageItem) { r.Items = v }).Optional(),
	},
}

type MainPage struct {
	// Auth is set when the session id was accepted.
	Auth        bool
	Items       []MainPageItem
	Currency    int
	CurrentPage int
	PageCount   int
	// Commission and Discount are only sent to authenticated sessions.
	Commission *int
	Discount   *float64
}

var mainPageSchema = &schema.Schema[MainPage]{
	Name:   "MainPage",
	Ignore: []string{"body", "chat", "handler", "menu", "sorter", "title", "game"},
	Fields: []schema.Field[MainPage]{
		schema.Bool("auth", func(r *MainPage, v bool) { r.Auth = v }),
		schema.Nested("contents", mainPageContentsSchema, func(r *MainPage, v mainPageContents) { r.Items = v.Items }).Optional(),
		schema.Int("currency", func(r *MainPage, v int) { r.Currency = v }),
		schema.Int("current_page", func(r *MainPage, v int) { r.CurrentPage = v }),
		schema.Int("page_count", func(r *MainPage, v int) { r.PageCount = v }),
		schema.Int("commission", func(r *MainPage, v int) { r.Commission = &v }).Optional(),
		schema.Float("discount", func(r *MainPage, v float64) { r.Discount = &v }).Optional(),
	},
}

// SellOffer is one offer listed on an item page.
type SellOffer struct {
	ID       int
	ItemID   int
	ImageURL string
	Name     string
	Type     string
	Price    float64
}

// ItemDescription describes one unique item, keyed by item id in ItemInfo.
type ItemDescription struct {
	Name        string
	Type        string
	ImageSmall  string
	Color       string
	Outline     string
	Description string
}

var itemDescriptionSchema = &schema.Schema[ItemDescription]{
	Name: "ItemDescription",
	Fields: []schema.Field[ItemDescription]{
		schema.String("name", func(r *ItemDescription, v string) { r.Name = v }),
		schema.String("type", func(r *ItemDescription, v string) { r.Type = v }).Optional(),
		schema.String("image_small", func(r *ItemDescription, v string) { r.ImageSmall = v }).Optional(),
		schema.String("color", func(r *ItemDescription, v string) { r.Color = v }).Optional(),
		schema.String("outline", func(r *ItemDescription, v string) { r.Outline = v }).Optional(),
		schema.String("description", func(r *ItemDescription, v string) { r.Description = v }).Optional(),
	},
}

type ItemInfo struct {
	Auth       bool
	SellOffers []SellOffer
	// Descriptions is nil when every offer on the page is a generic item.
	Descriptions map[int]ItemDescription
	Item         bool
	Commission   *int
	Discount     *float64
}

// itemPage holds the envelope keys of an item page, the html in Contents is
// decoded separately.
type itemPage struct {
	Auth       bool
	Contents   string
	Item       bool
	Commission *int
	Discount   *float64
}

var itemPageSchema = &schema.Schema[itemPage]{
	Name:   "ItemInfo",
	Ignore: []string{"title", "game", "menu", "body", "chat", "handler"},
	Fields: []schema.Field[itemPage]{
		schema.Bool("auth", func(r *itemPage, v bool) { r.Auth = v }).Optional(),
		schema.String("contents", func(r *itemPage, v string) { r.Contents = v }),
		schema.Bool("item", func(r *itemPage, v bool) { r.Item = v }).Optional(),
		schema.Int("commission", func(r *itemPage, v int) { r.Commission = &v }).Optional(),
		schema.Float("discount", func(r *itemPage, v float64) { r.Discount = &v }).Optional(),
	},
}

type Referral struct {
	Name   string
	Date   string
	Status string
	Sum    float64
}

// HistoryItem is one sale on a history page.
type HistoryItem struct {
	// URL is the path of the item page, relative to the site.
	URL      string
	Name     string
	Date     string
	Price    float64
	Color    string
	ImageURL string
}
