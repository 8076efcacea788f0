package steamtrader

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanReprice(t *testing.T) {
	book := func(sell, buy []OrderBookRow) *OrderBook {
		return &OrderBook{Success: true, Sell: sell, Buy: buy}
	}

	testCases := []struct {
		name      string
		price     *float64
		market    *float64
		book      *OrderBook
		direction RepriceDirection
		newPrice  float64
	}{
		{
			name:      "above market",
			price:     ptr(12.0),
			market:    ptr(10.0),
			book:      book([]OrderBookRow{{10, 1}, {12, 1}}, []OrderBookRow{{8, 3}}),
			direction: RepriceLower,
			newPrice:  9.99,
		},
		{
			name:      "above market but under the best buy order",
			price:     ptr(12.0),
			market:    ptr(10.0),
			book:      book([]OrderBookRow{{10, 1}, {12, 1}}, []OrderBookRow{{9.99, 3}}),
			direction: RepriceKeep,
			newPrice:  12,
		},
		{
			name:      "alone at the lowest price",
			price:     ptr(10.0),
			market:    ptr(10.0),
			book:      book([]OrderBookRow{{10, 1}, {11.5, 2}}, []OrderBookRow{{8, 3}}),
			direction: RepriceRaise,
			newPrice:  11.49,
		},
		{
			name:      "sharing the lowest price",
			price:     ptr(10.0),
			market:    ptr(10.0),
			book:      book([]OrderBookRow{{10, 2}, {11.5, 2}}, []OrderBookRow{{8, 3}}),
			direction: RepriceKeep,
			newPrice:  10,
		},
		{
			name:      "single sell row",
			price:     ptr(10.0),
			market:    ptr(10.0),
			book:      book([]OrderBookRow{{10, 1}}, nil),
			direction: RepriceKeep,
			newPrice:  10,
		},
		{
			name:      "no buy orders",
			price:     ptr(12.0),
			market:    ptr(10.0),
			book:      book([]OrderBookRow{{10, 1}, {12, 1}}, nil),
			direction: RepriceKeep,
			newPrice:  12,
		},
		{
			name:      "no market price",
			price:     ptr(10.0),
			market:    nil,
			book:      book([]OrderBookRow{{10, 1}, {10.02, 1}}, []OrderBookRow{{8, 3}}),
			direction: RepriceRaise,
			newPrice:  10.01,
		},
		{
			name:      "no price",
			price:     nil,
			market:    ptr(10.0),
			book:      book([]OrderBookRow{{10, 1}, {12, 1}}, []OrderBookRow{{8, 3}}),
			direction: RepriceKeep,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			plan := PlanReprice(InventoryItem{Price: test.price}, test.market, test.book)
			require.Equal(t, test.direction, plan.Direction)
			require.InDelta(t, test.newPrice, plan.NewPrice, 1e-9)
		})
	}
}

func TestOrderBookPriceRange(t *testing.T) {
	_, sellOK, _, buyOK := OrderBook{}.PriceRange()
	require.False(t, sellOK)
	require.False(t, buyOK)

	book := OrderBook{
		Sell: []OrderBookRow{{10, 1}, {9.5, 2}, {11, 4}},
		Buy:  []OrderBookRow{{8, 1}, {8.5, 3}},
	}
	low, sellOK, high, buyOK := book.PriceRange()
	require.True(t, sellOK)
	require.True(t, buyOK)
	require.Equal(t, 9.5, low)
	require.Equal(t, 8.5, high)
}

func TestReprice(t *testing.T) {
	var (
		mu     sync.Mutex
		edited = map[string]string{}
	)
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getinventory/":
			reply(`{"success": true, "count": 3, "game": 440, "last_update": 0, "items": [
				{"id": 1, "gid": 10, "itemid": 100, "price": 12, "status": 0, "steam_item": false, "nm": false},
				{"id": 2, "gid": 10, "itemid": 101, "price": 0.5, "status": 0, "steam_item": false, "nm": false},
				{"id": 3, "gid": 20, "itemid": 102, "price": 5, "status": 0, "steam_item": false, "nm": false}
			]}`)(w, r)
		case "/getminprices/":
			reply(`{"success": true, "market_price": 10, "buy_price": 8, "steam_price": 11, "count_sell_offers": 2, "count_buy_offers": 1}`)(w, r)
		case "/orderbook/":
			if r.URL.Query().Get("gid") == "10" {
				reply(`{"success": true, "sell": [[10, 1], [12, 1]], "buy": [[8, 1]], "total_sell": 2, "total_buy": 1}`)(w, r)
				return
			}
			reply(`{"success": true, "sell": [[5, 2], [6, 1]], "buy": [[4, 1]], "total_sell": 3, "total_buy": 1}`)(w, r)
		case "/editprice/":
			require.NoError(t, r.ParseForm())
			mu.Lock()
			edited[r.PostForm.Get("id")] = r.PostForm.Get("price")
			mu.Unlock()
			reply(`{"success": true, "type": 0, "position": 1, "fast_execute": false}`)(w, r)
		default:
			http.NotFound(w, r)
		}
	}

	client, _, _ := newTestClient(t, handler, Options{})

	plans, err := client.Reprice(testContext(t), AppTF2, RepriceOptions{SkipPrice: 0.5, DryRun: true})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.Equal(t, 100, plans[0].Item.ItemID)
	require.Equal(t, RepriceLower, plans[0].Direction)
	require.Empty(t, edited)

	plans, err = client.Reprice(testContext(t), AppTF2, RepriceOptions{SkipPrice: 0.5})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.Equal(t, map[string]string{"1": "9.99"}, edited)
}

func TestBoundItem(t *testing.T) {
	client, _, hits := newTestClient(t, reply(`{"success": true}`), Options{})
	ctx := testContext(t)

	bound := Bind(client, InventoryItem{GID: 1, ItemID: 2})
	require.Len(t, bound, 1)

	var argument *ArgumentError
	_, err := bound[0].Sell(ctx, 10)
	require.ErrorAs(t, err, &argument)
	_, err = bound[0].EditPrice(ctx, 10)
	require.ErrorAs(t, err, &argument)
	_, err = bound[0].Delete(ctx)
	require.ErrorAs(t, err, &argument)
	require.Equal(t, int32(0), hits.Load())
}
