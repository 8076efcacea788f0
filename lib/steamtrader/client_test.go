package steamtrader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"steamtrader/internal/components/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) (*Client, *telemetry.Recorder, *atomic.Int32) {
	t.Helper()

	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL + "/"
	opts.RequestsPerSecond = 1000
	if opts.RetryWait == 0 {
		opts.RetryWait = time.Millisecond * 10
	}

	rec := &telemetry.Recorder{}
	client, err := NewClient(testAPIKey, rec, opts)
	require.NoError(t, err)
	return client, rec, hits
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(body))
	}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)
	return ctx
}

func ptr[T any](v T) *T {
	return &v
}

func TestMinPrices(t *testing.T) {
	client, rec, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getminprices/", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, testAPIKey, r.Header.Get("Api-Key"))
		require.Equal(t, "1220", r.URL.Query().Get("gid"))
		require.Equal(t, "1", r.URL.Query().Get("currency"))
		reply(`{
			"success": true,
			"market_price": "175.5",
			"buy_price": 160,
			"steam_price": null,
			"count_sell_offers": 12,
			"count_buy_offers": "4"
		}`)(w, r)
	}, Options{})

	res, err := client.MinPrices(testContext(t), 1220, 1)
	require.NoError(t, err)

	expected := &MinPrices{
		Success:         true,
		MarketPrice:     ptr(175.5),
		BuyPrice:        ptr(160.0),
		CountSellOffers: 12,
		CountBuyOffers:  4,
	}
	if diff := cmp.Diff(expected, res); diff != "" {
		t.Fatal(diff)
	}
	require.Empty(t, rec.Find(telemetry.LevelWarning, "unknown-fields"))
}

func TestDiscounts(t *testing.T) {
	client, _, _ := newTestClient(t, reply(`{
		"success": true,
		"data": {
			"753": {"total_buy": 100.5, "total_sell": 0, "discount": 0, "commission": 15},
			"730": {"total_buy": 0, "total_sell": 250, "discount": 1, "commission": 14}
		}
	}`), Options{})

	res, err := client.Discounts(testContext(t))
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	require.Equal(t, Discount{TotalBuy: 100.5, Commission: 15}, res.Data[AppSteamGift])
	require.Equal(t, Discount{TotalSell: 250, Discount: 1, Commission: 14}, res.Data[AppCSGO])
}

func TestUnknownKeysAreReported(t *testing.T) {
	client, rec, _ := newTestClient(t, reply(`{"success": true, "balance": 12.75, "bonus": 1}`), Options{})

	balance, err := client.Balance(testContext(t))
	require.NoError(t, err)
	require.Equal(t, 12.75, balance)

	warnings := rec.Find(telemetry.LevelWarning, "unknown-fields")
	require.Len(t, warnings, 1)
}

func TestDomainFailure(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		kind    ErrorKind
		message string
	}{
		{
			name:    "already sold",
			body:    `{"success": false, "code": 5, "error": "Предмет уже продается"}`,
			kind:    ErrItemAlreadySold,
			message: tableSell.Codes[5].Message,
		},
		{
			name:    "price out of range",
			body:    `{"success": false, "code": 4, "error": "Минимальная цена 0.5"}`,
			kind:    ErrIncorrectPrice,
			message: "Минимальная цена 0.5",
		},
		{
			name:    "rate limited",
			body:    `{"success": false, "code": 429}`,
			kind:    ErrTooManyRequests,
			message: commonCodes[429].Message,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			client, rec, _ := newTestClient(t, reply(test.body), Options{})

			res, err := client.Sell(testContext(t), 1, 2, 10)
			require.Nil(t, res)
			require.ErrorIs(t, err, test.kind)

			var domain *DomainError
			require.ErrorAs(t, err, &domain)
			require.Equal(t, "sale", domain.Endpoint)
			require.Equal(t, test.message, domain.Message)
			require.Len(t, rec.Find(telemetry.LevelWarning, report_client_failed), 1)
		})
	}
}

func TestUnclassifiedFailure(t *testing.T) {
	client, _, _ := newTestClient(t, reply(`{"success": false, "code": 77, "error": "new"}`), Options{})

	_, err := client.DeleteItem(testContext(t), 5)
	var unclassified *UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	require.Equal(t, 77, unclassified.Code)
	require.Equal(t, "deleteitem", unclassified.Endpoint)
}

func TestBenignFailure(t *testing.T) {
	client, _, _ := newTestClient(t, reply(`{"success": false}`), Options{})

	messages, err := client.AltWebSocket(testContext(t))
	require.NoError(t, err)
	require.Nil(t, messages)

	token, err := client.WebSocketToken(testContext(t))
	require.NoError(t, err)
	require.Nil(t, token)

	// the same reply is fatal elsewhere
	_, err = client.Balance(testContext(t))
	var unclassified *UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	require.False(t, unclassified.HasCode)
}

func TestWebSocketToken(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, testAPIKey, r.URL.Query().Get("key"))
		reply(`{"steam_id": "76561198000000000", "time": 1700000000, "hash": "abc"}`)(w, r)
	}, Options{})

	token, err := client.WebSocketToken(testContext(t))
	require.NoError(t, err)
	require.Equal(t, &WebSocketToken{SteamID: "76561198000000000", Time: 1700000000, Hash: "abc"}, token)
}

func TestStructuralFailure(t *testing.T) {
	client, rec, _ := newTestClient(t, reply(`{"success": true, "balance": "lots"}`), Options{})

	_, err := client.Balance(testContext(t))
	require.ErrorIs(t, err, ErrStructural)
	require.Len(t, rec.Find(telemetry.LevelBroken, report_client_decode), 1)
}

func TestTransportFailure(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}, Options{})

	_, err := client.Balance(testContext(t))
	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	require.Equal(t, http.StatusBadGateway, transport.Status)
	require.Equal(t, "getbalance", transport.Endpoint)
}

func TestRetryTooManyRequests(t *testing.T) {
	testCases := []struct {
		name    string
		limited http.HandlerFunc
	}{
		{
			name: "http status",
			limited: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name:    "envelope code",
			limited: reply(`{"success": false, "code": 429}`),
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			var calls atomic.Int32
			client, _, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					test.limited(w, r)
					return
				}
				reply(`{"success": true, "balance": 3}`)(w, r)
			}, Options{Retries: 2})

			balance, err := client.Balance(testContext(t))
			require.NoError(t, err)
			require.Equal(t, 3.0, balance)
			require.Equal(t, int32(2), hits.Load())
		})
	}
}

func TestNoRetryOnDomainFailure(t *testing.T) {
	client, _, hits := newTestClient(t, reply(`{"success": false, "code": 2}`), Options{Retries: 3})

	_, err := client.ItemInfo(testContext(t), 1)
	require.ErrorIs(t, err, ErrUnknownItem)
	require.Equal(t, int32(1), hits.Load())
}

func TestRejectedBeforeRequest(t *testing.T) {
	client, _, hits := newTestClient(t, reply(`{"success": true}`), Options{})
	ctx := testContext(t)

	_, err := client.Inventory(ctx, 1, nil)
	require.ErrorIs(t, err, ErrUnsupportedAppID)
	_, err = client.GetDownOrders(ctx, 42, OrderSell)
	require.ErrorIs(t, err, ErrUnsupportedAppID)
	err = client.UpdateInventory(ctx, 0)
	require.ErrorIs(t, err, ErrUnsupportedAppID)

	argumentErrors := []func() error{
		func() error { _, err := client.CreateBuyOrder(ctx, 1, 10, 0); return err },
		func() error { _, err := client.CreateBuyOrder(ctx, 1, 10, 501); return err },
		func() error { _, err := client.Buy(ctx, "1", BuyType(4), 10, 1); return err },
		func() error { _, err := client.MultiBuy(ctx, 1, 10, 0); return err },
		func() error { _, err := client.OrderBook(ctx, 1, OrderBookMode("both"), 0); return err },
		func() error { _, err := client.GetDownOrders(ctx, AppTF2, OrderType("all")); return err },
		func() error { _, err := client.Inventory(ctx, AppTF2, []int{StatusOnSale, 9}); return err },
		func() error { _, err := client.OperationsHistory(ctx, 11, 0); return err },
		func() error { _, err := client.MultiSell(ctx, AppTF2, 1, 10, 0); return err },
	}
	for _, fn := range argumentErrors {
		var argument *ArgumentError
		require.ErrorAs(t, fn(), &argument)
	}

	require.Equal(t, int32(0), hits.Load())
}

func TestSellSendsForm(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sale/", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "111", r.PostForm.Get("itemid"))
		require.Equal(t, "222", r.PostForm.Get("assetid"))
		require.Equal(t, "15.5", r.PostForm.Get("price"))
		reply(`{"success": true, "id": 9, "position": 1, "fast_execute": 0, "nc": "abc", "price": 15.5, "commission": 2.3}`)(w, r)
	}, Options{})

	res, err := client.Sell(testContext(t), 111, 222, 15.5)
	require.NoError(t, err)
	expected := &SellResult{
		Success:    true,
		ID:         9,
		Position:   1,
		NC:         "abc",
		Price:      ptr(15.5),
		Commission: ptr(2.3),
	}
	if diff := cmp.Diff(expected, res); diff != "" {
		t.Fatal(diff)
	}
}

func TestInventoryStatusFilter(t *testing.T) {
	body := `{
		"success": true,
		"count": 3,
		"game": 440,
		"last_update": 1700000000,
		"items": [
			{"id": 1, "assetid": null, "gid": 10, "itemid": 100, "price": 5, "currency": 1, "timer": null, "type": null, "status": 0, "position": 1, "nc": null, "percent": null, "steam_item": false, "nm": false},
			{"id": null, "assetid": 7, "gid": 11, "itemid": 101, "price": null, "currency": null, "timer": null, "type": null, "status": 1, "position": null, "nc": null, "percent": null, "steam_item": true, "nm": false},
			{"id": 3, "assetid": null, "gid": 10, "itemid": 102, "price": 6, "currency": 1, "timer": null, "type": null, "status": 0, "position": 2, "nc": null, "percent": null, "steam_item": false, "nm": true}
		]
	}`
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "440", r.URL.Query().Get("gameid"))
		reply(body)(w, r)
	}, Options{})
	ctx := testContext(t)

	all, err := client.Inventory(ctx, AppTF2, nil)
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	require.Equal(t, 7, *all.Items[1].AssetID)
	require.Nil(t, all.Items[1].ID)

	onSale, err := client.Inventory(ctx, AppTF2, []int{StatusOnSale})
	require.NoError(t, err)
	require.Len(t, onSale.Items, 2)
	require.Equal(t, 100, onSale.Items[0].ItemID)
	require.Equal(t, 102, onSale.Items[1].ItemID)
}

func TestClientHeaders(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, testAPIKey, r.Header.Get("Api-Key"))
		require.Equal(t, "steamtrader-go", r.Header.Get("User-Agent"))
		require.Equal(t, "en-US,en;q=0.5", r.Header.Get("Accept-Language"))
		require.NotEmpty(t, r.Header.Get("Accept"))
		reply(`{"success": true, "balance": 1}`)(w, r)
	}, Options{})

	balance, err := client.Balance(testContext(t))
	require.NoError(t, err)
	require.Equal(t, 1.0, balance)
}

func TestSetTradeLinkWithoutCode(t *testing.T) {
	link := "https://steamcommunity.com/tradeoffer/new/?partner=1&token=x"

	client, _, _ := newTestClient(t, reply(`{"success": false, "error": "bad link"}`), Options{})
	err := client.SetTradeLink(testContext(t), link)
	require.ErrorIs(t, err, ErrWrongTradeLink)

	client, _, _ = newTestClient(t, reply(`{"success": false, "code": 3}`), Options{})
	err = client.SetTradeLink(testContext(t), link)
	var unclassified *UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	require.Equal(t, 3, unclassified.Code)
}

func TestCanceledContext(t *testing.T) {
	client, _, _ := newTestClient(t, reply(`{"success": true, "balance": 1}`), Options{Retries: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Balance(ctx)
	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	require.True(t, errors.Is(err, context.Canceled))
}
