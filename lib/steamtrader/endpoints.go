package steamtrader

import (
	"context"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-resty/resty/v2"
)

var (
	epBalance             = endpoint{resty.MethodGet, "getbalance/", tableBalance, AbsentCodeFatal}
	epSell                = endpoint{resty.MethodPost, "sale/", tableSell, AbsentCodeFatal}
	epBuy                 = endpoint{resty.MethodPost, "buy/", tableBuy, AbsentCodeFatal}
	epCreateBuyOrder      = endpoint{resty.MethodPost, "createbuyorder/", tableCreateBuyOrder, AbsentCodeFatal}
	epMultiBuy            = endpoint{resty.MethodPost, "multibuy/", tableMultiBuy, AbsentCodeFatal}
	epEditPrice           = endpoint{resty.MethodPost, "editprice/", tableEditPrice, AbsentCodeFatal}
	epDeleteItem          = endpoint{resty.MethodPost, "deleteitem/", tableDeleteItem, AbsentCodeFatal}
	epGetDownOrders       = endpoint{resty.MethodPost, "getdownorders/", tableGetDownOrders, AbsentCodeFatal}
	epItemsForExchange    = endpoint{resty.MethodGet, "itemsforexchange/", tableItemsForExchange, AbsentCodeFatal}
	epExchange            = endpoint{resty.MethodGet, "exchange/", tableExchange, AbsentCodeFatal}
	epItemsForExchangeP2P = endpoint{resty.MethodGet, "itemsforexchangep2p/", tableItemsForExchangeP2P, AbsentCodeFatal}
	epExchangeP2P         = endpoint{resty.MethodGet, "exchangep2p/", tableExchangeP2P, AbsentCodeFatal}
	epMinPrices           = endpoint{resty.MethodGet, "getminprices/", tableMinPrices, AbsentCodeFatal}
	epItemInfo            = endpoint{resty.MethodGet, "iteminfo/", tableItemInfo, AbsentCodeFatal}
	epOrderBook           = endpoint{resty.MethodGet, "orderbook/", tableOrderBook, AbsentCodeFatal}
	epWebSocketToken      = endpoint{resty.MethodGet, "getwstoken/", tableWebSocketToken, AbsentCodeBenign}
	epInventory           = endpoint{resty.MethodGet, "getinventory/", tableInventory, AbsentCodeFatal}
	epBuyOrders           = endpoint{resty.MethodGet, "getbuyorders/", tableBuyOrders, AbsentCodeFatal}
	epDiscounts           = endpoint{resty.MethodGet, "getdiscounts/", tableDiscounts, AbsentCodeFatal}
	epSetTradeLink        = endpoint{resty.MethodPost, "settradelink/", tableSetTradeLink, AbsentCodeFatal}
	epRemoveTradeLink     = endpoint{resty.MethodPost, "removetradelink/", tableRemoveTradeLink, AbsentCodeFatal}
	epOperationsHistory   = endpoint{resty.MethodGet, "operationshistory/", tableOperationsHistory, AbsentCodeFatal}
	epUpdateInventory     = endpoint{resty.MethodGet, "updateinventory/", tableUpdateInventory, AbsentCodeFatal}
	epInventoryState      = endpoint{resty.MethodGet, "inventorystate/", tableInventoryState, AbsentCodeFatal}
	epAltWebSocket        = endpoint{resty.MethodGet, "altws/", tableAltWebSocket, AbsentCodeBenign}
)

func itoa(v int) string {
	return strconv.Itoa(v)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkApp(appID int) error {
	if !IsSupportedApp(appID) {
		return &DomainError{
			Kind:     ErrUnsupportedAppID,
			Endpoint: "client",
			Message:  "app id " + itoa(appID) + " is not supported",
		}
	}
	return nil
}

// Balance returns the account balance in roubles.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	res, err := call(ctx, c, epBalance, balanceSchema, nil)
	if err != nil {
		return 0, err
	}
	return res.Balance, nil
}

// Sell puts an inventory item up for sale at price, excluding commission.
func (c *Client) Sell(ctx context.Context, itemID, assetID int, price float64) (*SellResult, error) {
	return call(ctx, c, epSell, sellResultSchema, url.Values{
		"itemid":  {itoa(itemID)},
		"assetid": {itoa(assetID)},
		"price":   {ftoa(price)},
	})
}

// Buy buys at exactly price. id is a gid, a no-commission code or a sell
// offer id depending on typ.
func (c *Client) Buy(ctx context.Context, id string, typ BuyType, price float64, currency int) (*BuyResult, error) {
	if typ < BuyCommodity || typ > BuySellOffer {
		return nil, &ArgumentError{Name: "buy type", Value: typ, Reason: "must be 1, 2 or 3"}
	}
	return call(ctx, c, epBuy, buyResultSchema, url.Values{
		"id":       {id},
		"type":     {itoa(int(typ))},
		"price":    {ftoa(price)},
		"currency": {itoa(currency)},
	})
}

func (c *Client) CreateBuyOrder(ctx context.Context, gid int, price float64, count int) (*BuyOrderResult, error) {
	if count < 1 || count > 500 {
		return nil, &ArgumentError{Name: "count", Value: count, Reason: "must be between 1 and 500"}
	}
	return call(ctx, c, epCreateBuyOrder, buyOrderResultSchema, url.Values{
		"gid":   {itoa(gid)},
		"price": {ftoa(price)},
		"count": {itoa(count)},
	})
}

// MultiBuy buys count units of gid, cheapest first, paying at most maxPrice
// per unit. If fewer units are available at that price or the balance runs
// out midway the call fails with ErrNotEnoughMoney.
func (c *Client) MultiBuy(ctx context.Context, gid int, maxPrice float64, count int) (*MultiBuyResult, error) {
	if count < 1 {
		return nil, &ArgumentError{Name: "count", Value: count, Reason: "must be positive"}
	}
	return call(ctx, c, epMultiBuy, multiBuyResultSchema, url.Values{
		"gid":       {itoa(gid)},
		"max_price": {ftoa(maxPrice)},
		"count":     {itoa(count)},
	})
}

// EditPrice changes the price of a sell offer or a buy order.
func (c *Client) EditPrice(ctx context.Context, id int, price float64) (*EditPriceResult, error) {
	return call(ctx, c, epEditPrice, editPriceResultSchema, url.Values{
		"id":    {itoa(id)},
		"price": {ftoa(price)},
	})
}

// DeleteItem withdraws a sell offer or a buy order.
func (c *Client) DeleteItem(ctx context.Context, id int) (*DeleteItemResult, error) {
	return call(ctx, c, epDeleteItem, deleteItemResultSchema, url.Values{
		"id": {itoa(id)},
	})
}

type OrderType string

const (
	OrderSell OrderType = "sell"
	OrderBuy  OrderType = "buy"
)

// GetDownOrders withdraws every sell offer or every buy order of one section.
func (c *Client) GetDownOrders(ctx context.Context, appID int, orderType OrderType) (*GetDownOrdersResult, error) {
	err := checkApp(appID)
	if err != nil {
		return nil, err
	}
	if orderType != OrderSell && orderType != OrderBuy {
		return nil, &ArgumentError{Name: "order type", Value: orderType, Reason: `must be "sell" or "buy"`}
	}
	return call(ctx, c, epGetDownOrders, getDownOrdersResultSchema, url.Values{
		"gameid": {itoa(appID)},
		"type":   {string(orderType)},
	})
}

// ItemsForExchange lists the items that have to be handed to the bot.
func (c *Client) ItemsForExchange(ctx context.Context) (*ItemsForExchange, error) {
	return call(ctx, c, epItemsForExchange, itemsForExchangeSchema, nil)
}

// Exchange asks a bot to send a trade offer for the items waiting to be
// handed over.
func (c *Client) Exchange(ctx context.Context) (*ExchangeResult, error) {
	return call(ctx, c, epExchange, exchangeResultSchema, nil)
}

// ItemsForExchangeP2P lists the items that have to be sent to buyers
// directly.
func (c *Client) ItemsForExchangeP2P(ctx context.Context) (*ItemsForExchange, error) {
	return call(ctx, c, epItemsForExchangeP2P, itemsForExchangeSchema, nil)
}

// ExchangeP2P returns the trade offers to send, accept, confirm and cancel
// for peer to peer trades.
func (c *Client) ExchangeP2P(ctx context.Context) (*ExchangeP2PResult, error) {
	return call(ctx, c, epExchangeP2P, exchangeP2PResultSchema, nil)
}

func (c *Client) MinPrices(ctx context.Context, gid int, currency int) (*MinPrices, error) {
	return call(ctx, c, epMinPrices, minPricesSchema, url.Values{
		"gid":      {itoa(gid)},
		"currency": {itoa(currency)},
	})
}

func (c *Client) ItemInfo(ctx context.Context, gid int) (*ItemInfo, error) {
	return call(ctx, c, epItemInfo, itemInfoSchema, url.Values{
		"gid": {itoa(gid)},
	})
}

type OrderBookMode string

const (
	OrderBookAll  OrderBookMode = "all"
	OrderBookSell OrderBookMode = "sell"
	OrderBookBuy  OrderBookMode = "buy"
)

// OrderBook returns the grouped sell and buy orders of gid. limit <= 0 means
// no limit.
func (c *Client) OrderBook(ctx context.Context, gid int, mode OrderBookMode, limit int) (*OrderBook, error) {
	switch mode {
	case OrderBookAll, OrderBookSell, OrderBookBuy:
	default:
		return nil, &ArgumentError{Name: "order book mode", Value: mode, Reason: `must be "all", "sell" or "buy"`}
	}
	params := url.Values{
		"gid":  {itoa(gid)},
		"mode": {string(mode)},
	}
	if limit > 0 {
		params.Set("limit", itoa(limit))
	}
	return call(ctx, c, epOrderBook, orderBookSchema, params)
}

// WebSocketToken returns nil without an error when the server refuses to
// issue a token without a code.
func (c *Client) WebSocketToken(ctx context.Context) (*WebSocketToken, error) {
	return call(ctx, c, epWebSocketToken, webSocketTokenSchema, url.Values{
		"key": {c.apiKey},
	})
}

// Inventory returns the items of one section. With statuses set only items
// in one of them are returned, without it only items not on sale.
func (c *Client) Inventory(ctx context.Context, appID int, statuses []int) (*Inventory, error) {
	err := checkApp(appID)
	if err != nil {
		return nil, err
	}
	params := url.Values{"gameid": {itoa(appID)}}
	for i, s := range statuses {
		if s < StatusOnSale || s > StatusBuyOrder {
			return nil, &ArgumentError{Name: "status", Value: s, Reason: "must be between 0 and 4"}
		}
		params.Set("status["+itoa(i)+"]", itoa(s))
	}

	inv, err := call(ctx, c, epInventory, inventorySchema, params)
	if err != nil || inv == nil || len(statuses) == 0 {
		return inv, err
	}
	inv.Items = slices.DeleteFunc(inv.Items, func(item InventoryItem) bool {
		return !slices.Contains(statuses, item.Status)
	})
	return inv, nil
}

// BuyOrders lists the account's buy orders, appID and gid narrow it down
// when non-zero.
func (c *Client) BuyOrders(ctx context.Context, appID, gid int) (*BuyOrders, error) {
	params := url.Values{}
	if appID != 0 {
		err := checkApp(appID)
		if err != nil {
			return nil, err
		}
		params.Set("gameid", itoa(appID))
	}
	if gid != 0 {
		params.Set("gid", itoa(gid))
	}
	return call(ctx, c, epBuyOrders, buyOrdersSchema, params)
}

// Discounts returns the commission and discount per section.
func (c *Client) Discounts(ctx context.Context) (*Discounts, error) {
	return call(ctx, c, epDiscounts, discountsSchema, nil)
}

func (c *Client) SetTradeLink(ctx context.Context, tradeLink string) error {
	_, err := call(ctx, c, epSetTradeLink, emptySchema, url.Values{
		"trade_link": {tradeLink},
	})
	return err
}

func (c *Client) RemoveTradeLink(ctx context.Context) error {
	_, err := call(ctx, c, epRemoveTradeLink, emptySchema, url.Values{
		"trade_link": {"1"},
	})
	return err
}

// OperationsHistory returns one page of up to 100 operations. operationType
// 0 returns every type.
func (c *Client) OperationsHistory(ctx context.Context, operationType, page int) (*OperationsHistory, error) {
	params := url.Values{"page": {itoa(page)}}
	if operationType != 0 {
		if operationType < OperationPurchase || operationType > OperationPenalty {
			return nil, &ArgumentError{Name: "operation type", Value: operationType, Reason: "must be between 1 and 10"}
		}
		params.Set("type", itoa(operationType))
	}
	return call(ctx, c, epOperationsHistory, operationsHistorySchema, params)
}

// UpdateInventory asks the site to reload the steam inventory of a section.
func (c *Client) UpdateInventory(ctx context.Context, appID int) error {
	err := checkApp(appID)
	if err != nil {
		return err
	}
	_, err = call(ctx, c, epUpdateInventory, emptySchema, url.Values{
		"gameid": {itoa(appID)},
	})
	return err
}

func (c *Client) InventoryState(ctx context.Context, appID int) (*InventoryState, error) {
	err := checkApp(appID)
	if err != nil {
		return nil, err
	}
	return call(ctx, c, epInventoryState, inventoryStateSchema, url.Values{
		"gameid": {itoa(appID)},
	})
}

// AltWebSocket polls the websocket fallback. It has to be called every two
// minutes to keep the session alive and returns nil when there is nothing
// new.
func (c *Client) AltWebSocket(ctx context.Context) (*AltWebSocket, error) {
	return call(ctx, c, epAltWebSocket, altWebSocketSchema, nil)
}
