package steamtrader

var commonCodes = map[int]CodeEntry{
	400: {Kind: ErrBadRequest, Message: "malformed request"},
	401: {Kind: ErrUnauthorized, Message: "invalid api key"},
	429: {Kind: ErrTooManyRequests, Message: "too many requests were sent"},
}

// newTable merges the codes every endpoint shares with the endpoint's own.
func newTable(endpoint string, codes map[int]CodeEntry) CodeTable {
	merged := make(map[int]CodeEntry, len(commonCodes)+len(codes))
	for code, entry := range commonCodes {
		merged[code] = entry
	}
	for code, entry := range codes {
		merged[code] = entry
	}
	return CodeTable{Endpoint: endpoint, Codes: merged}
}

var (
	offerCreationFail = CodeEntry{Kind: ErrOfferCreationFail, Message: "failed to create the offer"}
	tradeCreationFail = CodeEntry{Kind: ErrTradeCreationFail, Message: "failed to create the trade"}
	internalError     = CodeEntry{Kind: ErrInternal, Message: "internal server error"}
	unknownItem       = CodeEntry{Kind: ErrUnknownItem, Message: "unknown item"}
	noTradeLink       = CodeEntry{Kind: ErrNoTradeLink, Message: "no trade link is set"}
	notEnoughMoney    = CodeEntry{Kind: ErrNotEnoughMoney, Message: "not enough money on the balance"}
	noLongerExists    = CodeEntry{Kind: ErrNoLongerExists, Message: "the offer no longer exists"}
	noTradeItems      = CodeEntry{Kind: ErrNoTradeItems, Message: "there are no items to trade"}
	authenticator     = CodeEntry{Kind: ErrAuthenticator, Message: "the mobile authenticator is not connected or was connected less than 7 days ago"}
)

var (
	tableBalance = newTable("getbalance", nil)

	tableSell = newTable("sale", map[int]CodeEntry{
		1: offerCreationFail,
		2: unknownItem,
		3: noTradeLink,
		4: {Kind: ErrIncorrectPrice, Message: "the price is out of the allowed range", ServerMessage: true},
		5: {Kind: ErrItemAlreadySold, Message: "the item is already on sale or in a trade"},
		6: authenticator,
	})

	tableBuy = newTable("buy", map[int]CodeEntry{
		1: offerCreationFail,
		3: noTradeLink,
		4: noLongerExists,
		5: notEnoughMoney,
	})

	tableCreateBuyOrder = newTable("createbuyorder", map[int]CodeEntry{
		1: offerCreationFail,
		2: unknownItem,
		3: noTradeLink,
		4: noLongerExists,
		5: notEnoughMoney,
	})

	tableMultiBuy = newTable("multibuy", map[int]CodeEntry{
		1: offerCreationFail,
		2: {Kind: ErrNotEnoughMoney, Message: "not enough money to buy every requested unit", ServerMessage: true},
		3: noTradeLink,
		5: notEnoughMoney,
	})

	tableEditPrice = newTable("editprice", map[int]CodeEntry{
		1: internalError,
		2: unknownItem,
		4: {Kind: ErrIncorrectPrice, Message: "the price is out of the allowed range", ServerMessage: true},
		5: notEnoughMoney,
	})

	tableDeleteItem = newTable("deleteitem", map[int]CodeEntry{
		1: internalError,
		2: unknownItem,
	})

	tableGetDownOrders = newTable("getdownorders", map[int]CodeEntry{
		1: internalError,
		2: {Kind: ErrNoTradeItems, Message: "there are no orders to take down"},
	})

	tableItemsForExchange = newTable("itemsforexchange", map[int]CodeEntry{
		1: offerCreationFail,
		2: noTradeItems,
	})

	tableItemsForExchangeP2P = newTable("itemsforexchangep2p", map[int]CodeEntry{
		1: offerCreationFail,
		2: noTradeItems,
	})

	tableExchange = newTable("exchange", map[int]CodeEntry{
		1:  offerCreationFail,
		2:  noTradeLink,
		3:  tradeCreationFail,
		4:  noTradeItems,
		5:  {Kind: ErrExpiredTradeLink, Message: "the trade link has expired"},
		6:  {Kind: ErrTradeBlock, Message: "the account has a trade block"},
		7:  tradeCreationFail,
		8:  {Kind: ErrMissingRequiredItems, Message: "the account lacks items required to trade"},
		9:  {Kind: ErrHiddenInventory, Message: "the steam inventory is hidden"},
		10: tradeCreationFail,
		11: authenticator,
	})

	tableExchangeP2P = newTable("exchangep2p", map[int]CodeEntry{
		1: offerCreationFail,
		2: noTradeLink,
		3: tradeCreationFail,
		4: noTradeItems,
		5: {Kind: ErrNoSteamAPIKey, Message: "no steam api key is set"},
		6: tradeCreationFail,
		7: authenticator,
	})

	tableMinPrices = newTable("getminprices", map[int]CodeEntry{
		1: internalError,
		2: unknownItem,
	})

	tableItemInfo = newTable("iteminfo", map[int]CodeEntry{
		1: internalError,
		2: unknownItem,
	})

	tableOrderBook = newTable("orderbook", map[int]CodeEntry{
		1: internalError,
	})

	tableWebSocketToken = newTable("getwstoken", nil)

	tableInventory = newTable("getinventory", nil)

	tableBuyOrders = newTable("getbuyorders", map[int]CodeEntry{
		1: {Kind: ErrNoBuyOrders, Message: "there are no buy orders"},
	})

	tableDiscounts = newTable("getdiscounts", nil)

	tableSetTradeLink = func() CodeTable {
		t := newTable("settradelink", map[int]CodeEntry{
			1: {Kind: ErrSaveFail, Message: "failed to save the trade link"},
		})
		t.Absent = &CodeEntry{
			Kind:    ErrWrongTradeLink,
			Message: "the trade link belongs to another steam account or is already set",
		}
		return t
	}()

	tableRemoveTradeLink = newTable("removetradelink", map[int]CodeEntry{
		1: {Kind: ErrSaveFail, Message: "failed to remove the trade link"},
	})

	tableOperationsHistory = newTable("operationshistory", nil)
	tableUpdateInventory   = newTable("updateinventory", nil)
	tableInventoryState    = newTable("inventorystate", nil)
	tableAltWebSocket      = newTable("altws", nil)
)
