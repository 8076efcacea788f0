package steamtrader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyCodes(t *testing.T) {
	testCases := []struct {
		ep   endpoint
		code int
		kind ErrorKind
	}{
		{epBalance, 400, ErrBadRequest},
		{epBalance, 401, ErrUnauthorized},
		{epBalance, 429, ErrTooManyRequests},

		{epSell, 1, ErrOfferCreationFail},
		{epSell, 2, ErrUnknownItem},
		{epSell, 3, ErrNoTradeLink},
		{epSell, 4, ErrIncorrectPrice},
		{epSell, 5, ErrItemAlreadySold},
		{epSell, 6, ErrAuthenticator},

		{epBuy, 1, ErrOfferCreationFail},
		{epBuy, 3, ErrNoTradeLink},
		{epBuy, 4, ErrNoLongerExists},
		{epBuy, 5, ErrNotEnoughMoney},

		{epCreateBuyOrder, 1, ErrOfferCreationFail},
		{epCreateBuyOrder, 2, ErrUnknownItem},
		{epCreateBuyOrder, 3, ErrNoTradeLink},
		{epCreateBuyOrder, 4, ErrNoLongerExists},
		{epCreateBuyOrder, 5, ErrNotEnoughMoney},

		{epMultiBuy, 1, ErrOfferCreationFail},
		{epMultiBuy, 2, ErrNotEnoughMoney},
		{epMultiBuy, 3, ErrNoTradeLink},
		{epMultiBuy, 5, ErrNotEnoughMoney},

		{epEditPrice, 1, ErrInternal},
		{epEditPrice, 2, ErrUnknownItem},
		{epEditPrice, 4, ErrIncorrectPrice},
		{epEditPrice, 5, ErrNotEnoughMoney},

		{epDeleteItem, 1, ErrInternal},
		{epDeleteItem, 2, ErrUnknownItem},

		{epGetDownOrders, 1, ErrInternal},
		{epGetDownOrders, 2, ErrNoTradeItems},

		{epItemsForExchange, 1, ErrOfferCreationFail},
		{epItemsForExchange, 2, ErrNoTradeItems},
		{epItemsForExchangeP2P, 1, ErrOfferCreationFail},
		{epItemsForExchangeP2P, 2, ErrNoTradeItems},

		{epExchange, 1, ErrOfferCreationFail},
		{epExchange, 2, ErrNoTradeLink},
		{epExchange, 3, ErrTradeCreationFail},
		{epExchange, 4, ErrNoTradeItems},
		{epExchange, 5, ErrExpiredTradeLink},
		{epExchange, 6, ErrTradeBlock},
		{epExchange, 7, ErrTradeCreationFail},
		{epExchange, 8, ErrMissingRequiredItems},
		{epExchange, 9, ErrHiddenInventory},
		{epExchange, 10, ErrTradeCreationFail},
		{epExchange, 11, ErrAuthenticator},

		{epExchangeP2P, 1, ErrOfferCreationFail},
		{epExchangeP2P, 2, ErrNoTradeLink},
		{epExchangeP2P, 3, ErrTradeCreationFail},
		{epExchangeP2P, 4, ErrNoTradeItems},
		{epExchangeP2P, 5, ErrNoSteamAPIKey},
		{epExchangeP2P, 6, ErrTradeCreationFail},
		{epExchangeP2P, 7, ErrAuthenticator},

		{epMinPrices, 1, ErrInternal},
		{epMinPrices, 2, ErrUnknownItem},
		{epItemInfo, 1, ErrInternal},
		{epItemInfo, 2, ErrUnknownItem},
		{epOrderBook, 1, ErrInternal},

		{epBuyOrders, 1, ErrNoBuyOrders},

		{epSetTradeLink, 1, ErrSaveFail},
		{epRemoveTradeLink, 1, ErrSaveFail},

		{epAltWebSocket, 401, ErrUnauthorized},
		{epWebSocketToken, 429, ErrTooManyRequests},
	}

	for _, test := range testCases {
		t.Run(test.ep.name(), func(t *testing.T) {
			outcome, err := Classify(Envelope{HasCode: true, Code: test.code}, test.ep.table, test.ep.policy)
			require.Equal(t, Failed, outcome)
			require.ErrorIs(t, err, test.kind)

			var domain *DomainError
			require.ErrorAs(t, err, &domain)
			require.Equal(t, test.code, domain.Code)
			require.Equal(t, test.ep.name(), domain.Endpoint)
			require.NotEmpty(t, domain.Message)
		})
	}
}

func TestClassifyUnlisted(t *testing.T) {
	testCases := []struct {
		ep   endpoint
		code int
	}{
		{epBalance, 1},
		{epSell, 7},
		{epBuy, 2},
		{epMultiBuy, 4},
		{epOrderBook, 2},
		{epInventory, 1},
		{epRemoveTradeLink, 2},
		{epSetTradeLink, 2},
		{epSetTradeLink, 17},
		{epExchange, 12},
	}

	for _, test := range testCases {
		t.Run(test.ep.name(), func(t *testing.T) {
			outcome, err := Classify(Envelope{HasCode: true, Code: test.code, Error: "boom"}, test.ep.table, test.ep.policy)
			require.Equal(t, Failed, outcome)

			var unclassified *UnclassifiedError
			require.ErrorAs(t, err, &unclassified)
			require.True(t, unclassified.HasCode)
			require.Equal(t, test.code, unclassified.Code)
			require.Equal(t, "boom", unclassified.Message)

			var domain *DomainError
			require.False(t, errors.As(err, &domain))
		})
	}
}

func TestClassifyAbsentCode(t *testing.T) {
	testCases := []struct {
		ep      endpoint
		outcome Outcome
	}{
		{epWebSocketToken, Benign},
		{epAltWebSocket, Benign},
		{epBalance, Failed},
		{epSell, Failed},
		{epInventory, Failed},
		{epRemoveTradeLink, Failed},
	}

	for _, test := range testCases {
		t.Run(test.ep.name(), func(t *testing.T) {
			outcome, err := Classify(Envelope{Error: "nope"}, test.ep.table, test.ep.policy)
			require.Equal(t, test.outcome, outcome)
			if test.outcome == Benign {
				require.NoError(t, err)
				return
			}
			var unclassified *UnclassifiedError
			require.ErrorAs(t, err, &unclassified)
			require.False(t, unclassified.HasCode)
			require.Equal(t, "nope", unclassified.Message)
		})
	}
}

func TestClassifySuccess(t *testing.T) {
	outcome, err := Classify(Envelope{Success: true, HasCode: true, Code: 2}, tableSell, AbsentCodeFatal)
	require.Equal(t, Proceed, outcome)
	require.NoError(t, err)
}

func TestClassifyServerMessage(t *testing.T) {
	_, err := Classify(Envelope{HasCode: true, Code: 4, Error: "price must be at least 0.5"}, tableSell, AbsentCodeFatal)
	var domain *DomainError
	require.ErrorAs(t, err, &domain)
	require.Equal(t, "price must be at least 0.5", domain.Message)

	_, err = Classify(Envelope{HasCode: true, Code: 4}, tableSell, AbsentCodeFatal)
	require.ErrorAs(t, err, &domain)
	require.Equal(t, tableSell.Codes[4].Message, domain.Message)

	// entries without the flag keep their own text
	_, err = Classify(Envelope{HasCode: true, Code: 5, Error: "whatever"}, tableSell, AbsentCodeFatal)
	require.ErrorAs(t, err, &domain)
	require.Equal(t, tableSell.Codes[5].Message, domain.Message)
}

func TestEndpointOverridesCommonCode(t *testing.T) {
	table := newTable("test", map[int]CodeEntry{
		401: {Kind: ErrNoSteamAPIKey, Message: "overridden"},
	})
	_, err := Classify(Envelope{HasCode: true, Code: 401}, table, AbsentCodeFatal)
	require.ErrorIs(t, err, ErrNoSteamAPIKey)

	_, err = Classify(Envelope{HasCode: true, Code: 401}, tableBalance, AbsentCodeFatal)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClassifyAbsentCodeEntry(t *testing.T) {
	outcome, err := Classify(Envelope{}, tableSetTradeLink, epSetTradeLink.policy)
	require.Equal(t, Failed, outcome)
	require.ErrorIs(t, err, ErrWrongTradeLink)

	var domain *DomainError
	require.ErrorAs(t, err, &domain)
	require.Equal(t, "settradelink", domain.Endpoint)
	require.Zero(t, domain.Code)

	// codes the table does not list stay unclassified
	_, err = Classify(Envelope{HasCode: true, Code: 7}, tableSetTradeLink, epSetTradeLink.policy)
	var unclassified *UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	require.False(t, errors.Is(err, ErrWrongTradeLink))
}
