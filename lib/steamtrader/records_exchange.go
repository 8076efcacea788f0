package steamtrader

import "steamtrader/lib/schema"

type ItemForExchange struct {
	ID         int
	AssetID    int
	GameID     int
	ContextID  int
	ClassID    int
	InstanceID int
	GID        int
	ItemID     int
	Price      float64
	Currency   int
	Timer      int
	AssetType  int
	Percent    float64
	SteamItem  bool
}

var itemForExchangeSchema = &schema.Schema[ItemForExchange]{
	Name: "ItemForExchange",
	Fields: []schema.Field[ItemForExchange]{
		schema.Int("id", func(r *ItemForExchange, v int) { r.ID = v }),
		schema.Int("assetid", func(r *ItemForExchange, v int) { r.AssetID = v }),
		schema.Int("gameid", func(r *ItemForExchange, v int) { r.GameID = v }),
		schema.Int("contextid", func(r *ItemForExchange, v int) { r.ContextID = v }),
		schema.Int("classid", func(r *ItemForExchange, v int) { r.ClassID = v }),
		schema.Int("instanceid", func(r *ItemForExchange, v int) { r.InstanceID = v }),
		schema.Int("gid", func(r *ItemForExchange, v int) { r.GID = v }),
		schema.Int("itemid", func(r *ItemForExchange, v int) { r.ItemID = v }),
		schema.Float("price", func(r *ItemForExchange, v float64) { r.Price = v }),
		schema.Int("currency", func(r *ItemForExchange, v int) { r.Currency = v }),
		schema.Int("timer", func(r *ItemForExchange, v int) { r.Timer = v }),
		schema.Int("asset_type", func(r *ItemForExchange, v int) { r.AssetType = v }),
		schema.Float("percent", func(r *ItemForExchange, v float64) { r.Percent = v }),
		schema.Bool("steam_item", func(r *ItemForExchange, v bool) { r.SteamItem = v }),
	},
}

type TradeDescription struct {
	Type        string
	Description string
	HashName    string
	Name        string
	ImageSmall  string
	Color       string
	Outline     string
	GameID      int
}

var tradeDescriptionSchema = &schema.Schema[TradeDescription]{
	Name: "TradeDescription",
	Fields: []schema.Field[TradeDescription]{
		schema.String("type", func(r *TradeDescription, v string) { r.Type = v }),
		schema.String("description", func(r *TradeDescription, v string) { r.Description = v }),
		schema.String("hash_name", func(r *TradeDescription, v string) { r.HashName = v }),
		schema.String("name", func(r *TradeDescription, v string) { r.Name = v }),
		schema.String("image_small", func(r *TradeDescription, v string) { r.ImageSmall = v }),
		schema.String("color", func(r *TradeDescription, v string) { r.Color = v }),
		schema.String("outline", func(r *TradeDescription, v string) { r.Outline = v }),
		schema.Int("gameid", func(r *TradeDescription, v int) { r.GameID = v }),
	},
}

// ItemsForExchange lists the items waiting for a trade. Descriptions is
// keyed by item id.
type ItemsForExchange struct {
	Success      bool
	Items        []ItemForExchange
	Descriptions map[int]TradeDescription
}

var itemsForExchangeSchema = &schema.Schema[ItemsForExchange]{
	Name: "ItemsForExchange",
	Fields: []schema.Field[ItemsForExchange]{
		schema.Bool("success", func(r *ItemsForExchange, v bool) { r.Success = v }),
		schema.Seq("items", itemForExchangeSchema, func(r *ItemsForExchange, v []ItemForExchange) { r.Items = v }),
		schema.IntMap("descriptions", tradeDescriptionSchema, func(r *ItemsForExchange, v map[int]TradeDescription) { r.Descriptions = v }),
	},
}

type ExchangeItem struct {
	ID         int
	AssetID    int
	GameID     int
	ContextID  int
	ClassID    int
	InstanceID int
	Type       int
	ItemID     int
	GID        int
	Price      float64
	Currency   int
	Percent    float64
}

var exchangeItemSchema = &schema.Schema[ExchangeItem]{
	Name: "ExchangeItem",
	Fields: []schema.Field[ExchangeItem]{
		schema.Int("id", func(r *ExchangeItem, v int) { r.ID = v }),
		schema.Int("assetid", func(r *ExchangeItem, v int) { r.AssetID = v }),
		schema.Int("gameid", func(r *ExchangeItem, v int) { r.GameID = v }),
		schema.Int("contextid", func(r *ExchangeItem, v int) { r.ContextID = v }),
		schema.Int("classid", func(r *ExchangeItem, v int) { r.ClassID = v }),
		schema.Int("instanceid", func(r *ExchangeItem, v int) { r.InstanceID = v }),
		schema.Int("type", func(r *ExchangeItem, v int) { r.Type = v }),
		schema.Int("itemid", func(r *ExchangeItem, v int) { r.ItemID = v }),
		schema.Int("gid", func(r *ExchangeItem, v int) { r.GID = v }),
		schema.Float("price", func(r *ExchangeItem, v float64) { r.Price = v }),
		schema.Int("currency", func(r *ExchangeItem, v int) { r.Currency = v }),
		schema.Float("percent", func(r *ExchangeItem, v float64) { r.Percent = v }),
	},
}

// ExchangeResult describes the trade offer a bot sent for the pending items.
type ExchangeResult struct {
	Success    bool
	OfferID    int
	Code       string
	BotSteamID int
	BotNick    string
	Items      []ExchangeItem
}

var exchangeResultSchema = &schema.Schema[ExchangeResult]{
	Name: "ExchangeResult",
	Fields: []schema.Field[ExchangeResult]{
		schema.Bool("success", func(r *ExchangeResult, v bool) { r.Success = v }),
		schema.Int("offer_id", func(r *ExchangeResult, v int) { r.OfferID = v }).From("offerId"),
		schema.String("code", func(r *ExchangeResult, v string) { r.Code = v }),
		schema.Int("bot_steamid", func(r *ExchangeResult, v int) { r.BotSteamID = v }).From("botSteamId"),
		schema.String("bot_nick", func(r *ExchangeResult, v string) { r.BotNick = v }).From("botNick"),
		schema.Seq("items", exchangeItemSchema, func(r *ExchangeResult, v []ExchangeItem) { r.Items = v }),
	},
}

// P2PTradeOffer holds the form fields needed to create a steam trade offer
// directly with the counterparty.
type P2PTradeOffer struct {
	SessionID              string
	ServerID               int
	Partner                string
	TradeOfferMessage      string
	JSONTradeOffer         string
	Captcha                string
	TradeOfferCreateParams string
}

var p2pTradeOfferSchema = &schema.Schema[P2PTradeOffer]{
	Name: "P2PTradeOffer",
	Fields: []schema.Field[P2PTradeOffer]{
		schema.String("sessionid", func(r *P2PTradeOffer, v string) { r.SessionID = v }),
		schema.Int("serverid", func(r *P2PTradeOffer, v int) { r.ServerID = v }),
		schema.String("partner", func(r *P2PTradeOffer, v string) { r.Partner = v }),
		schema.String("tradeoffermessage", func(r *P2PTradeOffer, v string) { r.TradeOfferMessage = v }),
		schema.String("json_tradeoffer", func(r *P2PTradeOffer, v string) { r.JSONTradeOffer = v }),
		schema.String("captcha", func(r *P2PTradeOffer, v string) { r.Captcha = v }),
		schema.String("trade_offer_create_params", func(r *P2PTradeOffer, v string) { r.TradeOfferCreateParams = v }),
	},
}

type P2PSendObject struct {
	TradeLink  string
	TradeOffer P2PTradeOffer
}

var p2pSendObjectSchema = &schema.Schema[P2PSendObject]{
	Name: "P2PSendObject",
	Fields: []schema.Field[P2PSendObject]{
		schema.String("trade_link", func(r *P2PSendObject, v string) { r.TradeLink = v }).From("tradeLink"),
		schema.Nested("trade_offer", p2pTradeOfferSchema, func(r *P2PSendObject, v P2PTradeOffer) { r.TradeOffer = v }).From("tradeOffer"),
	},
}

type P2PReceiveObject struct {
	OfferID        int
	Code           string
	Items          []ExchangeItem
	PartnerSteamID int
}

var p2pReceiveObjectSchema = &schema.Schema[P2PReceiveObject]{
	Name: "P2PReceiveObject",
	Fields: []schema.Field[P2PReceiveObject]{
		schema.Int("offer_id", func(r *P2PReceiveObject, v int) { r.OfferID = v }).From("offerId"),
		schema.String("code", func(r *P2PReceiveObject, v string) { r.Code = v }),
		schema.Seq("items", exchangeItemSchema, func(r *P2PReceiveObject, v []ExchangeItem) { r.Items = v }),
		schema.Int("partner_steamid", func(r *P2PReceiveObject, v int) { r.PartnerSteamID = v }).From("partnerSteamId"),
	},
}

type P2PConfirmObject struct {
	OfferID        int
	Code           string
	PartnerSteamID int
}

var p2pConfirmObjectSchema = &schema.Schema[P2PConfirmObject]{
	Name: "P2PConfirmObject",
	Fields: []schema.Field[P2PConfirmObject]{
		schema.Int("offer_id", func(r *P2PConfirmObject, v int) { r.OfferID = v }).From("offerId"),
		schema.String("code", func(r *P2PConfirmObject, v string) { r.Code = v }),
		schema.Int("partner_steamid", func(r *P2PConfirmObject, v int) { r.PartnerSteamID = v }).From("partnerSteamId"),
	},
}

type ExchangeP2PResult struct {
	Success bool
	Send    []P2PSendObject
	Receive []P2PReceiveObject
	Confirm []P2PConfirmObject
	// Cancel lists the ids of trade offers to cancel.
	Cancel []string
}

var exchangeP2PResultSchema = &schema.Schema[ExchangeP2PResult]{
	Name: "ExchangeP2PResult",
	Fields: []schema.Field[ExchangeP2PResult]{
		schema.Bool("success", func(r *ExchangeP2PResult, v bool) { r.Success = v }),
		schema.Seq("send", p2pSendObjectSchema, func(r *ExchangeP2PResult, v []P2PSendObject) { r.Send = v }),
		schema.Seq("receive", p2pReceiveObjectSchema, func(r *ExchangeP2PResult, v []P2PReceiveObject) { r.Receive = v }),
		schema.Seq("confirm", p2pConfirmObjectSchema, func(r *ExchangeP2PResult, v []P2PConfirmObject) { r.Confirm = v }),
		schema.Strings("cancel", func(r *ExchangeP2PResult, v []string) { r.Cancel = v }),
	},
}
