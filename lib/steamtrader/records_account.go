package steamtrader

import "steamtrader/lib/schema"

type balanceReply struct {
	Balance float64
}

var balanceSchema = &schema.Schema[balanceReply]{
	Name:   "Balance",
	Ignore: []string{"success"},
	Fields: []schema.Field[balanceReply]{
		schema.Float("balance", func(r *balanceReply, v float64) { r.Balance = v }),
	},
}

// WebSocketToken authorizes a connection to the notification websocket.
type WebSocketToken struct {
	SteamID string
	Time    int
	Hash    string
}

var webSocketTokenSchema = &schema.Schema[WebSocketToken]{
	Name:   "WebSocketToken",
	Ignore: []string{"success"},
	Fields: []schema.Field[WebSocketToken]{
		schema.String("steam_id", func(r *WebSocketToken, v string) { r.SteamID = v }),
		schema.Int("time", func(r *WebSocketToken, v int) { r.Time = v }),
		schema.String("hash", func(r *WebSocketToken, v string) { r.Hash = v }),
	},
}

// InventoryItem is one entry of an inventory. Which of the nullable fields
// are set depends on Status.
type InventoryItem struct {
	ID        *int
	AssetID   *int
	GID       int
	ItemID    int
	Price     *float64
	Currency  *int
	Timer     *int
	Type      *int
	Status    int
	Position  *int
	NC        *int
	Percent   *float64
	SteamItem bool
	NM        bool
}

var inventoryItemSchema = &schema.Schema[InventoryItem]{
	Name: "InventoryItem",
	Fields: []schema.Field[InventoryItem]{
		schema.Int("id", func(r *InventoryItem, v int) { r.ID = &v }).Optional(),
		schema.Int("assetid", func(r *InventoryItem, v int) { r.AssetID = &v }).Optional(),
		schema.Int("gid", func(r *InventoryItem, v int) { r.GID = v }),
		schema.Int("itemid", func(r *InventoryItem, v int) { r.ItemID = v }),
		schema.Float("price", func(r *InventoryItem, v float64) { r.Price = &v }).Optional(),
		schema.Int("currency", func(r *InventoryItem, v int) { r.Currency = &v }).Optional(),
		schema.Int("timer", func(r *InventoryItem, v int) { r.Timer = &v }).Optional(),
		schema.Int("type", func(r *InventoryItem, v int) { r.Type = &v }).Optional(),
		schema.Int("status", func(r *InventoryItem, v int) { r.Status = v }),
		schema.Int("position", func(r *InventoryItem, v int) { r.Position = &v }).Optional(),
		schema.Int("nc", func(r *InventoryItem, v int) { r.NC = &v }).Optional(),
		schema.Float("percent", func(r *InventoryItem, v float64) { r.Percent = &v }).Optional(),
		schema.Bool("steam_item", func(r *InventoryItem, v bool) { r.SteamItem = v }),
		schema.Bool("nm", func(r *InventoryItem, v bool) { r.NM = v }),
	},
}

type Inventory struct {
	Success bool
	Count   int
	// Game is the app id the inventory belongs to.
	Game       int
	LastUpdate int
	Items      []InventoryItem
}

var inventorySchema = &schema.Schema[Inventory]{
	Name: "Inventory",
	Fields: []schema.Field[Inventory]{
		schema.Bool("success", func(r *Inventory, v bool) { r.Success = v }),
		schema.Int("count", func(r *Inventory, v int) { r.Count = v }),
		schema.Int("game", func(r *Inventory, v int) { r.Game = v }),
		schema.Int("last_update", func(r *Inventory, v int) { r.LastUpdate = v }),
		schema.Seq("items", inventoryItemSchema, func(r *Inventory, v []InventoryItem) { r.Items = v }),
	},
}

type BuyOrder struct {
	ID       int
	GID      int
	GameID   int
	HashName string
	Date     int
	Price    float64
	Currency int
	Position int
}

var buyOrderSchema = &schema.Schema[BuyOrder]{
	Name: "BuyOrder",
	Fields: []schema.Field[BuyOrder]{
		schema.Int("id", func(r *BuyOrder, v int) { r.ID = v }),
		schema.Int("gid", func(r *BuyOrder, v int) { r.GID = v }),
		schema.Int("gameid", func(r *BuyOrder, v int) { r.GameID = v }),
		schema.String("hash_name", func(r *BuyOrder, v string) { r.HashName = v }),
		schema.Int("date", func(r *BuyOrder, v int) { r.Date = v }),
		schema.Float("price", func(r *BuyOrder, v float64) { r.Price = v }),
		schema.Int("currency", func(r *BuyOrder, v int) { r.Currency = v }),
		schema.Int("position", func(r *BuyOrder, v int) { r.Position = v }),
	},
}

type BuyOrders struct {
	Success bool
	Data    []BuyOrder
}

var buyOrdersSchema = &schema.Schema[BuyOrders]{
	Name: "BuyOrders",
	Fields: []schema.Field[BuyOrders]{
		schema.Bool("success", func(r *BuyOrders, v bool) { r.Success = v }),
		schema.Seq("data", buyOrderSchema, func(r *BuyOrders, v []BuyOrder) { r.Data = v }),
	},
}

type OperationsHistoryItem struct {
	ID       int
	Name     string
	Type     int
	Amount   float64
	Currency int
	Date     int
}

var operationsHistoryItemSchema = &schema.Schema[OperationsHistoryItem]{
	Name: "OperationsHistoryItem",
	Fields: []schema.Field[OperationsHistoryItem]{
		schema.Int("id", func(r *OperationsHistoryItem, v int) { r.ID = v }),
		schema.String("name", func(r *OperationsHistoryItem, v string) { r.Name = v }),
		schema.Int("type", func(r *OperationsHistoryItem, v int) { r.Type = v }),
		schema.Float("amount", func(r *OperationsHistoryItem, v float64) { r.Amount = v }),
		schema.Int("currency", func(r *OperationsHistoryItem, v int) { r.Currency = v }),
		schema.Int("date", func(r *OperationsHistoryItem, v int) { r.Date = v }),
	},
}

type OperationsHistory struct {
	Success bool
	Data    []OperationsHistoryItem
}

var operationsHistorySchema = &schema.Schema[OperationsHistory]{
	Name: "OperationsHistory",
	Fields: []schema.Field[OperationsHistory]{
		schema.Bool("success", func(r *OperationsHistory, v bool) { r.Success = v }),
		schema.Seq("data", operationsHistoryItemSchema, func(r *OperationsHistory, v []OperationsHistoryItem) { r.Data = v }),
	},
}

type InventoryState struct {
	Success      bool
	UpdatingNow  bool
	LastUpdate   int
	ItemsInCache int
}

var inventoryStateSchema = &schema.Schema[InventoryState]{
	Name: "InventoryState",
	Fields: []schema.Field[InventoryState]{
		schema.Bool("success", func(r *InventoryState, v bool) { r.Success = v }),
		schema.Bool("updating_now", func(r *InventoryState, v bool) { r.UpdatingNow = v }).From("updatingNow"),
		schema.Int("last_update", func(r *InventoryState, v int) { r.LastUpdate = v }).From("lastUpdate"),
		schema.Int("items_in_cache", func(r *InventoryState, v int) { r.ItemsInCache = v }).From("itemsInCache"),
	},
}

type AltWebSocketMessage struct {
	Type int
	Data string
}

var altWebSocketMessageSchema = &schema.Schema[AltWebSocketMessage]{
	Name: "AltWebSocketMessage",
	Fields: []schema.Field[AltWebSocketMessage]{
		schema.Int("type", func(r *AltWebSocketMessage, v int) { r.Type = v }),
		schema.String("data", func(r *AltWebSocketMessage, v string) { r.Data = v }),
	},
}

// AltWebSocket is the reply of the long-poll fallback for the websocket.
type AltWebSocket struct {
	Success  bool
	Messages []AltWebSocketMessage
}

var altWebSocketSchema = &schema.Schema[AltWebSocket]{
	Name: "AltWebSocket",
	Fields: []schema.Field[AltWebSocket]{
		schema.Bool("success", func(r *AltWebSocket, v bool) { r.Success = v }),
		schema.Seq("messages", altWebSocketMessageSchema, func(r *AltWebSocket, v []AltWebSocketMessage) { r.Messages = v }),
	},
}

// emptyReply decodes replies whose payload carries nothing beyond the
// envelope.
type emptyReply struct{}

var emptySchema = &schema.Schema[emptyReply]{
	Name:   "Empty",
	Ignore: []string{"success"},
}
