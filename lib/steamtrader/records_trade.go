package steamtrader

import "steamtrader/lib/schema"

// SellResult is the reply to putting an inventory item up for sale.
type SellResult struct {
	Success     bool
	ID          int
	Position    int
	FastExecute bool
	NC          string
	Price       *float64
	Commission  *float64
}

var sellResultSchema = &schema.Schema[SellResult]{
	Name: "SellResult",
	Fields: []schema.Field[SellResult]{
		schema.Bool("success", func(r *SellResult, v bool) { r.Success = v }),
		schema.Int("id", func(r *SellResult, v int) { r.ID = v }),
		schema.Int("position", func(r *SellResult, v int) { r.Position = v }),
		schema.Bool("fast_execute", func(r *SellResult, v bool) { r.FastExecute = v }),
		schema.String("nc", func(r *SellResult, v string) { r.NC = v }),
		schema.Float("price", func(r *SellResult, v float64) { r.Price = &v }).Optional(),
		schema.Float("commission", func(r *SellResult, v float64) { r.Commission = &v }).Optional(),
	},
}

type BuyResult struct {
	Success  bool
	ID       int
	GID      int
	ItemID   int
	Price    float64
	NewPrice float64
	Discount float64
}

var buyResultSchema = &schema.Schema[BuyResult]{
	Name: "BuyResult",
	Fields: []schema.Field[BuyResult]{
		schema.Bool("success", func(r *BuyResult, v bool) { r.Success = v }),
		schema.Int("id", func(r *BuyResult, v int) { r.ID = v }),
		schema.Int("gid", func(r *BuyResult, v int) { r.GID = v }),
		schema.Int("itemid", func(r *BuyResult, v int) { r.ItemID = v }),
		schema.Float("price", func(r *BuyResult, v float64) { r.Price = v }),
		schema.Float("new_price", func(r *BuyResult, v float64) { r.NewPrice = v }),
		schema.Float("discount", func(r *BuyResult, v float64) { r.Discount = v }),
	},
}

type BuyOrderResult struct {
	Success  bool
	Executed int
	Placed   int
}

var buyOrderResultSchema = &schema.Schema[BuyOrderResult]{
	Name:   "BuyOrderResult",
	Ignore: []string{"orders"},
	Fields: []schema.Field[BuyOrderResult]{
		schema.Bool("success", func(r *BuyOrderResult, v bool) { r.Success = v }),
		schema.Int("executed", func(r *BuyOrderResult, v int) { r.Executed = v }),
		schema.Int("placed", func(r *BuyOrderResult, v int) { r.Placed = v }),
	},
}

type MultiBuyOrder struct {
	ID     int
	ItemID int
	Price  float64
}

var multiBuyOrderSchema = &schema.Schema[MultiBuyOrder]{
	Name: "MultiBuyOrder",
	Fields: []schema.Field[MultiBuyOrder]{
		schema.Int("id", func(r *MultiBuyOrder, v int) { r.ID = v }),
		schema.Int("itemid", func(r *MultiBuyOrder, v int) { r.ItemID = v }),
		schema.Float("price", func(r *MultiBuyOrder, v float64) { r.Price = v }),
	},
}

// MultiBuyResult is only returned when every requested unit was bought, a
// partial purchase is reported as ErrNotEnoughMoney.
type MultiBuyResult struct {
	Success bool
	Balance float64
	Spent   float64
	Orders  []MultiBuyOrder
}

var multiBuyResultSchema = &schema.Schema[MultiBuyResult]{
	Name: "MultiBuyResult",
	Fields: []schema.Field[MultiBuyResult]{
		schema.Bool("success", func(r *MultiBuyResult, v bool) { r.Success = v }),
		schema.Float("balance", func(r *MultiBuyResult, v float64) { r.Balance = v }),
		schema.Float("spent", func(r *MultiBuyResult, v float64) { r.Spent = v }),
		schema.Seq("orders", multiBuyOrderSchema, func(r *MultiBuyResult, v []MultiBuyOrder) { r.Orders = v }),
	},
}

type EditPriceResult struct {
	Success     bool
	Type        int
	Position    int
	FastExecute bool
	NewID       *int
	Price       *float64
	Percent     *float64
}

var editPriceResultSchema = &schema.Schema[EditPriceResult]{
	Name: "EditPriceResult",
	Fields: []schema.Field[EditPriceResult]{
		schema.Bool("success", func(r *EditPriceResult, v bool) { r.Success = v }),
		schema.Int("type", func(r *EditPriceResult, v int) { r.Type = v }),
		schema.Int("position", func(r *EditPriceResult, v int) { r.Position = v }),
		schema.Bool("fast_execute", func(r *EditPriceResult, v bool) { r.FastExecute = v }),
		schema.Int("new_id", func(r *EditPriceResult, v int) { r.NewID = &v }).Optional(),
		schema.Float("price", func(r *EditPriceResult, v float64) { r.Price = &v }).Optional(),
		schema.Float("percent", func(r *EditPriceResult, v float64) { r.Percent = &v }).Optional(),
	},
}

type DeleteItemResult struct {
	Success    bool
	HasEx      bool
	HasBotEx   bool
	HasP2PEx   bool
	TotalFines int
	FineDate   *int
}

var deleteItemResultSchema = &schema.Schema[DeleteItemResult]{
	Name: "DeleteItemResult",
	Fields: []schema.Field[DeleteItemResult]{
		schema.Bool("success", func(r *DeleteItemResult, v bool) { r.Success = v }),
		schema.Bool("has_ex", func(r *DeleteItemResult, v bool) { r.HasEx = v }),
		schema.Bool("has_bot_ex", func(r *DeleteItemResult, v bool) { r.HasBotEx = v }),
		schema.Bool("has_p2p_ex", func(r *DeleteItemResult, v bool) { r.HasP2PEx = v }),
		schema.Int("total_fines", func(r *DeleteItemResult, v int) { r.TotalFines = v }),
		schema.Int("fine_date", func(r *DeleteItemResult, v int) { r.FineDate = &v }).Optional(),
	},
}

type GetDownOrdersResult struct {
	Success bool
	Count   int
	IDs     []int
}

var getDownOrdersResultSchema = &schema.Schema[GetDownOrdersResult]{
	Name: "GetDownOrdersResult",
	Fields: []schema.Field[GetDownOrdersResult]{
		schema.Bool("success", func(r *GetDownOrdersResult, v bool) { r.Success = v }),
		schema.Int("count", func(r *GetDownOrdersResult, v int) { r.Count = v }),
		schema.Ints("ids", func(r *GetDownOrdersResult, v []int) { r.IDs = v }),
	},
}
