package steamtrader

// Steam app ids of the marketplace sections.
const (
	AppSteamGift = 753
	AppCSGO      = 730
	AppTF2       = 440
	AppDOTA2     = 570
)

// SupportedApps lists the sections the API currently serves, CS:GO is not
// among them.
var SupportedApps = []int{AppSteamGift, AppTF2, AppDOTA2}

func IsSupportedApp(appID int) bool {
	for _, id := range SupportedApps {
		if id == appID {
			return true
		}
	}
	return false
}

// Inventory item statuses.
const (
	StatusOnSale     = 0
	StatusToAccept   = 1
	StatusToTransfer = 2
	StatusPending    = 3
	StatusBuyOrder   = 4
)

// Operation history types.
const (
	OperationPurchase   = 1
	OperationSale       = 2
	OperationRefund     = 3
	OperationDeposit    = 4
	OperationWithdrawal = 5
	OperationPending    = 9
	OperationPenalty    = 10
)

// Buy variants accepted by Buy.
type BuyType int

const (
	// BuyCommodity buys the cheapest offer of a gid.
	BuyCommodity BuyType = 1
	// BuyNoCommission buys by the code after nc/ in a no-commission link.
	BuyNoCommission BuyType = 2
	// BuySellOffer buys one specific sell offer by its id.
	BuySellOffer BuyType = 3
)

// TF2 facets.
const (
	TF2QualityUnique     = 28
	TF2QualityStrange    = 50
	TF2QualityVintage    = 40
	TF2QualityGenuine    = 107
	TF2QualityUnusual    = 232
	TF2QualityHaunted    = 231
	TF2QualityCollectors = 263
	TF2QualityDecorated  = 228
	TF2QualitySelfMade   = 348
	TF2QualityStock      = 274

	TF2TypeAction       = 51
	TF2TypeCosmetic     = 39
	TF2TypeCraftItem    = 42
	TF2TypeCrate        = 43
	TF2TypeKillstreak   = 250
	TF2TypeMelee        = 44
	TF2TypePrimary      = 45
	TF2TypeSecondary    = 41
	TF2TypeStrangePart  = 226
	TF2TypeSupplyCrate  = 227
	TF2TypeTaunt        = 108
	TF2TypeTool         = 222
	TF2TypeUsableItem   = 48
	TF2TypeWarPaint     = 321
	TF2TypeUnusualifier = 303

	TF2ClassScout    = 30
	TF2ClassSniper   = 31
	TF2ClassSoldier  = 32
	TF2ClassDemoman  = 33
	TF2ClassMedic    = 34
	TF2ClassHeavy    = 35
	TF2ClassPyro     = 36
	TF2ClassSpy      = 37
	TF2ClassEngineer = 38

	TF2Craftable    = 277
	TF2NotCraftable = 278
)

// DOTA2 facets.
const (
	DOTA2RarityCommon    = 2
	DOTA2RarityUncommon  = 8
	DOTA2RarityRare      = 5
	DOTA2RarityMythical  = 9
	DOTA2RarityLegendary = 13
	DOTA2RarityImmortal  = 20
	DOTA2RarityArcana    = 11
	DOTA2RarityAncient   = 264
	DOTA2RaritySeasonal  = 308

	DOTA2QualityStandard    = 1
	DOTA2QualityInscribed   = 10
	DOTA2QualityGenuine     = 25
	DOTA2QualityElder       = 58
	DOTA2QualityUnusual     = 111
	DOTA2QualityAutographed = 219
	DOTA2QualityCorrupted   = 136
	DOTA2QualityCursed      = 147
	DOTA2QualityFrozen      = 126
	DOTA2QualityHeroic      = 185

	DOTA2TypeCourier       = 18
	DOTA2TypeWearable      = 6
	DOTA2TypeBundle        = 117
	DOTA2TypeTreasure      = 112
	DOTA2TypeTaunt         = 14
	DOTA2TypeLoadingScreen = 22
	DOTA2TypeWard          = 150
)

// SteamGift facets.
const (
	GiftRegionGlobal       = 73
	GiftRegionRussiaCIS    = 104
	GiftRegionAsia         = 251
	GiftRegionChina        = 319
	GiftRegionTurkey       = 260
	GiftRegionIndia        = 331
	GiftRegionMiddleEast   = 356
	GiftRegionSouthAfrica  = 366
	GiftRegionSouthAmerica = 265
	GiftRegionHongKong     = 300

	GiftGenreAction     = 74
	GiftGenreIndie      = 75
	GiftGenreRPG        = 89
	GiftGenreStrategy   = 98
	GiftGenreAdventure  = 97
	GiftGenreSimulation = 95
	GiftGenreCasual     = 93
	GiftGenreFreeToPlay = 105

	GiftModeSingleplayer = 83
	GiftModeMultiplayer  = 76
	GiftModeCoOp         = 84
	GiftModeTradingCards = 78

	GiftTradable    = 276
	GiftNotTradable = 281
)
