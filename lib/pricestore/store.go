package pricestore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"steamtrader/lib/pricestore/db"
	"steamtrader/lib/steamtrader"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("steamtrader/pricestore")

// Snapshot is the price of one item group at one moment.
type Snapshot struct {
	GID         int
	AppID       int
	Name        string
	MarketPrice *float64
	BuyPrice    *float64
	SteamPrice  *float64
	SellCount   int
	BuyCount    int
	RecordedAt  time.Time
}

// FromMinPrices builds a snapshot out of a min prices reply.
func FromMinPrices(appID, gid int, name string, prices *steamtrader.MinPrices, at time.Time) Snapshot {
	return Snapshot{
		GID:         gid,
		AppID:       appID,
		Name:        name,
		MarketPrice: prices.MarketPrice,
		BuyPrice:    prices.BuyPrice,
		SteamPrice:  prices.SteamPrice,
		SellCount:   prices.CountSellOffers,
		BuyCount:    prices.CountBuyOffers,
		RecordedAt:  at,
	}
}

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

// NewStore creates the tables it needs if they do not exist yet.
func NewStore(ctx context.Context, database *sql.DB) (Store, error) {
	_, err := database.ExecContext(ctx, db.Schema)
	if err != nil {
		return Store{}, err
	}
	return Store{
		db:  database,
		qry: db.New(database),
	}, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

// Push stores every snapshot or none of them.
func (s Store) Push(ctx context.Context, snapshots []Snapshot) error {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, snap := range snapshots {
		err := txqry.CreatePriceSnapshot(ctx, db.CreatePriceSnapshotParams{
			Gid:         int64(snap.GID),
			AppID:       int64(snap.AppID),
			Name:        snap.Name,
			MarketPrice: nullFloat(snap.MarketPrice),
			BuyPrice:    nullFloat(snap.BuyPrice),
			SteamPrice:  nullFloat(snap.SteamPrice),
			SellCount:   int64(snap.SellCount),
			BuyCount:    int64(snap.BuyCount),
			RecordedAt:  snap.RecordedAt.Unix(),
		})
		if err != nil {
			span.RecordError(err)
			return err
		}
	}
	return tx.Commit()
}

func fromRow(row db.PriceSnapshot) Snapshot {
	return Snapshot{
		GID:         int(row.Gid),
		AppID:       int(row.AppID),
		Name:        row.Name,
		MarketPrice: floatPtr(row.MarketPrice),
		BuyPrice:    floatPtr(row.BuyPrice),
		SteamPrice:  floatPtr(row.SteamPrice),
		SellCount:   int(row.SellCount),
		BuyCount:    int(row.BuyCount),
		RecordedAt:  time.Unix(row.RecordedAt, 0),
	}
}

// Latest returns the newest snapshot of gid, ok is false when there is none.
func (s Store) Latest(ctx context.Context, gid int) (snap Snapshot, ok bool, err error) {
	row, err := s.qry.GetLatestPriceSnapshot(ctx, int64(gid))
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	return fromRow(row), true, nil
}

// History returns up to limit snapshots of gid, newest first.
func (s Store) History(ctx context.Context, gid, limit int) ([]Snapshot, error) {
	rows, err := s.qry.GetPriceSnapshots(ctx, db.GetPriceSnapshotsParams{
		Gid:   int64(gid),
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]Snapshot, len(rows))
	for i, r := range rows {
		out[i] = fromRow(r)
	}
	return out, nil
}

// Prune drops snapshots recorded before the given time and returns how many
// were removed.
func (s Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	return s.qry.DeletePriceSnapshotsBefore(ctx, before.Unix())
}
