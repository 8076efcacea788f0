package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type PriceSnapshot struct {
	ID          int64
	Gid         int64
	AppID       int64
	Name        string
	MarketPrice sql.NullFloat64
	BuyPrice    sql.NullFloat64
	SteamPrice  sql.NullFloat64
	SellCount   int64
	BuyCount    int64
	RecordedAt  int64
}

const createPriceSnapshot = `insert into price_snapshot(
    gid, app_id, name, market_price, buy_price, steam_price,
    sell_count, buy_count, recorded_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreatePriceSnapshotParams struct {
	Gid         int64
	AppID       int64
	Name        string
	MarketPrice sql.NullFloat64
	BuyPrice    sql.NullFloat64
	SteamPrice  sql.NullFloat64
	SellCount   int64
	BuyCount    int64
	RecordedAt  int64
}

func (q *Queries) CreatePriceSnapshot(ctx context.Context, arg CreatePriceSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, createPriceSnapshot,
		arg.Gid,
		arg.AppID,
		arg.Name,
		arg.MarketPrice,
		arg.BuyPrice,
		arg.SteamPrice,
		arg.SellCount,
		arg.BuyCount,
		arg.RecordedAt,
	)
	return err
}

const selectColumns = `id, gid, app_id, name, market_price, buy_price, steam_price,
    sell_count, buy_count, recorded_at`

func scanSnapshot(row interface{ Scan(...any) error }) (PriceSnapshot, error) {
	var i PriceSnapshot
	err := row.Scan(
		&i.ID,
		&i.Gid,
		&i.AppID,
		&i.Name,
		&i.MarketPrice,
		&i.BuyPrice,
		&i.SteamPrice,
		&i.SellCount,
		&i.BuyCount,
		&i.RecordedAt,
	)
	return i, err
}

const getLatestPriceSnapshot = `select ` + selectColumns + ` from price_snapshot
where gid = ?
order by recorded_at desc, id desc
limit 1`

func (q *Queries) GetLatestPriceSnapshot(ctx context.Context, gid int64) (PriceSnapshot, error) {
	row := q.db.QueryRowContext(ctx, getLatestPriceSnapshot, gid)
	return scanSnapshot(row)
}

const getPriceSnapshots = `select ` + selectColumns + ` from price_snapshot
where gid = ?
order by recorded_at desc, id desc
limit ?`

type GetPriceSnapshotsParams struct {
	Gid   int64
	Limit int64
}

func (q *Queries) GetPriceSnapshots(ctx context.Context, arg GetPriceSnapshotsParams) ([]PriceSnapshot, error) {
	rows, err := q.db.QueryContext(ctx, getPriceSnapshots, arg.Gid, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PriceSnapshot
	for rows.Next() {
		i, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deletePriceSnapshotsBefore = `delete from price_snapshot where recorded_at < ?`

func (q *Queries) DeletePriceSnapshotsBefore(ctx context.Context, before int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deletePriceSnapshotsBefore, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
