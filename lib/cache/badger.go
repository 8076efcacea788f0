package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BadgerCache persists entries in a badger database so they survive
// restarts of the cli.
type BadgerCache struct {
	db *badger.DB
}

func NewBadgerCache(db *badger.DB) BadgerCache {
	return BadgerCache{db: db}
}

// OpenBadgerCache opens the database at dir, an empty dir keeps it in
// memory.
func OpenBadgerCache(dir string) (BadgerCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return BadgerCache{}, err
	}
	return BadgerCache{db: db}, nil
}

func (c BadgerCache) Get(ctx context.Context, key string) (string, error) {
	_, span := tracer.Start(ctx, "badger:get")
	defer span.End()
	span.SetAttributes(attribute.String("custom.cache_key", key))

	tx := c.db.NewTransaction(false)
	defer tx.Discard()
	item, err := tx.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrCacheMiss
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return "", &Error{Op: "get", Key: key, Err: err}
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return "", &Error{Op: "get", Key: key, Err: err}
	}
	return string(value), nil
}

func (c BadgerCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, span := tracer.Start(ctx, "badger:set")
	defer span.End()
	span.SetAttributes(attribute.String("custom.cache_key", key))

	entry := badger.NewEntry([]byte(key), []byte(value))
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}

	tx := c.db.NewTransaction(true)
	defer tx.Discard()
	err := tx.SetEntry(entry)
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (c BadgerCache) Delete(ctx context.Context, key string) error {
	tx := c.db.NewTransaction(true)
	defer tx.Discard()
	err := tx.Delete([]byte(key))
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		return &Error{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (c BadgerCache) Close() error {
	return c.db.Close()
}
