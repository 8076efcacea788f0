// Package cache stores short strings by key with an expiry. The web client
// uses it to remember where the site redirects item pages to.
package cache

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/PuerkitoBio/purell"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("steamtrader/cache")

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Error wraps a failure of the backing store, it never wraps ErrCacheMiss.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return "cache " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, a ttl <= 0 keeps it until evicted.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// URLKey builds a key out of a namespace and a normalized url so that
// equivalent urls share one entry.
func URLKey(namespace string, u *url.URL) string {
	normalized := purell.NormalizeURL(
		u,
		purell.FlagsUsuallySafeGreedy|
			purell.FlagRemoveDirectoryIndex|
			purell.FlagRemoveFragment|
			purell.FlagRemoveDuplicateSlashes|
			purell.FlagSortQuery,
	)
	return namespace + ":" + normalized
}
