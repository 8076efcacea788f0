package cache

import (
	"context"
	"io"
	"log"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func testCache(t *testing.T, cache Cache) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, err := cache.Get(ctx, "tf2:1220")
	require.ErrorIs(t, err, ErrCacheMiss)

	err = cache.Set(ctx, "tf2:1220", "https://steam-trader.com/tf2/1220-Mann-Co-Supply-Crate-Key", 0)
	require.NoError(t, err)
	value, err := cache.Get(ctx, "tf2:1220")
	require.NoError(t, err)
	require.Equal(t, "https://steam-trader.com/tf2/1220-Mann-Co-Supply-Crate-Key", value)

	err = cache.Set(ctx, "tf2:1220", "https://steam-trader.com/tf2/1220-Key", 0)
	require.NoError(t, err)
	value, err = cache.Get(ctx, "tf2:1220")
	require.NoError(t, err)
	require.Equal(t, "https://steam-trader.com/tf2/1220-Key", value)

	err = cache.Delete(ctx, "tf2:1220")
	require.NoError(t, err)
	_, err = cache.Get(ctx, "tf2:1220")
	require.ErrorIs(t, err, ErrCacheMiss)

	err = cache.Delete(ctx, "never-set")
	require.NoError(t, err)

	err = cache.Set(ctx, "short", "lived", time.Second)
	require.NoError(t, err)
	_, err = cache.Get(ctx, "short")
	require.NoError(t, err)
	time.Sleep(time.Millisecond * 2100)
	_, err = cache.Get(ctx, "short")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache(t *testing.T) {
	testCache(t, NewMemoryCache(16, time.Hour))
}

func TestMemoryCacheMaxAge(t *testing.T) {
	cache := NewMemoryCache(16, time.Millisecond*50)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", "b", 0))
	time.Sleep(time.Millisecond * 100)
	_, err := cache.Get(ctx, "a")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestBadgerCache(t *testing.T) {
	cache, err := OpenBadgerCache("")
	require.NoError(t, err)
	defer cache.Close()

	testCache(t, cache)
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a redis container")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		err := container.Terminate(ctx)
		if err != nil {
			t.Fatal(err)
		}
	}()

	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	cache, err := NewRedisCache(ctx, RedisConfig{Addr: addr, KeyPrefix: "test"})
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	testCache(t, cache)
}

func TestURLKey(t *testing.T) {
	testCases := []struct {
		namespace string
		link      string
		expect    string
	}{
		{namespace: "item", link: "https://steam-trader.com/tf2/1220-x", expect: "item:https://steam-trader.com/tf2/1220-x"},
		{namespace: "item", link: "HTTPS://Steam-Trader.com:443/tf2/1220-x", expect: "item:https://steam-trader.com/tf2/1220-x"},
		{namespace: "item", link: "https://steam-trader.com/tf2/?page=2&b=1#offers", expect: "item:https://steam-trader.com/tf2?b=1&page=2"},
		{namespace: "page", link: "https://steam-trader.com/index.html", expect: "page:https://steam-trader.com"},
	}

	for _, test := range testCases {
		link, err := url.Parse(test.link)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.expect, URLKey(test.namespace, link))
	}
}
