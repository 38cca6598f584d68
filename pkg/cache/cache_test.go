package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duccv/weather-tracker/config"
)

type point struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache(2, 60)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, []string{"c", "a"}, c.Keys())
}

func TestLRUCacheExpiry(t *testing.T) {
	c := NewLRUCache(10, 60)
	defer c.Stop()

	c.SetWithTTL("gone", "x", -1)
	_, ok := c.Get("gone")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestLRUCacheStopTwice(t *testing.T) {
	c := NewLRUCache(1, 1)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}

func TestNewCacheDefaults(t *testing.T) {
	c := NewCache(config.CacheConfig{})
	defer c.Stop()
	assert.Equal(t, 1000, c.MaxSize())
}

func TestLoaderFetchesOnceAndFillsBothLevels(t *testing.T) {
	mr, rdb := newRedis(t)
	mem := NewLRUCache(10, 60)
	defer mem.Stop()

	loader := NewLoader[point](mem, rdb, LoaderOptions{Prefix: "geo:"})

	var calls int32
	fetch := func(context.Context) (point, error) {
		atomic.AddInt32(&calls, 1)
		return point{Name: "Albany", Lat: 42.6}, nil
	}

	got, err := loader.Get(context.Background(), "12207", fetch)
	require.NoError(t, err)
	assert.Equal(t, "Albany", got.Name)

	got, err = loader.Get(context.Background(), "12207", fetch)
	require.NoError(t, err)
	assert.Equal(t, 42.6, got.Lat)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	raw, err := mr.Get("geo:12207")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Albany","lat":42.6}`, raw)
}

func TestLoaderReadsFromRedis(t *testing.T) {
	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set("geo:10001", `{"name":"New York","lat":40.75}`))

	mem := NewLRUCache(10, 60)
	defer mem.Stop()
	loader := NewLoader[point](mem, rdb, LoaderOptions{Prefix: "geo:"})

	got, err := loader.Get(context.Background(), "10001", func(context.Context) (point, error) {
		t.Fatal("fetch must not be called")
		return point{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "New York", got.Name)

	_, ok := mem.Get("geo:10001")
	assert.True(t, ok)
}

func TestLoaderDoesNotCacheErrors(t *testing.T) {
	mem := NewLRUCache(10, 60)
	defer mem.Stop()
	loader := NewLoader[point](mem, nil, LoaderOptions{})

	boom := errors.New("boom")
	_, err := loader.Get(context.Background(), "k", func(context.Context) (point, error) {
		return point{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mem.Size())
}

func TestLoaderCollapsesConcurrentMisses(t *testing.T) {
	mem := NewLRUCache(10, 60)
	defer mem.Stop()
	loader := NewLoader[point](mem, nil, LoaderOptions{})

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (point, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return point{Name: "x"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = loader.Get(context.Background(), "k", fetch)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoaderSharedFetchSurvivesCancelledCaller(t *testing.T) {
	mem := NewLRUCache(10, 60)
	defer mem.Stop()
	loader := NewLoader[point](mem, nil, LoaderOptions{FetchTimeout: time.Second})

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (point, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return point{}, err
		}
		return point{Name: "Albany"}, nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := loader.Get(firstCtx, "k", fetch)
		firstErr <- err
	}()
	<-started

	type result struct {
		val point
		err error
	}
	second := make(chan result, 1)
	go func() {
		val, err := loader.Get(context.Background(), "k", fetch)
		second <- result{val, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "Albany", got.val.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoaderFetchTimeout(t *testing.T) {
	mem := NewLRUCache(10, 60)
	defer mem.Stop()
	loader := NewLoader[point](mem, nil, LoaderOptions{FetchTimeout: 20 * time.Millisecond})

	_, err := loader.Get(context.Background(), "k", func(ctx context.Context) (point, error) {
		<-ctx.Done()
		return point{}, ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Type: "NORMAL", Addrs: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), config.RedisConfig{Type: "CLUSTER"})
	assert.Error(t, err)
}

func TestLoaderInvalidate(t *testing.T) {
	mr, rdb := newRedis(t)
	mem := NewLRUCache(10, 60)
	defer mem.Stop()
	loader := NewLoader[point](mem, rdb, LoaderOptions{Prefix: "geo:"})

	_, err := loader.Get(context.Background(), "k", func(context.Context) (point, error) { return point{Name: "x"}, nil })
	require.NoError(t, err)

	loader.Invalidate(context.Background(), "k")
	assert.False(t, mr.Exists("geo:k"))
	assert.Equal(t, 0, mem.Size())
}

func TestLRUCacheStats(t *testing.T) {
	c := NewLRUCache(1, 60)
	defer c.Stop()

	c.Set("a", 1)
	_, _ = c.Get("a")
	_, _ = c.Get("missing")
	c.Set("b", 2)
	c.SetWithTTL("b", 2, -1)
	_, _ = c.Get("b")

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, uint64(1), stats.Evictions)
	assert.Equal(t, uint64(1), stats.Expired)
}

func TestLRUCacheSweep(t *testing.T) {
	c := NewLRUCache(10, 60)
	c.Stop()

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("keep", 1)
	c.SetWithTTL("drop", 2, 1)

	now = now.Add(2 * time.Second)
	assert.Equal(t, 1, c.sweep())
	assert.Equal(t, []string{"keep"}, c.Keys())
}
