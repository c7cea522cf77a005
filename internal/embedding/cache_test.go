package embedding

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls  int32
	delay  time.Duration
	vector []float32
	err    error
}

func (c *countingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.vector, nil
}

func TestCache_HitAvoidsBackendCall(t *testing.T) {
	inner := &countingClient{vector: []float32{0.1, 0.2}}
	cache := NewCache(inner, 10)

	v1, err := cache.Embed(context.Background(), "hello")
	require.NoError(t, err)
	v2, err := cache.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))
}

func TestCache_SingleFlightDedupesConcurrentColdCalls(t *testing.T) {
	inner := &countingClient{vector: []float32{0.3, 0.4}, delay: 50 * time.Millisecond}
	cache := NewCache(inner, 10)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Embed(context.Background(), "concurrent text")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))
}

func TestCache_FailureNotCached(t *testing.T) {
	inner := &countingClient{err: assertErr("backend down")}
	cache := NewCache(inner, 10)

	_, err := cache.Embed(context.Background(), "x")
	assert.Error(t, err)

	inner.err = nil
	inner.vector = []float32{1}
	_, err = cache.Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&inner.calls))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
