package interpreter_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pyast/interpreter"
	"github.com/viant/pyast/raw"
)

func countingRunner(calls *int32) interpreter.Runner {
	return interpreter.RunnerFunc(func(ctx context.Context, request *interpreter.Request) (*interpreter.Response, error) {
		atomic.AddInt32(calls, 1)
		if string(request.Source) == "fail" {
			return nil, errors.New("interpreter crashed")
		}
		root := raw.NewNode("Module", "body", raw.List{}, "type_ignores", raw.List{}, "source", raw.String(request.Source))
		return &interpreter.Response{Version: "3.12.1", Tree: &raw.Tree{Version: "3.12.1", Root: root}}, nil
	})
}

func TestCache_Dump(t *testing.T) {
	var calls int32
	cache := interpreter.NewCache(countingRunner(&calls), 2, nil)
	ctx := context.Background()

	first, err := cache.Dump(ctx, &interpreter.Request{Source: []byte("a = 1"), Filename: "a.py"})
	require.NoError(t, err)
	second, err := cache.Dump(ctx, &interpreter.Request{Source: []byte("a = 1"), Filename: "b.py", Mode: interpreter.ModeExec})
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls)
	assert.Equal(t, first, second)

	first.Tree.Root.Fields["source"] = raw.String("changed")
	assert.Equal(t, raw.String("a = 1"), second.Tree.Root.Fields["source"])

	_, err = cache.Dump(ctx, &interpreter.Request{Source: []byte("a = 1"), Mode: interpreter.ModeSingle})
	require.NoError(t, err)
	_, err = cache.Dump(ctx, &interpreter.Request{Source: []byte("a = 1"), TypeComments: true})
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls)
	assert.Equal(t, 2, cache.Len())

	_, err = cache.Dump(ctx, &interpreter.Request{Source: []byte("a = 1")})
	require.NoError(t, err)
	assert.EqualValues(t, 4, calls, "oldest entry is evicted")

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 4, misses)
}

func TestCache_Error(t *testing.T) {
	var calls int32
	cache := interpreter.NewCache(countingRunner(&calls), 0, nil)
	for i := 0; i < 2; i++ {
		_, err := cache.Dump(context.Background(), &interpreter.Request{Source: []byte("fail")})
		assert.EqualError(t, err, "interpreter crashed")
	}
	assert.EqualValues(t, 2, calls, "failures are not cached")
	assert.Equal(t, 0, cache.Len())
}

func TestCache_Concurrent(t *testing.T) {
	var calls int32
	cache := interpreter.NewCache(countingRunner(&calls), 0, nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			response, err := cache.Dump(context.Background(), &interpreter.Request{Source: []byte("shared")})
			assert.NoError(t, err)
			assert.Equal(t, raw.String("shared"), response.Tree.Root.Fields["source"])
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, int(atomic.LoadInt32(&calls)), 1)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_CanceledCaller(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var runErr atomic.Value
	runner := interpreter.RunnerFunc(func(ctx context.Context, request *interpreter.Request) (*interpreter.Response, error) {
		once.Do(func() { close(started) })
		<-release
		if ctx.Err() != nil {
			runErr.Store(ctx.Err())
		}
		root := raw.NewNode("Module", "body", raw.List{}, "type_ignores", raw.List{})
		return &interpreter.Response{Version: "3.12.1", Tree: &raw.Tree{Version: "3.12.1", Root: root}}, nil
	})
	cache := interpreter.NewCache(runner, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	canceled := make(chan error, 1)
	go func() {
		_, err := cache.Dump(ctx, &interpreter.Request{Source: []byte("shared")})
		canceled <- err
	}()
	<-started

	waiting := make(chan error, 1)
	go func() {
		_, err := cache.Dump(context.Background(), &interpreter.Request{Source: []byte("shared")})
		waiting <- err
	}()

	cancel()
	assert.ErrorIs(t, <-canceled, context.Canceled)
	close(release)
	assert.NoError(t, <-waiting)
	assert.Nil(t, runErr.Load(), "shared run must not see the canceled caller")
	assert.Equal(t, 1, cache.Len())
}
