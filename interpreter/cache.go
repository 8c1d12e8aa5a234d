package interpreter

import (
	"context"
	"encoding/binary"
	"log/slog"
	"strconv"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/minio/highwayhash"
	"golang.org/x/sync/singleflight"
)

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// DefaultCacheEntries is the cache size used when none is configured.
const DefaultCacheEntries = 1024

// Cache memoizes interpreter responses by source text, mode and type comment flag.
// Responses are kept encoded so that every caller decodes and owns its tree;
// identical requests in flight share one interpreter run.
type Cache struct {
	runner     Runner
	maxEntries int
	logger     *slog.Logger
	group      singleflight.Group
	entries    *lru.Cache[uint64, []byte]
	hits       atomic.Int64
	misses     atomic.Int64
}

// NewCache wraps runner; maxEntries <= 0 uses DefaultCacheEntries.
func NewCache(runner Runner, maxEntries int, logger *slog.Logger) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheEntries
	}
	if logger == nil {
		logger = slog.Default()
	}
	ret := &Cache{
		runner:     runner,
		maxEntries: maxEntries,
		logger:     logger,
	}
	ret.entries, _ = lru.NewWithEvict[uint64, []byte](maxEntries, func(key uint64, _ []byte) {
		ret.logger.Debug("interpreter cache eviction", "key", strconv.FormatUint(key, 16), "maxEntries", ret.maxEntries)
	})
	return ret
}

// Dump returns the cached response or runs the wrapped runner. The shared run
// outlives a canceled caller; each caller stops waiting when its own ctx is done.
func (c *Cache) Dump(ctx context.Context, request *Request) (*Response, error) {
	key := requestKey(request)
	if data, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return DecodeResponse(data)
	}
	c.misses.Add(1)
	shared := context.WithoutCancel(ctx)
	results := c.group.DoChan(strconv.FormatUint(key, 16), func() (interface{}, error) {
		response, err := c.runner.Dump(shared, request)
		if err != nil {
			return nil, err
		}
		data, err := EncodeResponse(response)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, data)
		return data, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		return DecodeResponse(result.Val.([]byte))
	}
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses int) {
	return int(c.hits.Load()), int(c.misses.Load())
}

// Len returns the number of cached responses.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func requestKey(request *Request) uint64 {
	mode := request.Mode
	if mode == "" {
		mode = ModeExec
	}
	hash, _ := highwayhash.New64(hashKey)
	hash.Write([]byte(mode))
	flags := make([]byte, 9)
	if request.TypeComments {
		flags[0] = 1
	}
	binary.LittleEndian.PutUint64(flags[1:], uint64(len(request.Source)))
	hash.Write(flags)
	hash.Write(request.Source)
	return hash.Sum64()
}
