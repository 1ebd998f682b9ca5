package middleware

// Responses are cached in process. golang-lru evicts the least recently used
// entry once the cache is full; entries also expire after the configured TTL
// so newly ingested data shows up.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"google.golang.org/grpc"
)

type cacheEntry struct {
	resp    interface{}
	expires time.Time
}

// ResponseCache is a size and age bounded cache of unary responses.
type ResponseCache struct {
	entries *lru.Cache
	ttl     time.Duration
	now     func() time.Time
}

// NewResponseCache creates a cache holding at most size responses. A ttl of
// zero keeps entries until they are evicted.
func NewResponseCache(size int, ttl time.Duration) (*ResponseCache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &ResponseCache{entries: entries, ttl: ttl, now: time.Now}, nil
}

func (c *ResponseCache) get(key string) (interface{}, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	entry := v.(cacheEntry)
	if c.ttl > 0 && c.now().After(entry.expires) {
		c.entries.Remove(key)
		return nil, false
	}
	return entry.resp, true
}

func (c *ResponseCache) add(key string, resp interface{}) {
	c.entries.Add(key, cacheEntry{resp: resp, expires: c.now().Add(c.ttl)})
}

// Len reports the number of cached responses, expired ones included.
func (c *ResponseCache) Len() int {
	return c.entries.Len()
}

// Interceptor returns a unary interceptor serving repeated requests from the
// cache. Only the listed full method names are cached, or every method when
// none are given. Failed calls are never cached.
func (c *ResponseCache) Interceptor(methods ...string) grpc.UnaryServerInterceptor {
	cacheable := make(map[string]bool, len(methods))
	for _, m := range methods {
		cacheable[m] = true
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if len(cacheable) > 0 && !cacheable[info.FullMethod] {
			return handler(ctx, req)
		}

		key, err := generateCacheKey(info.FullMethod, req)
		if err != nil {
			return handler(ctx, req)
		}

		if cached, ok := c.get(key); ok {
			return cached, nil
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return nil, err
		}
		c.add(key, resp)
		return resp, nil
	}
}

func generateCacheKey(method string, req interface{}) (string, error) {
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", method, reqBytes), nil
}
