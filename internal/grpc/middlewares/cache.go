package middleware

// The in-memory cache keeps this service self-contained. golang-lru evicts
// the least recently used responses once the size is reached.

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"google.golang.org/grpc"
)

// Cacheable is implemented by requests whose response only depends on the
// request itself. Requests that do not implement it are never cached.
type Cacheable interface {
	Cacheable() bool
}

type responseCache struct {
	cache *lru.Cache
}

// NewCachingInterceptor caches up to size responses of cacheable requests.
func NewCachingInterceptor(size int) (grpc.UnaryServerInterceptor, error) {
	rc, err := newResponseCache(size)
	if err != nil {
		return nil, err
	}
	return rc.intercept, nil
}

func newResponseCache(size int) (*responseCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &responseCache{cache: cache}, nil
}

func (rc *responseCache) intercept(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	c, ok := req.(Cacheable)
	if !ok || !c.Cacheable() {
		return handler(ctx, req)
	}

	key, err := generateCacheKey(info.FullMethod, req)
	if err != nil {
		return handler(ctx, req)
	}

	if cachedResp, ok := rc.cache.Get(key); ok {
		return cachedResp, nil
	}

	resp, err := handler(ctx, req)
	if err != nil {
		return nil, err
	}

	rc.cache.Add(key, resp)
	return resp, nil
}

// generateCacheKey generates a cache key based on the gRPC method and request.
func generateCacheKey(method string, req interface{}) (string, error) {
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", method, string(reqBytes)), nil
}
