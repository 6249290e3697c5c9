package peers

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/telefwd/telefwd/config"
)

// CacheOptions sizes the resolution cache.
type CacheOptions struct {
	TTL         time.Duration
	NumCounters int64
	MaxCost     int64
}

// CachedResolver memoizes handle resolution around another Resolver, so
// rebuilding the routing map after a rule edit does not re-resolve every
// unchanged identifier over the network. Numeric peers bypass the cache.
type CachedResolver struct {
	inner Resolver
	cache *ristretto.Cache[string, int64]
	ttl   time.Duration
}

func NewCachedResolver(inner Resolver, opts CacheOptions) (*CachedResolver, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, int64]{
		NumCounters: opts.NumCounters,
		MaxCost:     opts.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedResolver{inner: inner, cache: cache, ttl: opts.TTL}, nil
}

func (r *CachedResolver) Resolve(ctx context.Context, peer config.Peer) (int64, error) {
	if id, ok := peer.Numeric(); ok {
		return id, nil
	}
	key := peer.Handle()
	if id, ok := r.cache.Get(key); ok {
		return id, nil
	}
	id, err := r.inner.Resolve(ctx, peer)
	if err != nil {
		return 0, err
	}
	r.cache.SetWithTTL(key, id, 1, r.ttl)
	r.cache.Wait()
	return id, nil
}
