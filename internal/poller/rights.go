package poller

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultRightsCacheSize holds rights for a few hundred levels of both kinds.
const DefaultRightsCacheSize = 512

type rightsKind string

const (
	bakingRights    rightsKind = "baking"
	endorsingRights rightsKind = "endorsing"
)

type rightsKey struct {
	chain string
	kind  rightsKind
	level int64
}

func (k rightsKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.chain, k.kind, k.level)
}

// RightsCache shares rights lookups between baker pollers. Concurrent lookups of the
// same key issue a single RPC call.
type RightsCache struct {
	cache *lru.Cache[rightsKey, []tezos.Right]
	group singleflight.Group
}

// NewRightsCache creates a cache holding size entries.
func NewRightsCache(size int) (*RightsCache, error) {
	if size <= 0 {
		size = DefaultRightsCacheSize
	}
	cache, err := lru.New[rightsKey, []tezos.Right](size)
	if err != nil {
		return nil, fmt.Errorf("create rights cache: %w", err)
	}
	return &RightsCache{cache: cache}, nil
}

// get returns the rights for key. Only successful lookups are shared: a caller
// that joined a failed lookup run by another poller fetches through its own node.
func (c *RightsCache) get(ctx context.Context, key rightsKey, fetch func(context.Context) ([]tezos.Right, error)) ([]tezos.Right, error) {
	if rights, ok := c.cache.Get(key); ok {
		return rights, nil
	}
	ran := false
	ch := c.group.DoChan(key.String(), func() (any, error) {
		ran = true
		if rights, ok := c.cache.Get(key); ok {
			return rights, nil
		}
		return c.fetch(ctx, key, fetch)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err == nil {
			return res.Val.([]tezos.Right), nil
		}
		if ran {
			return nil, res.Err
		}
		return c.fetch(ctx, key, fetch)
	}
}

func (c *RightsCache) fetch(ctx context.Context, key rightsKey, fetch func(context.Context) ([]tezos.Right, error)) ([]tezos.Right, error) {
	rights, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, rights)
	return rights, nil
}

// Len returns the number of cached entries.
func (c *RightsCache) Len() int { return c.cache.Len() }
