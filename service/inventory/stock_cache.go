package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"catalog.GO/core/cache"
	inventoryEntity "catalog.GO/model/entity/inventory"
)

// StockCache keeps stock summaries in Redis when a client is given, and in
// the process cache otherwise. Entries are tagged with the item tag
// (product_{id} / variation_{id}) and dropped by tag after every mutation.
//
// Every item carries a generation that Invalidate bumps. Readers take the
// generation before loading from the database and Set discards the summary
// when it moved, so a read that raced a mutation never repopulates the cache.
type StockCache struct {
	l1     *cache.Cache
	rdb    *redis.Client
	ttl    int64
	logger *zap.Logger

	mu   sync.Mutex
	gens map[string]uint64
}

// NewStockCache returns a cache with ttl in seconds. ttl <= 0 disables it.
// With rdb set the process cache is not used: every process shares Redis.
func NewStockCache(l1 *cache.Cache, rdb *redis.Client, ttl int64, logger *zap.Logger) *StockCache {
	if l1 == nil {
		l1 = cache.GetInstance()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockCache{l1: l1, rdb: rdb, ttl: ttl, logger: logger, gens: map[string]uint64{}}
}

func stockKey(item inventoryEntity.ItemRef) string {
	return cache.Key("stock", item.Kind, item.ID)
}

func tagKey(tag string) string {
	return "tag:" + tag
}

func genKey(key string) string {
	return "gen:" + key
}

func (c *StockCache) enabled() bool {
	return c != nil && c.ttl > 0
}

func (c *StockCache) Get(ctx context.Context, item inventoryEntity.ItemRef) (*StockSummary, bool) {
	if !c.enabled() {
		return nil, false
	}
	key := stockKey(item)
	if c.rdb == nil {
		if v, ok := c.l1.Get(key); ok {
			if s, ok := v.(*StockSummary); ok {
				return s.clone(), true
			}
		}
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("stock cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var s StockSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		c.logger.Warn("stock cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &s, true
}

// Generation returns the item's current generation. ok is false when it
// cannot be read, in which case the caller must not call Set.
func (c *StockCache) Generation(ctx context.Context, item inventoryEntity.ItemRef) (gen uint64, ok bool) {
	if !c.enabled() {
		return 0, false
	}
	key := stockKey(item)
	if c.rdb == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.gens[key], true
	}
	gen, err := c.rdb.Get(ctx, genKey(key)).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("stock cache generation read failed", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	return gen, true
}

// Set stores s if the item is still at generation gen.
func (c *StockCache) Set(ctx context.Context, item inventoryEntity.ItemRef, gen uint64, s *StockSummary) {
	if !c.enabled() || s == nil {
		return
	}
	key := stockKey(item)
	if c.rdb == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gens[key] != gen {
			c.logger.Debug("stale stock summary dropped", zap.String("key", key))
			return
		}
		c.l1.Set(key, s.clone(), c.ttl, []string{item.Tag()})
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	ttl := time.Duration(c.ttl) * time.Second
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey(key)).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return redis.TxFailedErr
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, raw, ttl)
			p.SAdd(ctx, tagKey(item.Tag()), key)
			p.Expire(ctx, tagKey(item.Tag()), ttl)
			return nil
		})
		return err
	}, genKey(key))
	switch {
	case errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("stale stock summary dropped", zap.String("key", key))
	case err != nil:
		c.logger.Warn("stock cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate bumps the item's generation and drops every entry tagged with
// the item's tag.
func (c *StockCache) Invalidate(ctx context.Context, item inventoryEntity.ItemRef) {
	if c == nil {
		return
	}
	key := stockKey(item)
	tag := item.Tag()
	if c.rdb == nil {
		c.mu.Lock()
		c.gens[key]++
		c.l1.DeleteByTag(tag)
		c.mu.Unlock()
		return
	}
	if err := c.rdb.Incr(ctx, genKey(key)).Err(); err != nil {
		c.logger.Warn("stock cache generation bump failed", zap.String("key", key), zap.Error(err))
	}
	keys, err := c.rdb.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		c.logger.Warn("stock cache tag lookup failed", zap.String("tag", tag), zap.Error(err))
		return
	}
	keys = append(keys, tagKey(tag))
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("stock cache invalidation failed", zap.String("tag", tag), zap.Error(err))
	}
}
