package infrastructure

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

// remoteCache is the part of *memcache.Client the page cache uses.
type remoteCache interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

// PageStateCache keeps UI state in two levels: an in-process LRU first, then memcached.
// A memcached hit is copied back into the LRU.
type PageStateCache struct {
	local     *ccache.Cache[domain.UIState]
	remote    remoteCache
	localTTL  time.Duration
	remoteTTL time.Duration
}

type PageStateCacheConfig struct {
	MemcachedHosts []string
	LocalMaxSize   int64
	LocalTTL       time.Duration
	RemoteTTL      time.Duration
}

// NewPageStateCache builds the cache. Without memcached hosts it runs on the LRU alone.
func NewPageStateCache(cfg PageStateCacheConfig) *PageStateCache {
	if cfg.LocalMaxSize <= 0 {
		cfg.LocalMaxSize = 1000
	}
	if cfg.LocalTTL <= 0 {
		cfg.LocalTTL = 5 * time.Minute
	}
	if cfg.RemoteTTL <= 0 {
		cfg.RemoteTTL = 30 * time.Minute
	}
	c := &PageStateCache{
		local:     ccache.New(ccache.Configure[domain.UIState]().MaxSize(cfg.LocalMaxSize)),
		localTTL:  cfg.LocalTTL,
		remoteTTL: cfg.RemoteTTL,
	}
	if len(cfg.MemcachedHosts) > 0 {
		c.remote = memcache.New(cfg.MemcachedHosts...)
		slog.Info("page state cache using memcached", slog.Any("hosts", cfg.MemcachedHosts))
	}
	return c
}

func (c *PageStateCache) Load(key string) (domain.UIState, bool) {
	if item := c.local.Get(key); item != nil && !item.Expired() {
		slog.Debug("page state hit (local)", slog.String("key", key))
		return item.Value(), true
	}
	if c.remote == nil {
		return domain.UIState{}, false
	}

	item, err := c.remote.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			slog.Warn("page state memcached get failed", slog.String("key", key), slog.Any("error", err))
		}
		return domain.UIState{}, false
	}
	var ui domain.UIState
	if err := json.Unmarshal(item.Value, &ui); err != nil {
		slog.Warn("page state memcached decode failed", slog.String("key", key), slog.Any("error", err))
		return domain.UIState{}, false
	}
	c.local.Set(key, ui, c.localTTL)
	slog.Debug("page state hit (memcached)", slog.String("key", key))
	return ui, true
}

func (c *PageStateCache) Save(key string, ui domain.UIState) {
	c.local.Set(key, ui, c.localTTL)
	if c.remote == nil {
		return
	}
	raw, err := json.Marshal(ui)
	if err != nil {
		slog.Warn("page state encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.remote.Set(&memcache.Item{Key: key, Value: raw, Expiration: int32(c.remoteTTL / time.Second)}); err != nil {
		slog.Warn("page state memcached set failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *PageStateCache) Delete(key string) {
	c.local.Delete(key)
	if c.remote == nil {
		return
	}
	if err := c.remote.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		slog.Warn("page state memcached delete failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Stop releases the LRU's background worker.
func (c *PageStateCache) Stop() {
	c.local.Stop()
}

var _ port.PageStateStore = (*PageStateCache)(nil)
