package infrastructure

import (
	"sync"
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

type fakeMemcache struct {
	mu    sync.Mutex
	items map[string]*memcache.Item
	gets  int
}

func (f *fakeMemcache) Get(key string) (*memcache.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	item, ok := f.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}
	return item, nil
}

func (f *fakeMemcache) Set(item *memcache.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.Key] = item
	return nil
}

func (f *fakeMemcache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[key]; !ok {
		return memcache.ErrCacheMiss
	}
	delete(f.items, key)
	return nil
}

func newTestPageCache(remote remoteCache) *PageStateCache {
	return &PageStateCache{
		local:     ccache.New(ccache.Configure[domain.UIState]().MaxSize(10)),
		remote:    remote,
		localTTL:  time.Minute,
		remoteTTL: time.Hour,
	}
}

func TestPageStateCacheLocalOnly(t *testing.T) {
	t.Parallel()

	cache := NewPageStateCache(PageStateCacheConfig{})
	defer cache.Stop()

	_, ok := cache.Load("s1:admin")
	assert.False(t, ok)

	cache.Save("s1:admin", domain.UIState{ActiveTab: "rooms"})
	ui, ok := cache.Load("s1:admin")
	require.True(t, ok)
	assert.Equal(t, "rooms", ui.ActiveTab)

	cache.Delete("s1:admin")
	_, ok = cache.Load("s1:admin")
	assert.False(t, ok)
}

func TestPageStateCacheRefillsFromMemcached(t *testing.T) {
	t.Parallel()

	remote := &fakeMemcache{items: map[string]*memcache.Item{}}
	writer := newTestPageCache(remote)
	defer writer.Stop()
	writer.Save("s1:manager", domain.UIState{ActiveTab: "staff", Selection: map[string]string{"set-staff-active": "4"}})

	item := remote.items["s1:manager"]
	require.NotNil(t, item)
	assert.Equal(t, int32(3600), item.Expiration)

	// A second gateway instance starts with an empty LRU.
	reader := newTestPageCache(remote)
	defer reader.Stop()
	ui, ok := reader.Load("s1:manager")
	require.True(t, ok)
	assert.Equal(t, "4", ui.Selection["set-staff-active"])

	gets := remote.gets
	_, ok = reader.Load("s1:manager")
	require.True(t, ok)
	assert.Equal(t, gets, remote.gets, "second load is served locally")

	reader.Delete("s1:manager")
	assert.Empty(t, remote.items)
}
