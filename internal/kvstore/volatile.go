package kvstore

import (
	"bytes"
	"context"
	"errors"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

var _ Backend = (*VolatileBackend)(nil)

// VolatileBackend keeps session values in process memory only; a restart
// drops them, same as an ended session.
type VolatileBackend struct {
	cache *freecache.Cache
	// seconds, 0 means no expiry
	expireSeconds int
}

func NewVolatileBackend(cacheSizeMegabytes int, expireSeconds int) *VolatileBackend {
	return &VolatileBackend{
		cache:         freecache.NewCache(cacheSizeMegabytes * megabyte),
		expireSeconds: expireSeconds,
	}
}

func (v *VolatileBackend) Get(_ context.Context, key string) (string, bool, error) {
	val, err := v.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

func (v *VolatileBackend) Set(_ context.Context, key, value string) error {
	return v.cache.Set([]byte(key), []byte(value), v.expireSeconds)
}

func (v *VolatileBackend) Remove(_ context.Context, key string) error {
	v.cache.Del([]byte(key))
	return nil
}

func (v *VolatileBackend) RemovePrefix(_ context.Context, prefix string) error {
	prefixBytes := []byte(prefix)
	var toRemove [][]byte
	it := v.cache.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		if bytes.HasPrefix(entry.Key, prefixBytes) {
			toRemove = append(toRemove, entry.Key)
		}
	}
	for _, key := range toRemove {
		v.cache.Del(key)
	}
	return nil
}

func (v *VolatileBackend) EntryCount() int64 {
	return v.cache.EntryCount()
}
