package store

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/lineagemap/pkg/cache"
	"github.com/matzehuels/lineagemap/pkg/family"
)

// Cached serves Get from a cache in front of another Store. Writes go to
// the inner store and drop the cached copy.
type Cached struct {
	Store
	cache cache.Cache
	keyer cache.Keyer
}

// NewCached wraps s. A nil keyer uses cache.NewDefaultKeyer.
func NewCached(s Store, c cache.Cache, keyer cache.Keyer) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{Store: s, cache: c, keyer: keyer}
}

func (s *Cached) Get(ctx context.Context, name string) (*family.Document, error) {
	name, err := storageName(name)
	if err != nil {
		return nil, err
	}
	key := s.keyer.DocumentKey(s.Store.Name(), name)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var doc family.Document
		if json.Unmarshal(data, &doc) == nil {
			return &doc, nil
		}
	}

	doc, err := s.Store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(doc); err == nil {
		_ = s.cache.Set(ctx, key, data, cache.TTLDocument)
	}
	return doc, nil
}

func (s *Cached) Put(ctx context.Context, name string, doc *family.Document) error {
	if err := s.Store.Put(ctx, name, doc); err != nil {
		return err
	}
	if name, err := storageName(name); err == nil {
		_ = s.cache.Delete(ctx, s.keyer.DocumentKey(s.Store.Name(), name))
	}
	return nil
}

var _ Store = (*Cached)(nil)
