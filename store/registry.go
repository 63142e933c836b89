package store

import (
	"github.com/oklog/ulid/v2"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/statebind/destructure"
)

// A Registry owns one destructure.Cache per derivation site, for hosts
// whose set of sites changes at runtime. Site caches are created on first
// use and dropped in one call, which releases every accessor the site was
// handed. The registry is goroutine-safe; the individual caches are not.
type Registry struct {
	sites cmap.ConcurrentMap[string, *destructure.Cache]
}

func NewRegistry() *Registry {
	return &Registry{
		sites: cmap.New[*destructure.Cache](),
	}
}

// Register allocates a fresh site and returns its ID.
func (r *Registry) Register() string {
	id := ulid.Make().String()
	r.sites.Set(id, &destructure.Cache{})
	return id
}

// Site returns the cache of the given site, creating it on first use.
func (r *Registry) Site(id string) *destructure.Cache {
	return r.sites.Upsert(id, nil, func(exist bool, current, _ *destructure.Cache) *destructure.Cache {
		if exist {
			return current
		}
		return &destructure.Cache{}
	})
}

// Drop forgets a site and the accessors cached for it.
func (r *Registry) Drop(id string) {
	r.sites.Remove(id)
}

// Count returns the number of live sites.
func (r *Registry) Count() int {
	return r.sites.Count()
}
