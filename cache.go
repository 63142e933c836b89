package destructure

import "github.com/rs/zerolog"

// A Cache holds the derivation state of one call site: the accessors the
// site has been handed and the memo of the previous derivation. The zero
// value is ready to use.
//
// Each site owns exactly one Cache and passes it to every derivation.
// Accessor identity is only meaningful within one cache: two caches fed
// the same composite hand out distinct accessors.
//
// A Cache is not goroutine-safe. The owning site derives and commits from
// one goroutine, or provides its own synchronization.
type Cache struct {
	kind   Kind
	seq    *sequenceSlots
	rec    *fieldEntries
	logger zerolog.Logger
}

// SetLogger attaches a logger to the cache, reconciliation decisions are
// then logged at debug level. The zero Cache logs nothing.
func (c *Cache) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// adopt points the cache at the kind of the current composite, dropping
// all cached accessors when the kind changed since the previous call.
func (c *Cache) adopt(sh shape) {
	if c.kind == sh.kind {
		return
	}
	if c.kind != 0 {
		c.logger.Debug().
			Stringer("from", c.kind).
			Stringer("to", sh.kind).
			Msg("composite kind changed, dropping cached accessors")
	}
	c.kind = sh.kind
	c.seq = nil
	c.rec = nil
}
