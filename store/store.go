// Package store provides the reference host for derived accessors: a
// goroutine-safe holder of one composite value with ordered commits,
// subscriber notification and a registry of derivation sites.
package store

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/statebind/destructure"
	"github.com/statebind/destructure/internal/utils"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Store owns one composite value. Commits are serialized: a Transform
// committed while earlier commits are queued is applied to the value
// those commits produced, not to the value read when it was created. That
// makes stores safe hosts for the Transforms committed by derived
// mutators and removers.
type Store struct {
	id     string
	logger zerolog.Logger

	// commitMu serializes commits end to end, delivery included, so
	// subscribers see values in commit order.
	commitMu sync.Mutex

	mu     sync.Mutex // guards value and subs
	value  any
	subs   map[int]func(next any)
	subSeq int
}

// An Option configures a Store at creation.
type Option func(*config)

type config struct {
	logger zerolog.Logger
}

// WithLogger attaches a logger to the store. Commit decisions are logged
// at debug level, tagged with the store's ID.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New creates a store holding initial.
func New(initial any, opts ...Option) *Store {
	conf := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&conf)
	}

	id := ulid.Make().String()
	s := &Store{
		id:     id,
		logger: conf.logger.With().Str("store", id).Logger(),
		value:  initial,
		subs:   map[int]func(next any){},
	}

	s.logger.Debug().Type("composite", initial).Msg("store created")
	return s
}

// ID returns the store's ULID, the identity its log events are tagged
// with.
func (s *Store) ID() string {
	return s.id
}

// Value returns the current composite value.
func (s *Store) Value() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Commit applies an update to the current value and notifies subscribers.
// update is either the next value or a transform of the previous one,
// destructure.Transform and plain func(any) any both work. A commit whose
// outcome is identical to the current value (destructure.Identical)
// changes nothing and notifies nobody.
func (s *Store) Commit(update any) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	prev := s.value
	next := resolve(prev, update)
	changed := !destructure.Identical(prev, next)
	if changed {
		s.value = next
	}
	subs := utils.CopyMap(s.subs)
	s.mu.Unlock()

	if !changed {
		s.logger.Debug().Msg("commit left the value unchanged")
		return
	}

	s.logger.Debug().Int("subscribers", len(subs)).Msg("committed new value")

	ids := maps.Keys(subs)
	slices.Sort(ids)
	for _, id := range ids {
		subs[id](next)
	}
}

// Set is shorthand for Commit with a destructure.Setter signature, so a
// store can be passed to a derivation as its setter directly:
//
//	bindings, err := destructure.Derive(cache, s.Value(), s.Set)
func (s *Store) Set(update any) {
	s.Commit(update)
}

func resolve(prev, update any) any {
	switch u := update.(type) {
	case destructure.Transform:
		return u(prev)
	case func(prev any) any:
		return u(prev)
	default:
		return update
	}
}

// A SubscribeOption configures one subscription.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	debounce time.Duration
}

// WithNotifyDebounce coalesces notification bursts: the subscriber is
// called once with the latest value after d without further commits,
// on the debounce timer's goroutine.
func WithNotifyDebounce(d time.Duration) SubscribeOption {
	return func(c *subscribeConfig) {
		c.debounce = d
	}
}

// Subscribe registers fn to be called with each new value. Subscribers
// are called synchronously in commit order and must not commit from
// within the callback, except debounced subscribers, which are called
// from their timer goroutine. The returned cancel forgets the
// subscription; a notification already in flight may still be delivered.
func (s *Store) Subscribe(fn func(next any), opts ...SubscribeOption) (cancel func()) {
	var conf subscribeConfig
	for _, opt := range opts {
		opt(&conf)
	}

	deliver := fn
	if conf.debounce > 0 {
		debounced := debounce.New(conf.debounce)
		deliver = func(next any) {
			debounced(func() {
				fn(next)
			})
		}
	}

	s.mu.Lock()
	id := s.subSeq
	s.subSeq++
	s.subs[id] = deliver
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
