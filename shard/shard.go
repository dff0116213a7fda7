// Package shard routes incoming keyed elements to per-key quantile
// summaries -- the global-vs-per-key, windowed application of the core
// quantile package that a complete consumer still needs around it.
//
// FNV-based hashing drives deterministic shard selection over arbitrary
// keys.
package shard

import (
	"hash/fnv"
	"sync"

	log "github.com/cihub/seelog"

	"github.com/segmentio/approxquantile/quantile"
)

// Router owns one quantile.Summary per key and serializes access to it.
// Several Routers -- one per worker -- can later be combined into a
// single global view with Merge.
type Router struct {
	mu     sync.Mutex
	params quantile.Parameters
	order  quantile.Ordering
	byKey  map[string]*quantile.Summary
}

// NewRouter creates a Router whose per-key summaries all share params and
// order.
func NewRouter(params quantile.Parameters, order quantile.Ordering) *Router {
	return &Router{
		params: params,
		order:  order,
		byKey:  make(map[string]*quantile.Summary),
	}
}

// AddInput routes v into the accumulator for key, opening a new one on
// first sight of that key.
func (r *Router) AddInput(key string, v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byKey[key]
	if !ok {
		s = quantile.NewSummary(r.params, r.order)
		r.byKey[key] = s
		log.Debugf("shard: opened new accumulator for key %q", key)
	}
	s.AddInput(v)
}

// Merge absorbs every key's accumulator from other into r, the way a
// pipeline combines per-worker partial combines into a global one.
func (r *Router) Merge(other *Router) {
	other.mu.Lock()
	snapshot := make(map[string]*quantile.Summary, len(other.byKey))
	for k, v := range other.byKey {
		snapshot[k] = v
	}
	other.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for k, s := range snapshot {
		dst, ok := r.byKey[k]
		if !ok {
			dst = quantile.NewSummary(r.params, r.order)
			r.byKey[k] = dst
		}
		dst.Merge(s)
	}
	log.Infof("shard: merged %d keys from peer router", len(snapshot))
}

// Flush returns ExtractOutput for every key currently tracked. It does not
// reset anything; callers wanting a rolling window should replace the
// Router wholesale at window boundaries.
func (r *Router) Flush() map[string][]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]interface{}, len(r.byKey))
	for k, s := range r.byKey {
		out[k] = s.ExtractOutput()
	}
	return out
}

// Keys returns the set of keys currently tracked.
func (r *Router) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	return keys
}

// Index hashes key with FNV-1a into one of numShards buckets -- cheap,
// deterministic, and with no cryptographic requirement.
func Index(key string, numShards int) int {
	if numShards <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(numShards))
}
