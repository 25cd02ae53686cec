// Package status tallies tray activity for diagnostics.
package status

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/dicetray/event"
)

// Counters is a registry of named counters
// Lookup takes the mutex; a cached pointer is lock-free
type Counters struct {
	mu    sync.RWMutex
	items map[string]*atomic.Int64
	subs  []event.Subscription
}

// NewCounters creates zeroed counters
func NewCounters() *Counters {
	return &Counters{items: make(map[string]*atomic.Int64)}
}

// Get returns the counter for key, creating it on first use
func (c *Counters) Get(key string) *atomic.Int64 {
	c.mu.RLock()
	if ptr, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return ptr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if ptr, ok := c.items[key]; ok {
		return ptr
	}
	ptr := new(atomic.Int64)
	c.items[key] = ptr
	return ptr
}

// Value reads key without creating it
func (c *Counters) Value(key string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ptr, ok := c.items[key]; ok {
		return ptr.Load()
	}
	return 0
}

// Range visits counters in sorted key order
func (c *Counters) Range(fn func(key string, v int64)) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, c.items[k].Load())
	}
}

// Attach counts every tray notification by type; snapped drops also count as "Dropped.snapped"
// Must be called from the goroutine that owns bus
func (c *Counters) Attach(bus *event.Bus) {
	c.subs = append(c.subs, bus.SubscribeAll(c.record,
		event.Thrown, event.Held, event.Released, event.Dropped, event.LaidOut)...)
}

// Detach removes the bus handlers
func (c *Counters) Detach() {
	for _, s := range c.subs {
		s.Remove()
	}
	c.subs = nil
}

func (c *Counters) record(ev event.Event) {
	c.Get(ev.Type.String()).Add(1)
	if p, ok := ev.Payload.(*event.DropPayload); ok && p.Snapped {
		c.Get(ev.Type.String() + ".snapped").Add(1)
	}
}

// Summary renders "key=value" pairs in key order
func (c *Counters) Summary() string {
	var b strings.Builder
	c.Range(func(key string, v int64) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", key, v)
	})
	return b.String()
}
