// Package catalog loads the field catalog offered for identifier completion
// and keeps it current while files or databases change.
package catalog

import (
	"sync"

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// Catalog holds the current field list. Readers get an immutable snapshot;
// Replace swaps in a new one and pings subscribers.
type Catalog struct {
	mu      sync.RWMutex
	fields  []suggest.Field
	version uint64

	lmu       sync.RWMutex
	listeners map[chan struct{}]struct{}
}

// New creates a catalog holding fields.
func New(fields []suggest.Field) *Catalog {
	return &Catalog{
		fields:    fields,
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Fields returns the current snapshot. Callers must not modify it.
func (c *Catalog) Fields() []suggest.Field {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fields
}

// Version counts replacements since creation.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Replace installs a new field list and notifies subscribers.
func (c *Catalog) Replace(fields []suggest.Field) {
	c.mu.Lock()
	c.fields = fields
	c.version++
	c.mu.Unlock()

	c.broadcast()
}

// Subscribe returns a channel pinged after every Replace.
// The caller must call Unsubscribe when done.
func (c *Catalog) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	c.lmu.Lock()
	c.listeners[ch] = struct{}{}
	c.lmu.Unlock()
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (c *Catalog) Unsubscribe(ch chan struct{}) {
	c.lmu.Lock()
	delete(c.listeners, ch)
	c.lmu.Unlock()
	close(ch)
}

// broadcast never blocks: a listener with a pending ping is skipped.
func (c *Catalog) broadcast() {
	c.lmu.RLock()
	defer c.lmu.RUnlock()

	for ch := range c.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
