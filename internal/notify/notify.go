// Package notify delivers change signals for product addresses to observers.
package notify

import (
	"context"
	"strings"
	"sync"
)

// Notifier signals that the data behind an address changed.
type Notifier interface {
	NotifyChange(ctx context.Context, address string)
}

// Observer is invoked with the address that changed.
type Observer func(address string)

type subscription struct {
	address     string
	descendants bool
	observer    Observer
}

// Bus is an in-process Notifier. Observers run synchronously on the goroutine
// that performed the write.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscription
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]subscription),
	}
}

// Subscribe registers observer for changes to address. A change to an
// ancestor address (the collection) always reaches it; with descendants set it
// also hears changes to addresses below it (single items). The returned func
// removes the subscription.
func (b *Bus) Subscribe(address string, descendants bool, observer Observer) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = subscription{
		address:     normalize(address),
		descendants: descendants,
		observer:    observer,
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// NotifyChange invokes every observer interested in address.
func (b *Bus) NotifyChange(_ context.Context, address string) {
	address = normalize(address)

	b.mu.RLock()
	var observers []Observer
	for _, s := range b.subs {
		if s.matches(address) {
			observers = append(observers, s.observer)
		}
	}
	b.mu.RUnlock()

	for _, observe := range observers {
		observe(address)
	}
}

func (s subscription) matches(changed string) bool {
	if s.address == changed || isBelow(s.address, changed) {
		return true
	}
	return s.descendants && isBelow(changed, s.address)
}

// isBelow reports whether address lies under ancestor.
func isBelow(address, ancestor string) bool {
	return strings.HasPrefix(address, ancestor+"/")
}

func normalize(address string) string {
	return strings.Trim(address, "/")
}

// Multi fans a change out to several notifiers in order.
type Multi []Notifier

// NotifyChange forwards to every notifier.
func (m Multi) NotifyChange(ctx context.Context, address string) {
	for _, n := range m {
		n.NotifyChange(ctx, address)
	}
}
