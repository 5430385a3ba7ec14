// Package events carries store change notifications to the controllers that
// observe the persisted collections.
package events

import (
	"context"
	"sync"
	"time"
)

// Table names used as change topics.
const (
	TableProjects        = "projects"
	TablePosts           = "posts"
	TableContactMessages = "contact_messages"
)

// Operations recorded on a Change.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpClear  = "clear"
)

const subscriberBufferSize = 16

// Change describes a committed mutation on one table.
type Change struct {
	Table string    `json:"table"`
	Op    string    `json:"op"`
	ID    uint      `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

// Publisher announces committed changes.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// Bus fans changes out to subscribers.
type Bus interface {
	Publisher
	Subscribe() (<-chan Change, func())
}

// LocalBus is an in-process broker. Slow subscribers miss events instead of
// blocking the publisher; every event triggers a full re-query so a dropped
// event is recovered by the next one.
type LocalBus struct {
	mu          sync.RWMutex
	subscribers map[chan Change]struct{}
}

// NewLocalBus constructs an empty broker.
func NewLocalBus() *LocalBus {
	return &LocalBus{subscribers: make(map[chan Change]struct{})}
}

// Publish delivers change to every current subscriber.
func (b *LocalBus) Publish(_ context.Context, change Change) error {
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}
	b.broadcast(change)
	return nil
}

// Subscribe registers a new buffered channel. The returned func unsubscribes
// and closes the channel.
func (b *LocalBus) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBufferSize)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, ch)
			close(ch)
		})
	}
}

func (b *LocalBus) broadcast(change Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

// Nop discards every change.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Change) error { return nil }
