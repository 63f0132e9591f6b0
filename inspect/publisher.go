package inspect

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/storex"
)

// BuiltEvent announces one successful factory invocation.
type BuiltEvent struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Snapshot  Snapshot  `json:"snapshot" yaml:"snapshot"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ChannelPublisher forwards built stores to a Go channel.
// Publishing never blocks: when the channel is full the event is dropped.
type ChannelPublisher struct {
	mu      sync.Mutex
	name    string
	ch      chan<- BuiltEvent
	closed  bool
	dropped int
}

// NewChannelPublisher creates a publisher that snapshots stores under name.
func NewChannelPublisher(name string, ch chan<- BuiltEvent) *ChannelPublisher {
	return &ChannelPublisher{name: name, ch: ch}
}

// Publish snapshots store and sends it. Publishing after Close is a no-op.
func (p *ChannelPublisher) Publish(ctx context.Context, store *storex.Store) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}

	event := BuiltEvent{
		ID:        uuid.New(),
		Snapshot:  TakeSnapshot(p.name, store),
		Timestamp: time.Now().UTC(),
	}
	select {
	case p.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped++
		return nil
	}
}

// Hook returns an on-built hook publishing with a background context.
func (p *ChannelPublisher) Hook() func(*storex.Store) {
	return func(store *storex.Store) {
		_ = p.Publish(context.Background(), store)
	}
}

// Dropped returns how many events were dropped on backpressure.
func (p *ChannelPublisher) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Close closes the channel.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.ch)
	return nil
}
