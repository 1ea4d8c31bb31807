package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rai/fooddelivery-go/modules/shared/events"
)

// ErrEventProcessingDepthExceeded is returned when handlers keep publishing
// follow-up events past the depth limit.
var ErrEventProcessingDepthExceeded = errors.New("event processing depth exceeded")

// defaultMaxDepth bounds handler-published follow-up events per flush.
const defaultMaxDepth = 10

// TransactionalEventBus buffers domain events and delivers them
// synchronously to the subscribed modules, inside the transaction that
// published them. A payment completion and the order row it reconciles
// therefore commit or roll back together.
//
// Construct one per transaction, inside the scope closure: Spanner may
// rerun the closure on abort, and a bus created outside it would carry
// events from the aborted attempt into the retry.
//
//	txScope.Execute(ctx, func(ctx context.Context) error {
//	    bus := eventbus.NewTransactional(registry, 0)
//	    // ... mutate aggregates, bus.Publish their events ...
//	    return bus.Flush(ctx)
//	})
type TransactionalEventBus struct {
	registry HandlerRegistry
	pending  []events.Event
	mu       sync.Mutex
	maxDepth int
}

// NewTransactional creates a bus over the given registry. maxDepth limits
// how many events one flush may process; zero or negative selects the
// default.
func NewTransactional(registry HandlerRegistry, maxDepth int) *TransactionalEventBus {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &TransactionalEventBus{
		registry: registry,
		maxDepth: maxDepth,
	}
}

// Publish buffers an event; nothing runs until Flush.
// Implements events.Publisher.
func (b *TransactionalEventBus) Publish(ctx context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, event)
	return nil
}

// Flush delivers the buffered events in publish order. Events published by
// handlers during the flush are delivered in the same pass, up to maxDepth.
// A handler error aborts the flush so the caller's transaction rolls back.
func (b *TransactionalEventBus) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for depth := 0; len(b.pending) > 0; depth++ {
		if depth >= b.maxDepth {
			return ErrEventProcessingDepthExceeded
		}

		event := b.pending[0]
		b.pending = b.pending[1:]

		for _, handler := range b.registry.HandlersFor(event.EventType()) {
			// Handlers may Publish, so release the lock around them.
			b.mu.Unlock()
			err := handler.Handle(ctx, event)
			b.mu.Lock()

			if err != nil {
				return fmt.Errorf("handler failed for event %s: %w", event.EventType().String(), err)
			}
		}
	}

	return nil
}

// PendingCount reports how many events are buffered but not yet flushed.
func (b *TransactionalEventBus) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

var _ events.Publisher = (*TransactionalEventBus)(nil)
