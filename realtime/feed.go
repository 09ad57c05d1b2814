package realtime

import (
	"context"
	"sync"
)

const subscriptionBuffer = 64

// Publisher emits change events after the corresponding row is committed.
type Publisher interface {
	PublishMessage(ctx context.Context, event Event) error
	PublishTyping(ctx context.Context, event Event) error
}

// Feed is the change-subscription side of the backend.
type Feed interface {
	Publisher
	// Subscribe returns once both room subscriptions are active.
	Subscribe(ctx context.Context, roomID string) (*Subscription, error)
}

// Subscription holds the two independent streams of one room. Each stream
// preserves publish order; there is no ordering between them. Both channels
// are closed after Close returns.
type Subscription struct {
	RoomID   string
	Messages <-chan Event
	Typing   <-chan Event

	closeOnce sync.Once
	closeFn   func() error
	closeErr  error
}

func newSubscription(roomID string, messages, typing <-chan Event, closeFn func() error) *Subscription {
	return &Subscription{RoomID: roomID, Messages: messages, Typing: typing, closeFn: closeFn}
}

// Close releases both streams. It is safe to call more than once.
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.closeFn()
	})
	return s.closeErr
}
