package realtime

import (
	"context"
	"sync"
)

// LocalFeed fans events out inside one process. It backs single-instance
// deployments without Redis and the package tests.
type LocalFeed struct {
	mu     sync.RWMutex
	nextID int
	rooms  map[string]map[int]*localSubscriber
}

type localSubscriber struct {
	messages chan Event
	typing   chan Event
	done     chan struct{}
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{rooms: make(map[string]map[int]*localSubscriber)}
}

func (f *LocalFeed) PublishMessage(ctx context.Context, event Event) error {
	return f.publish(ctx, event, func(s *localSubscriber) chan Event { return s.messages })
}

func (f *LocalFeed) PublishTyping(ctx context.Context, event Event) error {
	return f.publish(ctx, event, func(s *localSubscriber) chan Event { return s.typing })
}

func (f *LocalFeed) publish(ctx context.Context, event Event, stream func(*localSubscriber) chan Event) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, sub := range f.rooms[event.RoomID] {
		select {
		case stream(sub) <- event:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (f *LocalFeed) Subscribe(ctx context.Context, roomID string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub := &localSubscriber{
		messages: make(chan Event, subscriptionBuffer),
		typing:   make(chan Event, subscriptionBuffer),
		done:     make(chan struct{}),
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.rooms[roomID] == nil {
		f.rooms[roomID] = make(map[int]*localSubscriber)
	}
	f.rooms[roomID][id] = sub
	f.mu.Unlock()

	return newSubscription(roomID, sub.messages, sub.typing, func() error {
		// done first so a blocked publisher lets go of the read lock
		close(sub.done)
		f.mu.Lock()
		delete(f.rooms[roomID], id)
		if len(f.rooms[roomID]) == 0 {
			delete(f.rooms, roomID)
		}
		f.mu.Unlock()
		close(sub.messages)
		close(sub.typing)
		return nil
	}), nil
}

// Subscribers reports how many live subscriptions a room has.
func (f *LocalFeed) Subscribers(roomID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms[roomID])
}
