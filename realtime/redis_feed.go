package realtime

import (
	"context"
	"dating-chat-api/enum"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisFeed carries change events over Redis Pub/Sub so every API instance
// sees writes made by the others.
type RedisFeed struct {
	Redis *redis.Client
	Log   *logrus.Logger
}

func NewRedisFeed(rdb *redis.Client, log *logrus.Logger) *RedisFeed {
	return &RedisFeed{Redis: rdb, Log: log}
}

func (f *RedisFeed) PublishMessage(ctx context.Context, event Event) error {
	return f.publish(ctx, messagesChannel(event.RoomID), event)
}

func (f *RedisFeed) PublishTyping(ctx context.Context, event Event) error {
	return f.publish(ctx, typingChannel(event.RoomID), event)
}

func (f *RedisFeed) publish(ctx context.Context, channel string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := f.Redis.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// Subscribe opens one Redis subscription per stream and waits for both
// confirmations, so anything published afterwards is delivered.
func (f *RedisFeed) Subscribe(ctx context.Context, roomID string) (*Subscription, error) {
	messagesPS, err := f.open(ctx, messagesChannel(roomID))
	if err != nil {
		return nil, err
	}
	typingPS, err := f.open(ctx, typingChannel(roomID))
	if err != nil {
		_ = messagesPS.Close()
		return nil, err
	}

	messages := make(chan Event, subscriptionBuffer)
	typing := make(chan Event, subscriptionBuffer)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		f.pump(roomID, messagesPS, messages, done, true)
	}()
	go func() {
		defer wg.Done()
		f.pump(roomID, typingPS, typing, done, false)
	}()

	return newSubscription(roomID, messages, typing, func() error {
		close(done)
		err := errors.Join(messagesPS.Close(), typingPS.Close())
		wg.Wait()
		return err
	}), nil
}

func (f *RedisFeed) open(ctx context.Context, channel string) (*redis.PubSub, error) {
	ps := f.Redis.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}
	return ps, nil
}

func (f *RedisFeed) pump(roomID string, ps *redis.PubSub, out chan<- Event, done <-chan struct{}, resync bool) {
	f.relay(roomID, ps.ChannelWithSubscriptions(redis.WithChannelSize(subscriptionBuffer)), out, done, resync)
}

// relay decodes payloads from in until it is closed, then closes out. The
// initial subscribe confirmation was consumed by open, so any later one means
// go-redis reconnected and re-subscribed; on the message stream that is
// reported as a resync.
func (f *RedisFeed) relay(roomID string, in <-chan interface{}, out chan<- Event, done <-chan struct{}, resync bool) {
	defer close(out)

	for raw := range in {
		var event Event
		switch msg := raw.(type) {
		case *redis.Subscription:
			if !resync || msg.Kind != "subscribe" {
				continue
			}
			f.Log.WithField("roomId", roomID).Warn("realtime feed re-subscribed, requesting resync")
			event = Event{Type: enum.EventResync, RoomID: roomID}
		case *redis.Message:
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				f.Log.WithError(err).Errorf("Error unmarshalling Redis message on %s", msg.Channel)
				continue
			}
		default:
			continue
		}

		select {
		case out <- event:
		case <-done:
			return
		}
	}
}
