package broker

import (
	"context"
	"time"

	"github.com/alphadose/haxmap"
)

const defaultSlowSubscriberTimeout = 100 * time.Millisecond

type localBroker[T any] struct {
	topics                *haxmap.Map[string, *localTopic[T]]
	slowSubscriberTimeout time.Duration
}

// Local returns an in-process broker. Messages are handed to subscribers
// without serialization.
func Local[T any]() *localBroker[T] {
	return &localBroker[T]{
		topics:                haxmap.New[string, *localTopic[T]](),
		slowSubscriberTimeout: defaultSlowSubscriberTimeout,
	}
}

// WithSlowSubscriberTimeout configures the timeout for detecting slow subscribers
func (b *localBroker[T]) WithSlowSubscriberTimeout(timeout time.Duration) *localBroker[T] {
	b.slowSubscriberTimeout = timeout
	return b
}

func (b *localBroker[T]) Topic(ctx context.Context, name string) Topic[T] {
	topic, _ := b.topics.GetOrCompute(name, func() *localTopic[T] {
		return &localTopic[T]{
			name:                  name,
			subscriptions:         haxmap.New[string, *subscription[T]](),
			slowSubscriberTimeout: b.slowSubscriberTimeout,
		}
	})
	return topic
}

type localTopic[T any] struct {
	name                  string
	subscriptions         *haxmap.Map[string, *subscription[T]]
	slowSubscriberTimeout time.Duration
}

func (t *localTopic[T]) Name() string {
	return t.name
}

func (t *localTopic[T]) Publish(ctx context.Context, msg T) error {
	t.subscriptions.ForEach(func(id string, sub *subscription[T]) bool {
		if sub == nil {
			return true
		}

		// Check if subscription is still active
		select {
		case <-ctx.Done():
			return false
		case <-sub.done:
			return true
		case <-sub.ctx.Done():
			sub.Unsubscribe()
			return true
		default:
		}

		select {
		case <-ctx.Done():
			return false
		case <-sub.done:
		case <-sub.ctx.Done():
			sub.Unsubscribe()
		case sub.channel <- delivery[T]{msg: msg}:
		case <-time.After(t.slowSubscriberTimeout):
			// Channel is full after timeout, unsubscribe
			sub.Unsubscribe()
		}
		return true
	})
	return ctx.Err()
}

func (t *localTopic[T]) Subscribe(ctx context.Context, hook Hook[T]) (Subscription, error) {
	if hook == nil {
		return nil, ErrHookRequired
	}
	id := newSubscriptionID()
	sub := newSubscription(ctx, id, hook, func() { t.subscriptions.Del(id) })
	t.subscriptions.Set(id, sub)
	go sub.forwardToHook()
	return sub, nil
}
