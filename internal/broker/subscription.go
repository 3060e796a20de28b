package broker

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

const subscriptionBufferSize = 50

// delivery is either a decoded message or the error produced while decoding it.
type delivery[T any] struct {
	msg T
	err error
}

// subscription owns the goroutine that feeds a hook. Deliveries are queued on
// channel and handed to the hook one at a time until the subscription is
// released or its context ends.
type subscription[T any] struct {
	id        string
	ctx       context.Context
	channel   chan delivery[T]
	done      chan struct{}
	closeOnce sync.Once
	onClose   func()
	hook      Hook[T]
}

// newSubscriptionID returns a time ordered (v7) UUID.
func newSubscriptionID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func newSubscription[T any](ctx context.Context, id string, hook Hook[T], onClose func()) *subscription[T] {
	return &subscription[T]{
		id:      id,
		ctx:     ctx,
		channel: make(chan delivery[T], subscriptionBufferSize),
		done:    make(chan struct{}),
		onClose: onClose,
		hook:    hook,
	}
}

func (s *subscription[T]) ID() string {
	return s.id
}

func (s *subscription[T]) Unsubscribe() {
	s.closeOnce.Do(func() {
		if s.onClose != nil {
			s.onClose()
		}
		close(s.done)
	})
}

func (s *subscription[T]) forwardToHook() {
	for {
		select {
		case d := <-s.channel:
			if d.err != nil {
				s.hook.OnError(s.ctx, d.err)
				continue
			}
			s.hook.OnMessage(s.ctx, d.msg)
		case <-s.done:
			return
		case <-s.ctx.Done():
			return
		}
	}
}
