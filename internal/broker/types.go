package broker

import (
	"context"
	"errors"
)

// ErrHookRequired is returned when subscribing without a hook.
var ErrHookRequired = errors.New("hook is required")

type Broker[T any] interface {
	Topic(context.Context, string) Topic[T]
}

type Topic[T any] interface {
	Name() string
	Publish(context.Context, T) error
	Subscribe(context.Context, Hook[T]) (Subscription, error)
}

type Subscription interface {
	ID() string
	Unsubscribe()
}

// Hook receives the messages delivered to a subscription.
// OnError is called for messages that reached the subscription but could not
// be turned into a T.
type Hook[T any] interface {
	OnMessage(context.Context, T)
	OnError(context.Context, error)
}

// HookFunc adapts a plain function to a Hook that ignores errors.
type HookFunc[T any] func(context.Context, T)

func (f HookFunc[T]) OnMessage(ctx context.Context, msg T) { f(ctx, msg) }

func (f HookFunc[T]) OnError(context.Context, error) {}
