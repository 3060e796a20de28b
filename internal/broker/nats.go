package broker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/pedsim-proxy/messages"
	"github.com/casualjim/pedsim-proxy/pkg/natsx"
	"github.com/casualjim/pedsim-proxy/pkg/slogx"
	"github.com/nats-io/nats.go"
)

type natsBroker[T any] struct {
	client *nats.Conn
	topics *haxmap.Map[string, *natsTopic[T]]
}

// NATS returns a broker that publishes JSON encoded messages on client.
// Topic names are translated to subjects with natsx.Subject.
func NATS[T any](client *nats.Conn) *natsBroker[T] {
	return &natsBroker[T]{
		client: client,
		topics: haxmap.New[string, *natsTopic[T]](),
	}
}

func (b *natsBroker[T]) Topic(ctx context.Context, name string) Topic[T] {
	top, _ := b.topics.GetOrCompute(name, func() *natsTopic[T] {
		return &natsTopic[T]{
			name:    name,
			subject: natsx.Subject(name),
			client:  b.client,
		}
	})
	return top
}

type natsTopic[T any] struct {
	client  *nats.Conn
	name    string
	subject string
}

func (t *natsTopic[T]) Name() string {
	return t.name
}

// Subject returns the NATS subject the topic is bound to.
func (t *natsTopic[T]) Subject() string {
	return t.subject
}

func (t *natsTopic[T]) Publish(ctx context.Context, msg T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := messages.Encode(msg)
	if err != nil {
		return err
	}
	if err := t.client.Publish(t.subject, b); err != nil {
		return fmt.Errorf("publish to %s: %w", t.subject, err)
	}
	return nil
}

func (t *natsTopic[T]) Subscribe(ctx context.Context, hook Hook[T]) (Subscription, error) {
	if hook == nil {
		return nil, ErrHookRequired
	}

	id := newSubscriptionID()
	sub := newSubscription(ctx, id, hook, nil)
	nsub, err := t.client.Subscribe(t.subject, func(msg *nats.Msg) {
		msgT, err := messages.Decode[T](msg.Data)
		select {
		case sub.channel <- delivery[T]{msg: msgT, err: err}:
		case <-sub.done:
			return
		case <-sub.ctx.Done():
			return
		}

		if msg.Reply != "" {
			if nerr := msg.Ack(); nerr != nil {
				slog.Error("failed to ack message", slogx.Error(nerr), slog.String("subject", t.subject))
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", t.subject, err)
	}

	sub.onClose = func() {
		if err := nsub.Unsubscribe(); err != nil {
			slog.Error("failed to unsubscribe", slogx.Error(err), slog.String("subscription", id))
		}
	}

	go sub.forwardToHook()
	return sub, nil
}
