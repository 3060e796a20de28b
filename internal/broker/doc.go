// Package broker implements the topic-based pub/sub transport the proxy relays
// over. It provides a minimal, generic interface for publishing typed messages
// to named topics and for subscribing hooks to them.
//
// Design decisions:
//   - Context-first: All operations accept context.Context for cancellation
//   - Typed topics: Broker[T] hands out Topic[T], so payloads never need type switches
//   - Named topics: Topics are addressed by ROS-style names (/human0/command);
//     each implementation maps names onto its own addressing scheme
//   - Serialized delivery: A subscription calls its hook from one goroutine,
//     one message at a time, in the order messages were received
//   - Explicit lifecycle: Subscriptions carry unique IDs and are released with
//     Unsubscribe, which is safe to call more than once
//
// Interface hierarchy:
//   - Broker: Top-level interface for accessing topics
//     └── Topic: Interface for publishing/subscribing to messages
//     └── Subscription: Interface for managing subscriptions
//
// Implementations:
//   - Local: in-process fan-out, used by tests and for dry runs
//   - NATS: messages are JSON encoded and sent over a NATS connection
//
// Example usage:
//
//	b := broker.NATS[messages.HumanControlCommand](nc)
//	topic := b.Topic(ctx, "/human0/command")
//
//	sub, err := topic.Subscribe(ctx, hook)
//	if err != nil {
//	    return err
//	}
//	defer sub.Unsubscribe()
//
//	if err := topic.Publish(ctx, cmd); err != nil {
//	    return err
//	}
package broker
