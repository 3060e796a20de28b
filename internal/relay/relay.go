package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/casualjim/pedsim-proxy/internal/broker"
	"github.com/casualjim/pedsim-proxy/messages"
	"github.com/casualjim/pedsim-proxy/pkg/slogx"
	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"
)

var _ broker.Hook[messages.AgentStates] = (*Relay)(nil)

// Relay turns agent state batches into per-human commands.
type Relay struct {
	registry *Registry
	now      func() time.Time
	logger   *slog.Logger
}

var (
	// WithLogger sets the logger used to report failed relays.
	WithLogger = opts.ForName[Relay, *slog.Logger]("logger")
)

// WithClock replaces the clock used to stamp outgoing commands.
func WithClock(now func() time.Time) opts.Option[Relay] {
	return opts.Type[Relay](func(r *Relay) error {
		if now == nil {
			return errors.New("clock is required")
		}
		r.now = now
		return nil
	})
}

// New creates a relay publishing on the topics of registry.
func New(registry *Registry, options ...opts.Option[Relay]) (*Relay, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	r := &Relay{
		registry: registry,
		now:      time.Now,
		logger:   slog.Default().With(slogx.LoggerName("relay")),
	}
	if err := opts.Apply(r, options); err != nil {
		return nil, err
	}
	return r, nil
}

// NewCommand builds the command for a single agent. The stamp is the time of
// relaying, not the time the agent state was sampled, and the rotational
// velocity is always zero.
func NewCommand(state messages.AgentState, stamp time.Time) messages.HumanControlCommand {
	return messages.HumanControlCommand{
		Header: messages.Header{
			FrameID: state.Header.FrameID,
			Stamp:   strfmt.DateTime(stamp),
		},
		TranslationalVelocity: state.Twist.Linear,
		RotationalVelocity:    0,
		Pose:                  state.Pose.Position,
	}
}

// Relay publishes one command for every agent in batch whose id has a
// command topic, in batch order. Agents without a topic are skipped.
// Publish failures do not stop the batch; they are returned joined.
func (r *Relay) Relay(ctx context.Context, batch messages.AgentStates) error {
	var errs []error
	for _, state := range batch.AgentStates {
		topic, ok := r.registry.Lookup(state.ID)
		if !ok {
			continue
		}
		if err := topic.Publish(ctx, NewCommand(state, r.now())); err != nil {
			errs = append(errs, fmt.Errorf("agent %d on %s: %w", state.ID, topic.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// OnMessage relays a batch delivered by a subscription.
func (r *Relay) OnMessage(ctx context.Context, batch messages.AgentStates) {
	if err := r.Relay(ctx, batch); err != nil {
		r.logger.ErrorContext(ctx, "failed to relay agent states", slogx.Error(err))
	}
}

// OnError reports a batch the transport could not decode.
func (r *Relay) OnError(ctx context.Context, err error) {
	r.logger.ErrorContext(ctx, "failed to receive agent states", slogx.Error(err))
}

// Start subscribes the relay to the agent states published on topic.
func (r *Relay) Start(ctx context.Context, states broker.Broker[messages.AgentStates], topic string) (broker.Subscription, error) {
	sub, err := states.Topic(ctx, topic).Subscribe(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", topic, err)
	}
	r.logger.InfoContext(ctx, "relaying agent states", slogx.Topic(topic), slog.Int("humans", r.registry.Len()))
	return sub, nil
}
