package relay

import (
	"context"

	"github.com/casualjim/pedsim-proxy/internal/broker"
	"github.com/casualjim/pedsim-proxy/messages"
)

// CommandTopic is the output handle a command is published on.
type CommandTopic = broker.Topic[messages.HumanControlCommand]

// Registry is the fixed list of command topics, index i serving agent id i+1.
// It is built once and never modified, so it can be shared freely.
type Registry struct {
	topics []CommandTopic
}

// NewRegistry resolves cfg.HumanCount command topics on b.
func NewRegistry(ctx context.Context, b broker.Broker[messages.HumanControlCommand], cfg Config) *Registry {
	count := max(cfg.HumanCount, 0)
	topics := make([]CommandTopic, count)
	for i := range topics {
		topics[i] = b.Topic(ctx, cfg.CommandTopic(i))
	}
	return &Registry{topics: topics}
}

// Len returns the number of command topics.
func (r *Registry) Len() int {
	return len(r.topics)
}

// Names returns the command topic names in index order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.topics))
	for i, t := range r.topics {
		names[i] = t.Name()
	}
	return names
}

// Lookup returns the command topic for an agent id. The second result is
// false when id is outside [1, Len()].
func (r *Registry) Lookup(id int64) (CommandTopic, bool) {
	if id < 1 || id > int64(len(r.topics)) {
		return nil, false
	}
	return r.topics[id-1], true
}
