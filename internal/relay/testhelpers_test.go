package relay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/casualjim/pedsim-proxy/internal/broker"
	"github.com/casualjim/pedsim-proxy/messages"
)

// send is one publish observed by the recording broker.
type send struct {
	topic string
	cmd   messages.HumanControlCommand
}

// recordingBroker records publishes synchronously, in call order, across all
// of its topics.
type recordingBroker struct {
	mu     sync.Mutex
	sends  []send
	failOn map[string]error
	topics map[string]*recordingTopic
}

func newRecordingBroker() *recordingBroker {
	return &recordingBroker{
		failOn: make(map[string]error),
		topics: make(map[string]*recordingTopic),
	}
}

func (b *recordingBroker) Topic(_ context.Context, name string) broker.Topic[messages.HumanControlCommand] {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.topics[name]; ok {
		return t
	}
	t := &recordingTopic{name: name, broker: b}
	b.topics[name] = t
	return t
}

func (b *recordingBroker) recorded() []send {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]send(nil), b.sends...)
}

type recordingTopic struct {
	name   string
	broker *recordingBroker
}

func (t *recordingTopic) Name() string { return t.name }

func (t *recordingTopic) Publish(_ context.Context, cmd messages.HumanControlCommand) error {
	t.broker.mu.Lock()
	defer t.broker.mu.Unlock()
	if err := t.broker.failOn[t.name]; err != nil {
		return err
	}
	t.broker.sends = append(t.broker.sends, send{topic: t.name, cmd: cmd})
	return nil
}

func (t *recordingTopic) Subscribe(context.Context, broker.Hook[messages.HumanControlCommand]) (broker.Subscription, error) {
	return nil, errors.New("recording topics do not deliver")
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func agent(id int64, frame string, pos messages.Point, vel messages.Vector3) messages.AgentState {
	return messages.AgentState{
		Header: messages.Header{FrameID: frame},
		ID:     id,
		Pose:   messages.Pose{Position: pos, Orientation: messages.Quaternion{W: 1}},
		Twist:  messages.Twist{Linear: vel, Angular: messages.Vector3{Z: 0.4}},
	}
}

func batchOf(states ...messages.AgentState) messages.AgentStates {
	return messages.AgentStates{
		Header:      messages.Header{FrameID: "odom"},
		AgentStates: states,
	}
}
