package broker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/casualjim/pedsim-proxy/messages"
	"github.com/nats-io/nats.go"
)

type recordingHook struct {
	mu       sync.Mutex
	wg       *sync.WaitGroup
	received []messages.HumanControlCommand
	errors   []error
}

func newRecordingHook() *recordingHook {
	return &recordingHook{}
}

func (r *recordingHook) OnMessage(ctx context.Context, msg messages.HumanControlCommand) {
	r.mu.Lock()
	r.received = append(r.received, msg)
	r.mu.Unlock()
	if r.wg != nil {
		r.wg.Done()
	}
}

func (r *recordingHook) OnError(ctx context.Context, err error) {
	r.mu.Lock()
	r.errors = append(r.errors, err)
	r.mu.Unlock()
	if r.wg != nil {
		r.wg.Done()
	}
}

func (r *recordingHook) messages() []messages.HumanControlCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]messages.HumanControlCommand(nil), r.received...)
}

func (r *recordingHook) errs() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errors...)
}

func command(frame string, vx float64) messages.HumanControlCommand {
	return messages.HumanControlCommand{
		Header:                messages.Header{FrameID: frame},
		TranslationalVelocity: messages.Vector3{X: vx},
	}
}

func waitFor(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(defaultTestTimeout):
		t.Fatal("timeout waiting for messages to be processed")
	}
}

// setupNATS connects to a locally running NATS server and skips the test when
// none is reachable.
func setupNATS(t *testing.T) *nats.Conn {
	t.Helper()
	nc, err := nats.Connect(nats.DefaultURL)
	if err != nil {
		t.Skipf("nats server not available at %s: %v", nats.DefaultURL, err)
	}
	t.Cleanup(func() {
		nc.Close()
	})
	return nc
}

const defaultTestTimeout = 2 * time.Second
