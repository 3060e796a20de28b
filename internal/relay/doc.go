// Package relay forwards simulated pedestrian states to per-human command
// topics.
//
// The pedestrian simulator publishes one AgentStates batch per tick. For every
// agent in the batch whose id lies in [1, HumanCount] the relay builds a
// HumanControlCommand and publishes it on the command topic of human id-1.
// Agents outside that range are dropped without a trace.
//
// The set of command topics is resolved once, when the Registry is built, and
// never changes afterwards. A Relay therefore holds no mutable state and a
// batch is relayed by a plain function call; the broker subscription that
// feeds it delivers batches one at a time.
//
// Example usage:
//
//	cfg := relay.DefaultConfig(3)
//	registry := relay.NewRegistry(ctx, commands, cfg)
//	r, err := relay.New(registry)
//	if err != nil {
//	    return err
//	}
//	sub, err := r.Start(ctx, states, cfg.InputTopic)
//	if err != nil {
//	    return err
//	}
//	defer sub.Unsubscribe()
package relay
