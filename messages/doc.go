// Package messages defines the wire schemas exchanged by the pedestrian
// simulation proxy. The shapes follow the ROS messages they stand in for:
// pedsim's AgentStates on the inbound side and the multirobot simulator's
// HumanControlCommand on the outbound side.
//
// Design decisions:
//   - ROS naming: JSON field names match the ROS message fields (frame_id,
//     agent_states, translational_velocity, ...) so bridges can map them 1:1
//   - Time as strfmt.DateTime: stamps serialize as RFC3339 strings
//   - Plain values: every message is a value type, safe to copy between goroutines
//
// Example usage:
//
//	batch, err := messages.Decode[messages.AgentStates](payload)
//	if err != nil {
//	    return err
//	}
//	for _, state := range batch.AgentStates {
//	    fmt.Println(state.ID, state.Pose.Position)
//	}
package messages
