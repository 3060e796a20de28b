package messages

// AgentState describes one simulated pedestrian at a point in time.
type AgentState struct {
	Header Header `json:"header"`
	ID     int64  `json:"id"`
	Type   int    `json:"type,omitempty"`
	Pose   Pose   `json:"pose"`
	Twist  Twist  `json:"twist"`
}

// AgentStates is the batch published by the pedestrian simulator on every tick.
type AgentStates struct {
	Header      Header       `json:"header"`
	AgentStates []AgentState `json:"agent_states"`
}
