package messages

// HumanControlCommand drives a single human actor in the multirobot simulator.
type HumanControlCommand struct {
	Header                Header  `json:"header"`
	TranslationalVelocity Vector3 `json:"translational_velocity"`
	RotationalVelocity    float64 `json:"rotational_velocity"`
	Pose                  Point   `json:"pose"`
}
