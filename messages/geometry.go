package messages

import "github.com/go-openapi/strfmt"

// Header carries the coordinate frame and the time a message refers to.
type Header struct {
	FrameID string          `json:"frame_id"`
	Stamp   strfmt.DateTime `json:"stamp"`
}

// Vector3 is a free vector in 3D space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point is a position in 3D space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is an orientation in free space.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Pose is a position together with an orientation.
type Pose struct {
	Position    Point      `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// Twist is a velocity broken into its linear and angular parts.
type Twist struct {
	Linear  Vector3 `json:"linear"`
	Angular Vector3 `json:"angular"`
}
