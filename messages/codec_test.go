package messages

import (
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func TestDecodeAgentStates(t *testing.T) {
	raw := `{"header":{"frame_id":"odom"},"agent_states":[{},{}]}`
	var err error
	raw, err = sjson.Set(raw, "agent_states.0.id", 2)
	require.NoError(t, err)
	raw, err = sjson.Set(raw, "agent_states.0.header.frame_id", "odom")
	require.NoError(t, err)
	raw, err = sjson.Set(raw, "agent_states.0.pose.position", map[string]float64{"x": 1, "y": 2, "z": 3})
	require.NoError(t, err)
	raw, err = sjson.Set(raw, "agent_states.0.twist.linear.x", 0.1)
	require.NoError(t, err)
	raw, err = sjson.Set(raw, "agent_states.1.id", 7)
	require.NoError(t, err)

	batch, err := Decode[AgentStates]([]byte(raw))
	require.NoError(t, err)
	require.Len(t, batch.AgentStates, 2)

	first := batch.AgentStates[0]
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, "odom", first.Header.FrameID)
	assert.Equal(t, Point{X: 1, Y: 2, Z: 3}, first.Pose.Position)
	assert.Equal(t, Vector3{X: 0.1}, first.Twist.Linear)
	assert.Equal(t, int64(7), batch.AgentStates[1].ID)
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	_, err := Decode[AgentStates]([]byte(`{"agent_states":[{"id":"two"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode messages.AgentStates")
}

func TestEncodeHumanControlCommand(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	cmd := HumanControlCommand{
		Header:                Header{FrameID: "map", Stamp: strfmt.DateTime(stamp)},
		TranslationalVelocity: Vector3{X: 0.5, Y: -0.25},
		Pose:                  Point{X: 4, Y: 5},
	}

	b, err := Encode(cmd)
	require.NoError(t, err)

	doc := gjson.ParseBytes(b)
	assert.Equal(t, "map", doc.Get("header.frame_id").String())
	assert.Equal(t, 0.5, doc.Get("translational_velocity.x").Float())
	assert.Equal(t, -0.25, doc.Get("translational_velocity.y").Float())
	assert.True(t, doc.Get("rotational_velocity").Exists())
	assert.Equal(t, 0.0, doc.Get("rotational_velocity").Float())
	assert.Equal(t, 4.0, doc.Get("pose.x").Float())

	parsed, err := time.Parse(time.RFC3339, doc.Get("header.stamp").String())
	require.NoError(t, err)
	assert.True(t, stamp.Equal(parsed))

	back, err := Decode[HumanControlCommand](b)
	require.NoError(t, err)
	assert.Equal(t, cmd.TranslationalVelocity, back.TranslationalVelocity)
	assert.True(t, stamp.Equal(time.Time(back.Header.Stamp)))
}
