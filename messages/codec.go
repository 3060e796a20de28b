package messages

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Encode serializes a message into its JSON wire form.
func Encode[T any](msg T) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", msg, err)
	}
	return b, nil
}

// Decode parses the JSON wire form of a message.
func Decode[T any](data []byte) (T, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode %T: %w", msg, err)
	}
	return msg, nil
}
