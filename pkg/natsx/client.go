package natsx

import (
	"cmp"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
)

// ClientName is the connection name reported to the NATS server.
const ClientName = "pedsim-proxy"

// URL returns the server URL to connect to: the NATS_URL environment variable
// when set, nats.DefaultURL otherwise.
func URL() string {
	return cmp.Or(os.Getenv("NATS_URL"), nats.DefaultURL)
}

// NewClient creates a new connection to the NATS server at url. An empty url
// falls back to URL(). When no options are given the connection is named
// after the proxy and compression is enabled.
//
// Returns:
//   - *nats.Conn: A pointer to the established NATS connection.
//   - error: An error if the connection could not be established.
func NewClient(url string, opts ...nats.Option) (*nats.Conn, error) {
	if len(opts) == 0 {
		opts = append(opts, nats.Name(ClientName), nats.Compression(true))
	}
	return nats.Connect(cmp.Or(url, URL()), opts...)
}

// Subject converts a ROS style topic name into a NATS subject:
// the leading slash is dropped and the remaining path separators become
// subject token separators, so /human0/command maps to human0.command.
func Subject(topic string) string {
	return strings.ReplaceAll(strings.Trim(topic, "/"), "/", ".")
}
