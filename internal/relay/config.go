package relay

import (
	"fmt"
	"strconv"
)

const (
	// DefaultInputTopic is where pedsim publishes the simulated agents.
	DefaultInputTopic = "/pedsim_simulator/simulated_agents"
	// DefaultCommandTopicFormat names the command topic of the human with the given index.
	DefaultCommandTopicFormat = "/human%d/command"
)

// Config describes the topics the relay connects and how many humans it drives.
type Config struct {
	// HumanCount is the number of command topics. Agent ids in [1, HumanCount]
	// are relayed; a non-positive count relays nothing.
	HumanCount int
	// InputTopic carries the AgentStates batches.
	InputTopic string
	// CommandTopicFormat is a fmt pattern with a single integer verb,
	// expanded with the 0-based human index.
	CommandTopicFormat string
}

// DefaultConfig returns a Config for humanCount humans using the default topic names.
func DefaultConfig(humanCount int) Config {
	return Config{
		HumanCount:         humanCount,
		InputTopic:         DefaultInputTopic,
		CommandTopicFormat: DefaultCommandTopicFormat,
	}
}

// CommandTopic returns the name of the command topic for the human at index.
func (c Config) CommandTopic(index int) string {
	format := c.CommandTopicFormat
	if format == "" {
		format = DefaultCommandTopicFormat
	}
	return fmt.Sprintf(format, index)
}

// ParseHumanCount parses the human count given on the command line.
// Negative and zero counts are accepted; they yield an empty registry.
func ParseHumanCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid human count %q: %w", arg, err)
	}
	return n, nil
}
