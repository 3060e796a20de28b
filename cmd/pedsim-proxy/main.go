// Command pedsim-proxy relays pedestrian simulator agent states to the
// per-human command topics of the multirobot simulator.
//
// Usage:
//
//	pedsim-proxy <human_count> [--nats-url URL] [--input-topic TOPIC] [--command-topic-format FORMAT]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casualjim/pedsim-proxy/internal/broker"
	"github.com/casualjim/pedsim-proxy/internal/relay"
	"github.com/casualjim/pedsim-proxy/messages"
	"github.com/casualjim/pedsim-proxy/pkg/natsx"
	"github.com/casualjim/pedsim-proxy/pkg/slogx"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var log zerolog.Logger

func init() {
	setupLogging(os.Stderr, slog.LevelInfo)
}

// setupLogging routes slog through a zerolog console writer on w.
func setupLogging(w io.Writer, level slog.Level) {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Stamp, NoColor: !isTerminal(w)}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: level}),
	))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type options struct {
	natsURL            string
	inputTopic         string
	commandTopicFormat string
	logLevel           string
	local              bool
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "pedsim-proxy <human_count>",
		Short: "Relay pedsim agent states to per-human command topics",
		Long: `Subscribes to the agent states published by the pedestrian simulator and
republishes the velocity and position of every agent with an id in
[1, human_count] on that human's command topic.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
			}
			setupLogging(stderr, level)

			humans, err := relay.ParseHumanCount(args[0])
			if err != nil {
				return err
			}
			cfg := relay.Config{
				HumanCount:         humans,
				InputTopic:         o.inputTopic,
				CommandTopicFormat: o.commandTopicFormat,
			}
			return run(cmd.Context(), cfg, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.natsURL, "nats-url", natsx.URL(), "NATS server to relay over")
	flags.StringVar(&o.inputTopic, "input-topic", relay.DefaultInputTopic, "topic carrying the simulated agent states")
	flags.StringVar(&o.commandTopicFormat, "command-topic-format", relay.DefaultCommandTopicFormat, "name pattern of the per-human command topics")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&o.local, "local", false, "use an in-process broker instead of NATS")
	return cmd
}

// run wires the relay to its brokers and blocks until ctx is done.
func run(ctx context.Context, cfg relay.Config, o options) error {
	var (
		states   broker.Broker[messages.AgentStates]
		commands broker.Broker[messages.HumanControlCommand]
	)
	if o.local {
		states = broker.Local[messages.AgentStates]()
		commands = broker.Local[messages.HumanControlCommand]()
	} else {
		nc, err := natsx.NewClient(o.natsURL)
		if err != nil {
			return fmt.Errorf("connect to nats at %s: %w", o.natsURL, err)
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				slog.Error("failed to drain nats connection", slogx.Error(err))
			}
		}()
		states = broker.NATS[messages.AgentStates](nc)
		commands = broker.NATS[messages.HumanControlCommand](nc)
	}

	registry := relay.NewRegistry(ctx, commands, cfg)
	r, err := relay.New(registry)
	if err != nil {
		return err
	}
	slog.Debug("command topics ready", slog.Any("topics", registry.Names()))

	sub, err := r.Start(ctx, states, cfg.InputTopic)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	<-ctx.Done()
	slog.Info("shutting down", slog.String("reason", context.Cause(ctx).Error()))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		slog.Error("pedsim-proxy failed", slogx.Error(err))
		stop()
		os.Exit(1)
	}
}
