// Package cmd wires up the CLI flags and starts the relay.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"gorelay/config"
	"gorelay/internal/metrics"
	"gorelay/internal/relay"
	"gorelay/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X gorelay/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the relay until the context is
// cancelled or the listener fails.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("gorelay", flag.ContinueOnError)

	// ── listener ─────────────────────────────────────────────────
	fs.IntVarP(&cfg.WSPort, "ws-port", "w", cfg.WSPort, "Serve a WebSocket gateway on this port (0 = off)")

	// ── output ───────────────────────────────────────────────────
	var statsSec int
	fs.IntVar(&statsSec, "stats", int(cfg.StatsInterval/time.Second), "Log a stats snapshot every N seconds (0 = off)")
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Only print errors")
	fs.BoolVar(&cfg.Timestamps, "timestamps", cfg.Timestamps, "Prefix log lines with timestamps")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("gorelay %s\n", version)
		return nil
	}

	if statsSec > 0 {
		cfg.StatsInterval = time.Duration(statsSec) * time.Second
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbosity())
	if cfg.Timestamps {
		logger.SetTimestamps(true)
	}
	stats := metrics.New()

	r := relay.New(cfg, logger, stats)
	return r.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

// parsePositional handles the classic invocation: gorelay [port] [address].
func parsePositional(cfg *config.Config, remaining []string) error {
	switch len(remaining) {
	case 0: // gorelay
	case 2:
		cfg.Address = remaining[1]
		fallthrough
	case 1:
		port, err := config.ParsePort(remaining[0])
		if err != nil {
			return err
		}
		cfg.Port = port
	default:
		return fmt.Errorf("too many arguments (use --help for usage)")
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gorelay – TCP broadcast relay v%s

Every chunk received from one client is tagged with its connection id
and rebroadcast to all connected clients, the sender included.

Usage:
  gorelay [options] [port] [address]

  port     listen port      (default %d)
  address  bind IP literal  (default %s)

Options:
`, version, config.DefaultPort, config.DefaultAddress)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  gorelay                         Relay on 127.0.0.1:1300
  gorelay 9000                    Relay on 127.0.0.1:9000
  gorelay 9000 0.0.0.0            Relay on all interfaces
  gorelay -w 9001 -v --stats 30   WebSocket gateway plus periodic stats
`)
}
