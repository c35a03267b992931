// Package main provides the CLI entry point for sinkdump.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/sinkdump/pkg/adapters/logger"
	"github.com/user/sinkdump/pkg/adapters/memsource"
	"github.com/user/sinkdump/pkg/adapters/replaysource"
	"github.com/user/sinkdump/pkg/config"
	"github.com/user/sinkdump/pkg/dump"
	"github.com/user/sinkdump/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Dump    DumpCmd    `cmd:"" help:"Dump a frame sink to a file or stdout."`
	Gen     GenCmd     `cmd:"" help:"Generate test-pattern frames through the encoder into the output."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// LogFlags holds the logging options shared by subcommands.
type LogFlags struct {
	LogLevel       *string `short:"l" help:"Log level (debug, verbose, perf, info)."`
	Perf           bool    `help:"Enable performance messages (same as --log-level=perf)."`
	Verbose        bool    `help:"Enable verbose messages and lower (same as --log-level=verbose)."`
	Debug          bool    `short:"d" help:"Enable debug messages and lower (same as --log-level=debug)."`
	Quiet          bool    `short:"Q" help:"Suppress all log output."`
	ForceLogColors bool    `help:"Force color logging. Default: colored if stderr is a TTY."`
	NoLogColors    bool    `help:"Disable color logging."`
}

// DumpCmd defines the dump subcommand.
type DumpCmd struct {
	Sink        *string `short:"s" help:"ID of a sink registered in-process by an embedding program. No default."`
	SinkTimeout *int    `short:"t" help:"Timeout in seconds for the upcoming frame (1-60). Default: 1."`
	Output      *string `short:"o" help:"Filename to dump. Use '-' for stdout. Default: just consume the sink."`
	OutputJSON  bool    `short:"j" help:"Format output as JSON Lines. Requires an output destination."`
	Replay      string  `help:"Replay a JSON dump file instead of attaching to a sink."`
	Config      string  `type:"existingfile" help:"YAML config file; flags override its values."`

	LogFlags `embed:""`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("sinkdump"),
		kong.Description("Dump a frame sink to a file as raw payloads or JSON Lines."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the dump command.
func (cmd *DumpCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}
	if cmd.Replay == "" && cfg.Sink == "" {
		return fmt.Errorf("%s", l10n.T("missing sink name; use --sink or --replay"))
	}

	log := cmd.buildLogger(cfg)

	ctx, cancel := signalContext(log)
	defer cancel()

	var source ports.FrameSource
	if cmd.Replay != "" {
		source, err = replaysource.Open(cmd.Replay)
	} else {
		source, err = memsource.Attach(cfg.Sink)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := source.Close(); err != nil {
			log.Error("Can't close frame source: %v", err)
		}
	}()

	out, closer, err := openOutput(cfg.Output, log)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error("Can't close output file: %v", err)
			}
		}()
	}

	dumper := dump.New(log, dump.Options{
		Source:  source,
		Output:  out,
		JSON:    cfg.JSON,
		Timeout: time.Duration(cfg.SinkTimeout) * time.Second,
	})

	err = dumper.Run(ctx)
	switch {
	case errors.Is(err, io.EOF):
		log.Info("End of replay")
		err = nil
	case errors.Is(err, ports.ErrSourceClosed):
		log.Info("Sink drained")
		err = nil
	}
	log.Info("Bye-bye")
	return err
}

// buildConfig merges the optional config file with CLI overrides.
func (cmd *DumpCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Sink != nil {
		cfg.Sink = *cmd.Sink
	}
	if cmd.SinkTimeout != nil {
		cfg.SinkTimeout = *cmd.SinkTimeout
	}
	if cmd.Output != nil {
		cfg.Output = *cmd.Output
	}
	if cmd.OutputJSON {
		cfg.JSON = true
	}
	if cmd.LogLevel != nil {
		cfg.LogLevel = *cmd.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildLogger creates the logger from the shared log flags.
func (f *LogFlags) buildLogger(cfg config.Config) ports.Logger {
	if f.Quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	if f.Perf {
		level = ports.LevelPerf
	}
	if f.Verbose {
		level = ports.LevelVerbose
	}
	if f.Debug {
		level = ports.LevelDebug
	}
	mode := logger.ColorAuto
	if f.ForceLogColors {
		mode = logger.ColorAlways
	}
	if f.NoLogColors {
		mode = logger.ColorNever
	}
	return logger.NewConsole(level, mode)
}

// signalContext returns a context canceled by SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if sig == syscall.SIGTERM {
			log.Info("Stopping by SIGTERM")
		} else {
			log.Info("Stopping by SIGINT")
		}
		cancel()
	}()

	return ctx, cancel
}

// openOutput resolves the output destination. Stdout is selected by the
// literal "-" and is never closed; an empty path means no output.
func openOutput(path string, log ports.Logger) (io.Writer, io.Closer, error) {
	if path == "" {
		return nil, nil, nil
	}
	if path == "-" {
		log.Info("Using output: <stdout>")
		return os.Stdout, nil, nil
	}
	log.Info("Using output: %s", path)
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file: %w", err)
	}
	return file, file, nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("sinkdump version %s", version))
	return nil
}
