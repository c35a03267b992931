package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/user/sinkdump/pkg/adapters/memsource"
	"github.com/user/sinkdump/pkg/adapters/testpattern"
	"github.com/user/sinkdump/pkg/config"
	"github.com/user/sinkdump/pkg/dump"
	"github.com/user/sinkdump/pkg/encoder"
	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

// GenCmd defines the gen subcommand: it renders test-pattern frames,
// compresses them through the encoder dispatcher, and feeds them to the
// same consumer loop the dump command uses.
type GenCmd struct {
	Width   int    `short:"W" default:"640" help:"Frame width."`
	Height  int    `short:"H" default:"480" help:"Frame height."`
	FPS     int    `default:"30" help:"Generation rate in frames per second."`
	Frames  int    `short:"n" default:"90" help:"Number of frames to generate (0 = until interrupted)."`
	Encoder string `default:"software" help:"Encoder backend name."`
	Quality int    `short:"q" default:"80" help:"JPEG quality (1-100)."`
	Workers int    `default:"0" help:"Compression workers (0 = all CPUs)."`

	Output     *string `short:"o" help:"Filename to dump. Use '-' for stdout. Default: just consume the frames."`
	OutputJSON bool    `short:"j" help:"Format output as JSON Lines. Requires an output destination."`

	LogFlags `embed:""`
}

// Run executes the gen command.
func (cmd *GenCmd) Run() error {
	cfg := config.Defaults()
	cfg.Quality = cmd.Quality
	cfg.Encoder = cmd.Encoder
	if cmd.Workers > 0 {
		cfg.Workers = cmd.Workers
	} else {
		cfg.Workers = runtime.NumCPU()
	}
	if cmd.Output != nil {
		cfg.Output = *cmd.Output
	}
	cfg.JSON = cmd.OutputJSON
	if cmd.LogLevel != nil {
		cfg.LogLevel = *cmd.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cmd.Width < 2 || cmd.Height < 2 {
		return fmt.Errorf("invalid frame geometry %dx%d", cmd.Width, cmd.Height)
	}
	if cmd.FPS < 1 || cmd.FPS > 1000 {
		return fmt.Errorf("invalid fps=%d: min=1, max=1000", cmd.FPS)
	}

	encType := encoder.ParseType(cfg.Encoder, nil)
	if encType == encoder.TypeUnknown {
		return fmt.Errorf("unknown encoder type %q", cfg.Encoder)
	}

	log := cmd.buildLogger(cfg)

	ctx, cancel := signalContext(log)
	defer cancel()

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

	dev := &encoder.Device{
		Workers: cfg.Workers,
		Geometry: ports.Geometry{
			Width:  cmd.Width,
			Height: cmd.Height,
			Format: frame.FormatRGB24,
			Stride: cmd.Width * 3,
		},
	}

	disp := encoder.New(log,
		encoder.WithType(encType),
		encoder.WithQuality(cfg.Quality),
	)
	disp.Prepare(dev)
	defer disp.Close()
	disp.PrepareLive(dev)

	// One buffer per worker; a buffer index doubles as the worker ID.
	dev.Buffers = make([]*frame.Frame, dev.Workers)
	for i := range dev.Buffers {
		dev.Buffers[i] = frame.New()
	}

	source := memsource.New(2 * dev.Workers)

	log.Info("Generating %d test frames at %dx%d", cmd.Frames, cmd.Width, cmd.Height)
	go cmd.produce(ctx, log, disp, dev, source)

	dumper := dump.New(log, dump.Options{
		Source:  source,
		Output:  out,
		JSON:    cfg.JSON,
		Timeout: time.Second,
	})

	err = dumper.Run(ctx)
	if errors.Is(err, ports.ErrSourceClosed) {
		err = nil
	}
	log.Info("Bye-bye")
	return err
}

// produce renders frames at the configured rate and compresses each one
// on a worker goroutine before handing it to the source. Compressed
// frames reach the source in generation order even when workers finish
// out of order.
func (cmd *GenCmd) produce(
	ctx context.Context,
	log ports.Logger,
	disp *encoder.Dispatcher,
	dev *encoder.Device,
	source *memsource.Source,
) {
	type result struct {
		index int
		ok    bool
	}

	// Free buffer indices; an index is reclaimed once its frame has been
	// handed over or its compression failed.
	free := make(chan int, dev.Workers)
	for i := range dev.Buffers {
		free <- i
	}

	// One completion channel per in-flight frame, queued in generation
	// order. A single forwarder drains them sequentially, so the source
	// sees monotonic grab timestamps.
	order := make(chan chan result, dev.Workers)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for done := range order {
			res := <-done
			if res.ok && !source.Put(dev.Buffers[res.index]) {
				log.Warn("Frame dropped: consumer is falling behind")
			}
			free <- res.index
		}
	}()

	var wg sync.WaitGroup
	defer func() {
		wg.Wait()
		close(order)
		<-forwarded
		source.CloseWith(nil)
	}()

	gen := testpattern.New(cmd.Width, cmd.Height)
	ticker := time.NewTicker(time.Second / time.Duration(cmd.FPS))
	defer ticker.Stop()

	for n := 0; cmd.Frames == 0 || n < cmd.Frames; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		index := <-free
		gen.Next(dev.Buffers[index])

		done := make(chan result, 1)
		order <- done

		wg.Add(1)
		go func(index int, done chan<- result) {
			defer wg.Done()
			err := disp.CompressBuffer(dev, index, index)
			if err != nil {
				log.Error("Can't compress frame: %v", err)
			}
			done <- result{index: index, ok: err == nil}
		}(index, done)
	}

	log.Info("Generated %d frames", gen.Count())
}
