// Command rmsmeter prints the moving RMS level of a WAV file or of the
// default audio input device.
//
// Usage:
//
//	rmsmeter [flags] file <input.wav>
//	rmsmeter [flags] live
//
// Settings come from an optional YAML file (-config); flags given on the
// command line override it.
//
// Examples:
//
//	rmsmeter -window 50ms file take1.wav
//	rmsmeter -samples 1024 -units linear file take1.wav
//	rmsmeter -config meter.yaml -passthrough live
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-rms/internal/config"
	"github.com/cwbudde/algo-rms/internal/report"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	configPath := flag.String("config", "", "YAML settings file")
	window := flag.Duration("window", 0, "RMS window duration, e.g. 300ms")
	samples := flag.Int("samples", 0, "RMS window length in samples (instead of -window)")
	rate := flag.Float64("rate", 0, "sample rate in Hz for live metering")
	channels := flag.Int("channels", 0, "channel count for live metering")
	frames := flag.Int("frames", 0, "frames per processing buffer")
	every := flag.Int("every", 0, "print one row every N buffers")
	units := flag.String("units", "", "level units: db or linear")
	passthrough := flag.Bool("passthrough", false, "copy live input to the output device")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rmsmeter [flags] file <input.wav>\n")
		fmt.Fprintf(os.Stderr, "       rmsmeter [flags] live\n\n")
		fmt.Fprintf(os.Stderr, "Prints the moving RMS level per channel.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Error("config error", "error", err)
			os.Exit(1)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "window":
			cfg.WindowDuration = *window
			cfg.WindowSamples = 0
		case "samples":
			cfg.WindowSamples = *samples
			cfg.WindowDuration = 0
		case "rate":
			cfg.SampleRate = *rate
		case "channels":
			cfg.Channels = *channels
		case "frames":
			cfg.Frames = *frames
		case "every":
			cfg.PrintEvery = *every
		case "units":
			cfg.Units = config.Units(*units)
		case "passthrough":
			cfg.Passthrough = *passthrough
		}
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rep := report.New(os.Stdout, cfg.Units)

	var err error

	switch flag.Arg(0) {
	case "file":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(2)
		}
		err = meterFile(ctx, flag.Arg(1), cfg, rep, logger)
	case "live":
		err = meterLive(ctx, cfg, rep, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("metering failed", "error", err)
		os.Exit(1)
	}
}
