package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-rms/dsp/buffer"
	"github.com/cwbudde/algo-rms/internal/config"
	"github.com/cwbudde/algo-rms/internal/report"
	"github.com/cwbudde/algo-rms/measure/rms"
)

// snapshot is one row of levels handed from the audio callback to the
// printing loop.
type snapshot struct {
	avg    float64
	levels *buffer.Buffer
}

// meterLive meters the default input device until ctx is cancelled.
//
// The engine is driven exclusively by the audio callback. Every
// cfg.PrintEvery buffers the callback copies the last frame's levels into
// a pooled buffer and hands it to this goroutine for printing.
func meterLive(ctx context.Context, cfg config.Config, rep *report.Reporter, logger *slog.Logger) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	engine := rms.NewEngineWithCapacity(cfg.WindowSize(), cfg.Channels, cfg.Frames, cfg.SampleRate)
	pool := buffer.NewPool()
	snapshots := make(chan snapshot, 4)

	var (
		buffers int
		failed  atomic.Int64
		dropped atomic.Int64
	)

	process := func(in, out []float32) {
		if cfg.Passthrough {
			copy(out, in)
		} else {
			clear(out)
		}

		if err := rms.UpdateSamples(engine, in, cfg.Channels, len(in)/cfg.Channels, cfg.SampleRate); err != nil {
			failed.Add(1)
			return
		}

		buffers++
		if buffers%cfg.PrintEvery != 0 {
			return
		}

		snap := snapshot{
			avg:    engine.AvgAtLastFrame(),
			levels: pool.Snapshot(engine.PerChannelAtLastFrame()),
		}
		select {
		case snapshots <- snap:
		default:
			pool.Put(snap.levels)
			dropped.Add(1)
		}
	}

	stream, err := portaudio.OpenDefaultStream(cfg.Channels, cfg.Channels, cfg.SampleRate, cfg.Frames, process)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}

	logger.Info("metering input",
		"channels", cfg.Channels,
		"sample_rate", cfg.SampleRate,
		"frames", cfg.Frames,
		"window", cfg.WindowSize().String(),
		"passthrough", cfg.Passthrough,
	)

	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			if err := stream.Stop(); err != nil {
				return fmt.Errorf("stop stream: %w", err)
			}

			logger.Info("stopped",
				"seconds", time.Since(start).Seconds(),
				"failed_buffers", failed.Load(),
				"dropped_rows", dropped.Load(),
			)

			return nil
		case snap := <-snapshots:
			err := rep.Row(time.Since(start).Seconds(), snap.avg, snap.levels.Samples())
			pool.Put(snap.levels)

			if err != nil {
				return err
			}
		}
	}
}
