package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-rms/internal/config"
	"github.com/cwbudde/algo-rms/internal/report"
	"github.com/cwbudde/algo-rms/measure/rms"
)

// meterFile streams a PCM WAV file through the engine in cfg.Frames
// sized chunks.
func meterFile(ctx context.Context, path string, cfg config.Config, rep *report.Reporter, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return fmt.Errorf("%s: not a valid WAV file", path)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return fmt.Errorf("%s: missing audio format", path)
	}

	sampleRate := float64(format.SampleRate)
	logger.Info("metering file",
		"path", path,
		"channels", format.NumChannels,
		"sample_rate", format.SampleRate,
		"bit_depth", dec.BitDepth,
		"window", cfg.WindowSize().String(),
	)

	engine := rms.NewEngineWithCapacity(cfg.WindowSize(), format.NumChannels, cfg.Frames, sampleRate)

	data := make([]int, cfg.Frames*format.NumChannels)
	buf := &audio.IntBuffer{Format: format, Data: data, SourceBitDepth: int(dec.BitDepth)}

	var frames int64

	for chunk := 0; ; chunk++ {
		if err := ctx.Err(); err != nil {
			return nil
		}

		buf.Data = data
		n, err := dec.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: decode: %w", path, err)
		}
		if n == 0 {
			break
		}

		// Drop a trailing partial frame from truncated files.
		buf.Data = data[:n-n%format.NumChannels]
		if err := engine.UpdateBuffer(buf); err != nil {
			return err
		}
		frames += int64(engine.Frames())

		if chunk%cfg.PrintEvery == 0 {
			if err := rep.Engine(float64(frames)/sampleRate, engine); err != nil {
				return err
			}
		}
	}

	logger.Info("done", "frames", frames, "seconds", float64(frames)/sampleRate)

	return nil
}
