package rms

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rms/dsp/buffer"
	"github.com/cwbudde/algo-rms/dsp/core"
	"github.com/cwbudde/algo-rms/dsp/sample"
)

// Engine computes the moving RMS of every channel of an interleaved
// stream and keeps the per-sample results of the most recent buffer.
type Engine struct {
	size     WindowSize
	capacity int

	windows []*Window
	results *buffer.Buffer

	// Scratch reused across updates.
	wave    []float64
	squares []float64
}

// NewEngine returns an Engine with the given window size.
//
// Without WithChannels the engine starts empty. Otherwise one silent
// window per configured channel is created at the capacity resolved from
// the configured sample rate, and the results buffer reserves room for
// one block, so the first Update with that shape does not allocate. No
// frames are stored until then.
//
// A timed size that cannot be resolved at the configured sample rate
// leaves the engine empty; the first Update reports the error.
func NewEngine(size WindowSize, opts ...EngineOption) *Engine {
	cfg := ApplyEngineOptions(opts...)

	e := &Engine{
		size:    size,
		results: buffer.New(0),
	}

	if cfg.Channels == 0 || cfg.Channels > math.MaxInt/cfg.BlockSize {
		return e
	}

	if validateSampleRate(size, cfg.SampleRate) != nil {
		return e
	}

	n := cfg.Channels * cfg.BlockSize
	e.capacity = size.Capacity(cfg.SampleRate)
	e.windows = make([]*Window, cfg.Channels)

	for ch := range e.windows {
		e.windows[ch] = NewWindow(e.capacity)
	}

	e.results.Reserve(n)
	e.wave = make([]float64, 0, n)
	e.squares = make([]float64, 0, n)

	return e
}

// NewEngineWithCapacity is NewEngine prepared for the given stream shape.
// Non-positive frames or sampleRate fall back to the defaults.
func NewEngineWithCapacity(size WindowSize, channels, frames int, sampleRate float64) *Engine {
	return NewEngine(size,
		WithChannels(channels),
		WithBlockSize(frames),
		WithSampleRate(sampleRate),
	)
}

// WindowSize returns the configured window size.
func (e *Engine) WindowSize() WindowSize {
	return e.size
}

// SetWindowSize replaces the window size. Existing windows are resized on
// the next Update.
func (e *Engine) SetWindowSize(size WindowSize) {
	e.size = size
}

// WindowDurationMs returns the window duration in milliseconds. ok is
// false when the engine uses a fixed sample count.
func (e *Engine) WindowDurationMs() (ms float64, ok bool) {
	return e.size.Millis()
}

// WindowCapacity returns the per-channel capacity resolved by the last
// reconciliation.
func (e *Engine) WindowCapacity() int {
	return e.capacity
}

// Channels returns the number of channels of the last Update.
func (e *Engine) Channels() int {
	return len(e.windows)
}

// Frames returns the number of frames held in the results buffer.
func (e *Engine) Frames() int {
	if len(e.windows) == 0 {
		return 0
	}

	return e.results.Len() / len(e.windows)
}

// ResetWindows silences the history of every channel without changing any
// sizes.
func (e *Engine) ResetWindows() {
	for _, w := range e.windows {
		w.Reset()
	}
}

// Update feeds an interleaved buffer of wave samples through the engine.
//
// samples must hold channels*frames values laid out frame-major. The
// window capacity is re-derived from sampleRate on every call, and the
// channel list, window capacities and results buffer are reconciled with
// the given shape before any sample is processed. Invalid input returns
// an error and leaves the engine untouched.
func (e *Engine) Update(samples []float64, channels, frames int, sampleRate float64) error {
	capacity, err := e.validate(len(samples), channels, frames, sampleRate)
	if err != nil {
		return err
	}

	e.reconcile(channels, frames, capacity)
	e.process(samples, frames)

	return nil
}

// UpdateSamples is Update for any supported host sample representation.
// Samples are converted into the engine's scratch buffer first.
func UpdateSamples[S sample.Type](e *Engine, samples []S, channels, frames int, sampleRate float64) error {
	capacity, err := e.validate(len(samples), channels, frames, sampleRate)
	if err != nil {
		return err
	}

	e.wave = sample.Convert(e.wave, samples)
	e.reconcile(channels, frames, capacity)
	e.process(e.wave, frames)

	return nil
}

func (e *Engine) validate(n, channels, frames int, sampleRate float64) (int, error) {
	if err := validateShape(n, channels, frames); err != nil {
		return 0, err
	}

	if err := validateSampleRate(e.size, sampleRate); err != nil {
		return 0, err
	}

	return e.size.Capacity(sampleRate), nil
}

// reconcile brings the engine to the requested shape with the minimal
// amount of work. It is a no-op when nothing changed.
func (e *Engine) reconcile(channels, frames, capacity int) {
	for len(e.windows) > channels {
		last := len(e.windows) - 1
		e.windows[last] = nil
		e.windows = e.windows[:last]
	}

	for _, w := range e.windows {
		if w.Capacity() != capacity {
			w.Resize(capacity)
		}
	}

	for len(e.windows) < channels {
		e.windows = append(e.windows, NewWindow(capacity))
	}

	e.capacity = capacity
	e.results.Resize(frames * channels)
}

func (e *Engine) process(wave []float64, frames int) {
	e.squares = core.EnsureLen(e.squares, len(wave))
	vecmath.MulBlock(e.squares, wave, wave)

	out := e.results.Samples()
	idx := 0

	for range frames {
		for _, w := range e.windows {
			out[idx] = w.nextSquare(e.squares[idx])
			idx++
		}
	}
}

// InterleavedRms returns the RMS at every sample of the last buffer, in
// the input's layout. The slice is owned by the engine and is overwritten
// by the next Update.
func (e *Engine) InterleavedRms() []float64 {
	return e.results.Samples()
}

// PerChannelAtFrame returns the RMS of each channel at the given frame.
// It panics if frame is not in [0, Frames()).
func (e *Engine) PerChannelAtFrame(frame int) []float64 {
	if frame < 0 || frame >= e.Frames() {
		panic(frameOutOfRange(frame, e.Frames()))
	}

	n := len(e.windows)
	start := frame * n

	return e.results.Samples()[start : start+n : start+n]
}

// AvgAtFrame returns the mean RMS across channels at the given frame.
// It panics if frame is not in [0, Frames()).
func (e *Engine) AvgAtFrame(frame int) float64 {
	levels := e.PerChannelAtFrame(frame)

	var total float64
	for _, v := range levels {
		total += v
	}

	return total / float64(len(levels))
}

// LastFrameIndex returns the index of the last stored frame. ok is false
// when the engine has no channels or no stored frames.
func (e *Engine) LastFrameIndex() (frame int, ok bool) {
	frames := e.Frames()
	if frames == 0 {
		return 0, false
	}

	return frames - 1, true
}

// AvgAtLastFrame is AvgAtFrame for the last frame, or 0 on an empty engine.
func (e *Engine) AvgAtLastFrame() float64 {
	frame, ok := e.LastFrameIndex()
	if !ok {
		return 0
	}

	return e.AvgAtFrame(frame)
}

// PerChannelAtLastFrame is PerChannelAtFrame for the last frame, or an
// empty slice on an empty engine.
func (e *Engine) PerChannelAtLastFrame() []float64 {
	frame, ok := e.LastFrameIndex()
	if !ok {
		return []float64{}
	}

	return e.PerChannelAtFrame(frame)
}

// AvgAtLastFrameDB returns AvgAtLastFrame in dBFS. Silence and empty
// engines report -Inf.
func (e *Engine) AvgAtLastFrameDB() float64 {
	return core.LinearToDB(e.AvgAtLastFrame())
}

// LevelsDB appends the dBFS level of every channel at the last frame to
// dst[:0] and returns it.
func (e *Engine) LevelsDB(dst []float64) []float64 {
	dst = dst[:0]
	for _, v := range e.PerChannelAtLastFrame() {
		dst = append(dst, core.LinearToDB(v))
	}

	return dst
}
