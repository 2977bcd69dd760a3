// Package rms measures the moving root-mean-square level of interleaved,
// multi-channel audio, sample by sample, as buffers arrive from a host.
//
// A [Window] keeps the squared history of one channel in a ring buffer
// together with its running sum, so each new sample costs O(1). An
// [Engine] owns one Window per channel and an interleaved results buffer
// with the same frame-major, channel-minor layout as its input.
//
// All values reported by this package are square-rooted RMS amplitudes,
// sqrt(sum/capacity). [Window.MeanSquare] is the only accessor returning
// the unscaled mean square.
//
// Window sizes are given either as a sample count ([Samples]) or as a
// duration ([Millis], [Duration]) that is re-derived against the sample
// rate passed to every [Engine.Update]. When a window grows, the new
// oldest slots are filled with the current mean square instead of zeros,
// so the reported level does not dip at the resize boundary; the padding
// is evicted first as real samples arrive.
//
// The Engine never allocates once the channel count, frame count and
// window capacity are stable, and never blocks. It is not safe for
// concurrent use; hosts reading results from another goroutine must
// snapshot them under their own synchronisation.
package rms
