// Package buffer provides a reusable float64 buffer whose length can be
// reconciled in place without reallocating in steady state, and a pool
// of such buffers for handing snapshots between goroutines.
package buffer
