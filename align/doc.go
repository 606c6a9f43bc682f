// Package align resamples one sampled signal onto another's timestamp grid.
//
// This package holds the time-alignment core: computing the interval where
// two time domains overlap, clipping timestamp sets to it, and evaluating a
// piecewise-linear interpolant at arbitrary target timestamps.
//
// # Overlap and Clipping
//
// Compute the shared interval of two timestamp sets:
//
//	iv, err := align.Overlap(sensorTime, loadTime)
//	if errors.Is(err, align.ErrNoOverlap) {
//	    // the two recordings do not cover a common window
//	}
//	inside := iv.Clip(loadTime)
//
// # Resampling
//
// Evaluate the linear interpolant through (nodes, values) at new timestamps:
//
//	out, err := align.Resample(
//	    []float64{0, 1, 2, 3},
//	    []float64{0, 10, 20, 30},
//	    []float64{0.5, 1.5, 2.5},
//	)
//	// out == [5, 15, 25]
//
// Targets outside the node domain hold the nearest boundary value rather
// than extrapolating linearly; the same policy applies whichever series
// supplies the grid.
package align
