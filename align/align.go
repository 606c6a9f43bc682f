package align

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	// ErrInsufficientData indicates fewer than two distinct interpolation
	// nodes, which leaves the interpolant undefined.
	ErrInsufficientData = errors.New("fewer than two interpolation nodes")

	// ErrNoOverlap indicates that the two time domains share no interval.
	ErrNoOverlap = errors.New("time ranges do not overlap")

	// ErrLengthMismatch indicates node and value slices of different lengths.
	ErrLengthMismatch = errors.New("nodes and values have different lengths")

	// ErrUnsortedNodes indicates interpolation nodes not in ascending order.
	ErrUnsortedNodes = errors.New("nodes are not in ascending order")
)

// Interval is a closed time interval [Lo, Hi] in seconds.
type Interval struct {
	Lo, Hi float64
}

// Overlap computes the interval shared by two timestamp sets:
// [max(min(a), min(b)), min(max(a), max(b))]. The inputs need not be sorted.
//
// It returns ErrNoOverlap if the two domains are disjoint; callers requesting
// clipped interpolation must treat that as fatal for the call. An empty input
// yields ErrInsufficientData.
func Overlap(a, b []float64) (Interval, error) {
	if len(a) == 0 || len(b) == 0 {
		return Interval{}, fmt.Errorf("empty timestamp set: %w", ErrInsufficientData)
	}
	iv := Interval{
		Lo: math.Max(floats.Min(a), floats.Min(b)),
		Hi: math.Min(floats.Max(a), floats.Max(b)),
	}
	if iv.Lo > iv.Hi {
		return Interval{}, fmt.Errorf("[%g, %g] and [%g, %g]: %w",
			floats.Min(a), floats.Max(a), floats.Min(b), floats.Max(b), ErrNoOverlap)
	}
	return iv, nil
}

// Contains reports whether t lies inside the interval.
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Lo && t <= iv.Hi
}

// Clip returns a new slice with the timestamps of ts that lie inside the
// interval, preserving order. The input is not modified.
func (iv Interval) Clip(ts []float64) []float64 {
	out := make([]float64, 0, len(ts))
	for _, t := range ts {
		if iv.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Resample evaluates the piecewise-linear interpolant through the
// (nodes, values) pairs at every target timestamp and returns the resampled
// values, one per target. Neither input is modified.
//
// Nodes must be non-decreasing; consecutive duplicate node timestamps
// collapse to their first value. Targets outside [nodes[0], nodes[last]]
// receive the nearest boundary value (edge-value hold). This hold policy is
// part of the contract and applies in both resampling directions.
//
// Resample returns ErrLengthMismatch if nodes and values differ in length,
// ErrUnsortedNodes if the nodes decrease anywhere, and ErrInsufficientData
// if fewer than two distinct nodes remain.
func Resample(nodes, values, targets []float64) ([]float64, error) {
	if len(nodes) != len(values) {
		return nil, fmt.Errorf("%d nodes but %d values: %w",
			len(nodes), len(values), ErrLengthMismatch)
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i] < nodes[i-1] {
			return nil, fmt.Errorf("node %g after %g: %w", nodes[i], nodes[i-1], ErrUnsortedNodes)
		}
	}
	xs, ys := dedupe(nodes, values)
	if len(xs) < 2 {
		return nil, fmt.Errorf("%d distinct nodes: %w", len(xs), ErrInsufficientData)
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit interpolant: %w", err)
	}

	out := make([]float64, len(targets))
	for i, t := range targets {
		out[i] = pl.Predict(t)
	}
	return out, nil
}

// dedupe collapses consecutive duplicate node timestamps, keeping the first
// value of each run, so the node sequence becomes strictly increasing.
func dedupe(nodes, values []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(nodes))
	ys := make([]float64, 0, len(nodes))
	for i := range nodes {
		if len(xs) > 0 && nodes[i] == xs[len(xs)-1] {
			continue
		}
		xs = append(xs, nodes[i])
		ys = append(ys, values[i])
	}
	return xs, ys
}
