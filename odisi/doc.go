// Package odisi reads ODiSI fiber-optic strain exports into a tabular Dataset.
//
// The ODiSI instrument exports a tab-separated file: a block of "Key: value"
// metadata lines followed by a table whose header names each measurement
// channel. A bare header label ("Start") is a standalone gage; a label of the
// form "Name[k]" is sensing point k of segment "Name". The reader parses the
// file losslessly into a Dataset backed by a gota DataFrame, with the label
// maps, x-coordinates, and instrument metadata built once at load time.
//
// # Loading
//
// Load an export from disk:
//
//	ds, err := odisi.ReadFile("experiment_ch1.tsv", nil)
//
// or from any reader, with explicit options:
//
//	opts := odisi.DefaultReadOptions()
//	ds, err := odisi.Read(f, opts)
//
// # Label Access
//
// Look up channels by label:
//
//	fmt.Println(ds.Gages())    // ["Start", "End", ...]
//	fmt.Println(ds.Segments()) // ["A1", "A2", ...]
//
//	start, err := ds.Gage("Start")
//	block, x, err := ds.Segment("A1")
//
// # Time Alignment
//
// Resample the sensor data onto an external timestamp grid, clipped to the
// overlapping time window:
//
//	synced, err := ds.Interpolate(loadTimes, true)
//
// or bring an external signal onto the sensor's own grid:
//
//	signal, err := ds.InterpolateSignal(load, "time [s]", true)
//
// Both directions share the resampling contract of the align package:
// linear interpolation inside the node domain, boundary value held outside.
package odisi
