// Package goodisi provides reading and time-alignment of ODiSI fiber-optic
// strain exports.
//
// GoODiSI parses the tab-separated files exported by a Luna ODiSI
// fiber-optic strain instrument into a tabular Dataset, gives label-based
// access to individual gages and to contiguous sensing segments, and aligns
// the sensor data against independently recorded signals (for example load
// cell data) by resampling either series onto the other's timestamp grid.
//
// # Quick Start
//
// Load an export and look up a gage:
//
//	ds, err := odisi.ReadFile("experiment_ch1.tsv", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	start, _ := ds.Gage("Start")
//
// Align the sensor data with a load cell table:
//
//	synced, err := ds.InterpolateDataFrame(load, "time [s]", true)
//
// or bring the load signal onto the sensor's own grid:
//
//	signal, err := ds.InterpolateSignal(load, "time [s]", true)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - odisi: ODiSI export reader, the Dataset container, and gage/segment
//     accessors
//   - align: overlap-interval resolution and linear resampling of one
//     sampled signal onto another's timestamp grid
//
// Interpolation outside a series' native time domain holds the nearest
// boundary value; see align.Resample for the exact contract.
package goodisi
