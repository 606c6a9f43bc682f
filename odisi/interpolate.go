package odisi

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/cristobaltapia/go-odisi/align"
)

// column is one named value series sampled on a shared timestamp grid.
type column struct {
	name   string
	values []float64
}

// Interpolate resamples every channel column onto the given target
// timestamps and returns a fresh table with a time column plus one
// interpolated column per channel. The receiver is not modified.
//
// With clip set, both the Dataset's timestamps and the targets are first
// restricted to the interval where the two domains overlap; targets outside
// it are dropped. Disjoint domains yield align.ErrNoOverlap. Without clip,
// every target is evaluated and targets outside the Dataset's domain receive
// the boundary value (see align.Resample).
//
// A Dataset with fewer than two rows yields align.ErrInsufficientData.
func (d *Dataset) Interpolate(targets []float64, clip bool) (dataframe.DataFrame, error) {
	cols := make([]column, len(d.channels))
	for j, name := range d.channels {
		cols[j] = column{name: name, values: d.data.Col(name).Float()}
	}
	return resampleColumns(d.Time(), cols, targets, clip)
}

// InterpolateDataFrame is Interpolate with the target timestamps drawn from
// a column of an external table, for example a load cell export.
// It returns ErrLabelNotFound if the table has no such column.
func (d *Dataset) InterpolateDataFrame(df dataframe.DataFrame, timeCol string, clip bool) (dataframe.DataFrame, error) {
	ts := df.Col(timeCol)
	if ts.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("time column %q: %w", timeCol, ErrLabelNotFound)
	}
	return d.Interpolate(ts.Float(), clip)
}

// InterpolateSignal resamples an external table's value columns onto the
// Dataset's own timestamp grid. The roles of Interpolate are reversed: the
// external table supplies the interpolation nodes and the Dataset supplies
// the targets. Clip semantics, the boundary-hold policy, and the error
// conditions mirror Interpolate. Neither table is modified.
func (d *Dataset) InterpolateSignal(df dataframe.DataFrame, timeCol string, clip bool) (dataframe.DataFrame, error) {
	ts := df.Col(timeCol)
	if ts.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("time column %q: %w", timeCol, ErrLabelNotFound)
	}

	names := df.Names()
	cols := make([]column, 0, len(names)-1)
	for _, name := range names {
		if name == timeCol {
			continue
		}
		cols = append(cols, column{name: name, values: df.Col(name).Float()})
	}
	return resampleColumns(ts.Float(), cols, d.Time(), clip)
}

// resampleColumns is the shared driver behind both interpolation directions:
// every column, sampled at nodes, is resampled onto targets. With clip set
// the nodes and targets are both restricted to their overlap interval first.
func resampleColumns(nodes []float64, cols []column, targets []float64, clip bool) (dataframe.DataFrame, error) {
	tgt := append([]float64(nil), targets...)

	var keep []int
	if clip && len(tgt) > 0 {
		iv, err := align.Overlap(nodes, tgt)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		keep = make([]int, 0, len(nodes))
		for i, t := range nodes {
			if iv.Contains(t) {
				keep = append(keep, i)
			}
		}
		tgt = iv.Clip(tgt)
		nodes = subset(nodes, keep)
	}

	out := make([]series.Series, 0, len(cols)+1)
	out = append(out, series.New(tgt, series.Float, TimeColumn))
	for _, c := range cols {
		vals := c.values
		if keep != nil {
			vals = subset(vals, keep)
		}
		res, err := align.Resample(nodes, vals, tgt)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("column %q: %w", c.name, err)
		}
		out = append(out, series.New(res, series.Float, c.name))
	}

	df := dataframe.New(out...)
	return df, df.Error()
}

func subset(vals []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
