package odisi

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
)

var (
	// ErrFormat indicates a malformed or unrecognized ODiSI export.
	ErrFormat = errors.New("malformed ODiSI export")

	// ErrLabelNotFound indicates an unknown gage or segment label.
	ErrLabelNotFound = errors.New("label not found")
)

// TimeColumn is the name of the timestamp column in every Dataset and in
// every interpolation result. Timestamps are seconds since the first row.
const TimeColumn = "time"

// Metadata holds the key/value header block of an export, with the fields
// the instrument always writes parsed out.
type Metadata struct {
	Channel   int     // instrument channel number
	Rate      float64 // measurement rate per channel, Hz
	GagePitch float64 // spacing between sensing points, mm
	Raw       map[string]string
}

// span is the closed range of channel-column indices covered by a segment.
type span struct {
	first, last int
}

// Dataset is one parsed ODiSI export: a time column plus one float column
// per measurement channel, with label maps for gages and segments built at
// load time. Interpolation methods return fresh tables and never modify the
// receiver's data.
type Dataset struct {
	data         dataframe.DataFrame
	channels     []string        // channel column labels, in file order
	gages        map[string]int  // gage label -> index into channels
	segments     map[string]span // segment label -> channel index range
	gageOrder    []string
	segmentOrder []string
	x            []float64 // position along the fiber per channel, m
	units        []string  // unit string per channel
	meta         Metadata
	start        time.Time // zero when the file carried relative timestamps
}

// Data returns the full data table (time column plus all channels).
func (d *Dataset) Data() dataframe.DataFrame {
	return d.data
}

// Len returns the number of timestamped rows.
func (d *Dataset) Len() int {
	return d.data.Nrow()
}

// Time returns the timestamps in seconds since the first row.
func (d *Dataset) Time() []float64 {
	return d.data.Col(TimeColumn).Float()
}

// X returns the position along the fiber of every channel column, in meters.
func (d *Dataset) X() []float64 {
	return append([]float64(nil), d.x...)
}

// Units returns the unit string of every channel column.
func (d *Dataset) Units() []string {
	return append([]string(nil), d.units...)
}

// Metadata returns the parsed metadata block.
func (d *Dataset) Metadata() Metadata {
	return d.meta
}

// Start returns the absolute timestamp of the first row, or the zero time
// when the export used relative timestamps.
func (d *Dataset) Start() time.Time {
	return d.start
}

// Gages returns the distinct gage labels in file order.
func (d *Dataset) Gages() []string {
	return append([]string(nil), d.gageOrder...)
}

// Segments returns the distinct segment labels in file order.
func (d *Dataset) Segments() []string {
	return append([]string(nil), d.segmentOrder...)
}

// Gage returns the data column of the given gage.
// It returns ErrLabelNotFound if no gage has that label.
func (d *Dataset) Gage(label string) (dataframe.DataFrame, error) {
	return d.gage(label, false)
}

// GageWithTime returns the time column alongside the gage's data column.
func (d *Dataset) GageWithTime(label string) (dataframe.DataFrame, error) {
	return d.gage(label, true)
}

func (d *Dataset) gage(label string, withTime bool) (dataframe.DataFrame, error) {
	j, ok := d.gages[label]
	if !ok {
		return dataframe.DataFrame{}, fmt.Errorf("gage %q: %w", label, ErrLabelNotFound)
	}
	names := []string{d.channels[j]}
	if withTime {
		names = append([]string{TimeColumn}, names...)
	}
	df := d.data.Select(names)
	return df, df.Error()
}

// Segment returns the column block of the given segment together with the
// x-coordinates of its sensing points.
// It returns ErrLabelNotFound if no segment has that label.
func (d *Dataset) Segment(label string) (dataframe.DataFrame, []float64, error) {
	return d.segment(label, false)
}

// SegmentWithTime returns the time column alongside the segment's columns.
func (d *Dataset) SegmentWithTime(label string) (dataframe.DataFrame, []float64, error) {
	return d.segment(label, true)
}

func (d *Dataset) segment(label string, withTime bool) (dataframe.DataFrame, []float64, error) {
	sp, ok := d.segments[label]
	if !ok {
		return dataframe.DataFrame{}, nil, fmt.Errorf("segment %q: %w", label, ErrLabelNotFound)
	}
	names := make([]string, 0, sp.last-sp.first+2)
	if withTime {
		names = append(names, TimeColumn)
	}
	names = append(names, d.channels[sp.first:sp.last+1]...)
	x := append([]float64(nil), d.x[sp.first:sp.last+1]...)
	df := d.data.Select(names)
	return df, x, df.Error()
}

// ReverseSegment flips the direction of a segment: the values of its sensing
// points swap end for end while the column labels and x-coordinates keep
// their order. Applying it twice restores the original data.
func (d *Dataset) ReverseSegment(label string) error {
	sp, ok := d.segments[label]
	if !ok {
		return fmt.Errorf("segment %q: %w", label, ErrLabelNotFound)
	}

	out := d.data.Copy()
	for i := sp.first; i <= sp.last; i++ {
		src := sp.last - (i - sp.first)
		s := d.data.Col(d.channels[src])
		s.Name = d.channels[i]
		out = out.Mutate(s)
	}
	if out.Error() != nil {
		return out.Error()
	}
	d.data = out
	return nil
}
