package odisi

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Channel labels of the form "Name[k]" mark sensing point k of segment "Name".
var segmentPattern = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

// Metadata keys the instrument always writes.
const (
	keyChannel   = "Channel"
	keyRate      = "Measurement Rate per Channel"
	keyGagePitch = "Gage Pitch (mm)"
)

// ReadOptions holds options for loading an ODiSI export.
type ReadOptions struct {
	// TimeFormats are the layouts tried, in order, when the timestamp
	// column holds absolute datetimes instead of float seconds.
	TimeFormats []string
}

// DefaultReadOptions returns the options used when none are given.
func DefaultReadOptions() *ReadOptions {
	return &ReadOptions{
		TimeFormats: []string{
			"2006-01-02 15:04:05.999999",
			time.RFC3339Nano,
			"2006-01-02T15:04:05.999999",
		},
	}
}

// ReadFile reads an ODiSI export from the given path.
func ReadFile(path string, opts *ReadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, opts)
}

// Read parses an ODiSI export.
//
// The file starts with "Key: value" metadata lines; the first line containing
// a tab starts the table. The table holds a header row naming the time column
// and every channel, a units row, a row with the x-coordinate of every
// channel (meters along the fiber), and then the data rows. Timestamps are
// either float seconds or absolute datetimes; datetimes are converted to
// seconds since the first row and the absolute start is kept. Any deviation
// from this layout yields ErrFormat.
func Read(r io.Reader, opts *ReadOptions) (*Dataset, error) {
	if opts == nil {
		opts = DefaultReadOptions()
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	meta := make(map[string]string)
	i := 0
	for ; i < len(lines); i++ {
		if strings.Contains(lines[i], "\t") {
			break
		}
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"key: value\" metadata, got %q: %w",
				i+1, line, ErrFormat)
		}
		meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(lines[i:], "\n")))
	cr.Comma = '\t'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("data table: %v: %w", err, ErrFormat)
	}
	if len(records) < 4 {
		return nil, fmt.Errorf("missing header, units, x-coordinate, or data rows: %w", ErrFormat)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("header names no channel columns: %w", ErrFormat)
	}
	channels := append([]string(nil), header[1:]...)
	units := append([]string(nil), records[1][1:]...)

	x := make([]float64, len(channels))
	for j, cell := range records[2][1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("x-coordinate %q of column %q: %w", cell, channels[j], ErrFormat)
		}
		x[j] = v
	}

	gages, segments, gageOrder, segmentOrder, err := mapLabels(channels)
	if err != nil {
		return nil, err
	}

	times, cols, start, err := parseRows(records[3:], len(channels), opts.TimeFormats)
	if err != nil {
		return nil, err
	}

	se := make([]series.Series, 0, len(channels)+1)
	se = append(se, series.New(times, series.Float, TimeColumn))
	for j, name := range channels {
		se = append(se, series.New(cols[j], series.Float, name))
	}
	df := dataframe.New(se...)
	if df.Error() != nil {
		return nil, fmt.Errorf("assemble data table: %w", df.Error())
	}

	return &Dataset{
		data:         df,
		channels:     channels,
		gages:        gages,
		segments:     segments,
		gageOrder:    gageOrder,
		segmentOrder: segmentOrder,
		x:            x,
		units:        units,
		meta:         parseMetadata(meta),
		start:        start,
	}, nil
}

// mapLabels splits the channel labels into gages and segments. Segment
// columns must be contiguous, matching the instrument's export order.
func mapLabels(channels []string) (map[string]int, map[string]span, []string, []string, error) {
	gages := make(map[string]int)
	segments := make(map[string]span)
	var gageOrder, segmentOrder []string

	for j, label := range channels {
		m := segmentPattern.FindStringSubmatch(label)
		if m == nil {
			if _, dup := gages[label]; dup {
				return nil, nil, nil, nil, fmt.Errorf("duplicate gage label %q: %w", label, ErrFormat)
			}
			gages[label] = j
			gageOrder = append(gageOrder, label)
			continue
		}

		name := m[1]
		sp, ok := segments[name]
		if !ok {
			segments[name] = span{first: j, last: j}
			segmentOrder = append(segmentOrder, name)
			continue
		}
		if sp.last != j-1 {
			return nil, nil, nil, nil, fmt.Errorf("segment %q columns are not contiguous: %w", name, ErrFormat)
		}
		sp.last = j
		segments[name] = sp
	}
	return gages, segments, gageOrder, segmentOrder, nil
}

// parseRows parses the data rows into a timestamp slice (seconds since the
// first row) and one value slice per channel.
func parseRows(rows [][]string, nchan int, formats []string) ([]float64, [][]float64, time.Time, error) {
	times := make([]float64, 0, len(rows))
	cols := make([][]float64, nchan)
	for j := range cols {
		cols[j] = make([]float64, 0, len(rows))
	}

	var start time.Time
	absolute := false
	for k, rec := range rows {
		cell := strings.TrimSpace(rec[0])
		var t float64
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			if absolute {
				return nil, nil, time.Time{}, fmt.Errorf(
					"data row %d: relative timestamp after absolute ones: %w", k+1, ErrFormat)
			}
			t = v
		} else {
			ts, err := parseTimestamp(cell, formats)
			if err != nil {
				return nil, nil, time.Time{}, fmt.Errorf(
					"data row %d: timestamp %q: %w", k+1, cell, ErrFormat)
			}
			if len(times) == 0 {
				start = ts
				absolute = true
			} else if !absolute {
				return nil, nil, time.Time{}, fmt.Errorf(
					"data row %d: absolute timestamp after relative ones: %w", k+1, ErrFormat)
			}
			t = ts.Sub(start).Seconds()
		}

		if len(times) > 0 && t < times[len(times)-1] {
			return nil, nil, time.Time{}, fmt.Errorf(
				"data row %d: timestamps must be non-decreasing: %w", k+1, ErrFormat)
		}
		times = append(times, t)

		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, nil, time.Time{}, fmt.Errorf(
					"data row %d, column %d: value %q: %w", k+1, j+2, cell, ErrFormat)
			}
			cols[j] = append(cols[j], v)
		}
	}
	return times, cols, start, nil
}

func parseTimestamp(cell string, formats []string) (time.Time, error) {
	err := fmt.Errorf("no timestamp layouts configured")
	for _, layout := range formats {
		var ts time.Time
		if ts, err = time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// parseMetadata extracts the instrument fields from the raw metadata block.
// Missing or unparseable fields stay at their zero values; the raw block is
// kept as-is either way.
func parseMetadata(raw map[string]string) Metadata {
	m := Metadata{Raw: raw}
	if v, ok := raw[keyChannel]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			m.Channel = n
		}
	}
	if v, ok := raw[keyRate]; ok {
		v = strings.TrimSpace(strings.TrimSuffix(v, "Hz"))
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			m.Rate = f
		}
	}
	if v, ok := raw[keyGagePitch]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			m.GagePitch = f
		}
	}
	return m
}
