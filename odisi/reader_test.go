package odisi

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// sampleExport is a small export in the instrument's layout: metadata block,
// header, units row, x-coordinate row, data rows. Two gages and one
// three-point segment.
func sampleExport() string {
	lines := []string{
		"Test Name: demo",
		"Channel: 1",
		"Measurement Rate per Channel: 2.5 Hz",
		"Gage Pitch (mm): 0.65",
		"",
		"time [s]\tStart\tEnd\tA1[0]\tA1[1]\tA1[2]",
		"s\tmm/m\tmm/m\tmm/m\tmm/m\tmm/m",
		"x (m)\t0.00\t0.10\t0.20\t0.25\t0.30",
		"0\t0\t100\t1\t2\t3",
		"1\t10\t90\t2\t3\t4",
		"2\t20\t80\t3\t4\t5",
		"3\t30\t70\t4\t5\t6",
	}
	return strings.Join(lines, "\n") + "\n"
}

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Read(strings.NewReader(sampleExport()), nil)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	return ds
}

func TestReadMetadata(t *testing.T) {
	ds := loadSample(t)
	meta := ds.Metadata()

	if meta.Channel != 1 {
		t.Errorf("Expected channel 1, got %d", meta.Channel)
	}
	if meta.Rate != 2.5 {
		t.Errorf("Expected rate 2.5, got %g", meta.Rate)
	}
	if meta.GagePitch != 0.65 {
		t.Errorf("Expected gage pitch 0.65, got %g", meta.GagePitch)
	}
	if meta.Raw["Test Name"] != "demo" {
		t.Errorf("Expected raw metadata to keep Test Name, got %q", meta.Raw["Test Name"])
	}
}

func TestReadLabels(t *testing.T) {
	ds := loadSample(t)

	gages := ds.Gages()
	if len(gages) != 2 || gages[0] != "Start" || gages[1] != "End" {
		t.Errorf("Expected gages [Start End], got %v", gages)
	}

	segments := ds.Segments()
	if len(segments) != 1 || segments[0] != "A1" {
		t.Errorf("Expected segments [A1], got %v", segments)
	}
}

func TestReadData(t *testing.T) {
	ds := loadSample(t)

	if ds.Len() != 4 {
		t.Fatalf("Expected 4 rows, got %d", ds.Len())
	}

	times := ds.Time()
	want := []float64{0, 1, 2, 3}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("Expected timestamp %g at row %d, got %g", want[i], i, times[i])
		}
	}

	x := ds.X()
	if len(x) != 5 || x[0] != 0 || x[4] != 0.30 {
		t.Errorf("Unexpected x-coordinates: %v", x)
	}

	units := ds.Units()
	if len(units) != 5 || units[0] != "mm/m" {
		t.Errorf("Unexpected units: %v", units)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export_ch1.tsv")
	if err := os.WriteFile(path, []byte(sampleExport()), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := ReadFile(path, nil)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if ds.Len() != 4 {
		t.Errorf("Expected 4 rows, got %d", ds.Len())
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.tsv"), nil)
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReadAbsoluteTimestamps(t *testing.T) {
	lines := []string{
		"Channel: 2",
		"time\tG1\tG2",
		"s\tmm/m\tmm/m",
		"x (m)\t0.0\t0.65",
		"2023-09-06 12:51:28.888946\t3.7\t1.0",
		"2023-09-06 12:51:29.888946\t4.7\t2.0",
		"2023-09-06 12:51:30.888946\t5.7\t3.0",
	}
	ds, err := Read(strings.NewReader(strings.Join(lines, "\n")), nil)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	times := ds.Time()
	want := []float64{0, 1, 2}
	for i := range want {
		if diff := times[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Expected relative timestamp %g at row %d, got %g", want[i], i, times[i])
		}
	}

	wantStart := time.Date(2023, 9, 6, 12, 51, 28, 888946000, time.UTC)
	if !ds.Start().Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, ds.Start())
	}
}

func TestReadFormatErrors(t *testing.T) {
	valid := []string{
		"Channel: 1",
		"time\tG1\tS[0]\tS[1]",
		"s\tmm/m\tmm/m\tmm/m",
		"x (m)\t0.0\t0.1\t0.2",
		"0\t1\t2\t3",
		"1\t2\t3\t4",
	}

	replace := func(i int, line string) string {
		lines := append([]string(nil), valid...)
		lines[i] = line
		return strings.Join(lines, "\n")
	}

	tests := []struct {
		name  string
		input string
	}{
		{"metadata without colon", replace(0, "Channel 1")},
		{"ragged data row", replace(4, "0\t1\t2")},
		{"bad value cell", replace(4, "0\t1\toops\t3")},
		{"bad x cell", replace(3, "x (m)\t0.0\tbad\t0.2")},
		{"decreasing timestamps", replace(5, "-1\t2\t3\t4")},
		{"bad timestamp", replace(4, "later\t1\t2\t3")},
		{"non-contiguous segment", replace(1, "time\tS[0]\tG1\tS[1]")},
		{"duplicate gage", replace(1, "time\tG1\tG1\tS[0]")},
		{"missing data rows", strings.Join(valid[:4], "\n")},
		{"truncated table", "Channel: 1\ntime\tG1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), nil)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("Expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestReadMixedTimestampKinds(t *testing.T) {
	lines := []string{
		"time\tG1\tG2",
		"s\tmm/m\tmm/m",
		"x (m)\t0.0\t0.1",
		"2023-09-06 12:51:28.888946\t1\t2",
		"1.5\t2\t3",
	}
	_, err := Read(strings.NewReader(strings.Join(lines, "\n")), nil)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat for mixed timestamp kinds, got %v", err)
	}
}
