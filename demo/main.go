// Package main demonstrates loading an ODiSI export and aligning it with an
// independently sampled load cell signal.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cristobaltapia/go-odisi/odisi"
)

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("GoODiSI Demonstration - sensor/load-cell time alignment")
	fmt.Println(strings.Repeat("=", 80))

	path := filepath.Join(os.TempDir(), "demo_ch1.tsv")
	if err := os.WriteFile(path, []byte(syntheticExport()), 0o644); err != nil {
		log.Fatal(err)
	}
	defer os.Remove(path)

	ds, err := odisi.ReadFile(path, nil)
	if err != nil {
		log.Fatal(err)
	}

	meta := ds.Metadata()
	fmt.Printf("\nLoaded %s\n", path)
	fmt.Printf("  Rows:       %d\n", ds.Len())
	fmt.Printf("  Channel:    %d\n", meta.Channel)
	fmt.Printf("  Rate:       %.2f Hz\n", meta.Rate)
	fmt.Printf("  Gage pitch: %.2f mm\n", meta.GagePitch)
	fmt.Printf("  Gages:      %v\n", ds.Gages())
	fmt.Printf("  Segments:   %v\n", ds.Segments())

	// The load cell runs at its own rate and starts slightly later.
	load := syntheticLoad()
	fmt.Printf("\nLoad cell: %d samples\n", load.Nrow())

	fmt.Println("\n--- Sensor data onto the load cell grid (clipped) ---")
	synced, err := ds.InterpolateDataFrame(load, "time [s]", true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Resampled sensor table: %d rows x %d columns\n", synced.Nrow(), synced.Ncol())

	fmt.Println("\n--- Load signal onto the sensor grid (clipped) ---")
	signal, err := ds.InterpolateSignal(load, "time [s]", true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Resampled load table: %d rows x %d columns\n", signal.Nrow(), signal.Ncol())

	out := "alignment.png"
	if err := plotAlignment(synced, out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nPlot written to %s\n", out)
}

// syntheticExport builds a small export in the instrument's layout: a gage
// plus a five-point segment, sampled at 5 Hz for 12 seconds.
func syntheticExport() string {
	var b strings.Builder
	b.WriteString("Test Name: demo run\n")
	b.WriteString("Channel: 1\n")
	b.WriteString("Measurement Rate per Channel: 5 Hz\n")
	b.WriteString("Gage Pitch (mm): 0.65\n")

	labels := []string{"Anchor"}
	for i := 0; i < 5; i++ {
		labels = append(labels, fmt.Sprintf("S1[%d]", i))
	}
	b.WriteString("time [s]\t" + strings.Join(labels, "\t") + "\n")
	b.WriteString("s" + strings.Repeat("\tmm/m", len(labels)) + "\n")

	b.WriteString("x (m)")
	for i := range labels {
		fmt.Fprintf(&b, "\t%.4f", float64(i)*0.00065)
	}
	b.WriteString("\n")

	for r := 0; r <= 60; r++ {
		t := float64(r) / 5
		fmt.Fprintf(&b, "%.3f", t)
		fmt.Fprintf(&b, "\t%.5f", 2*math.Sin(t/2))
		for i := 0; i < 5; i++ {
			fmt.Fprintf(&b, "\t%.5f", math.Sin(t/2)*(1+0.1*float64(i)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// syntheticLoad builds a load cell table sampled at 3 Hz starting at t=0.4s.
func syntheticLoad() dataframe.DataFrame {
	n := 30
	ts := make([]float64, n)
	kn := make([]float64, n)
	for i := range ts {
		ts[i] = 0.4 + float64(i)/3
		kn[i] = 12 * math.Sin(ts[i]/2)
	}
	return dataframe.New(
		series.New(ts, series.Float, "time [s]"),
		series.New(kn, series.Float, "load [kN]"),
	)
}

// plotAlignment plots the resampled anchor gage strain over time.
func plotAlignment(df dataframe.DataFrame, path string) error {
	times := df.Col(odisi.TimeColumn).Float()
	strain := df.Col("Anchor").Float()

	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i]
		pts[i].Y = strain[i]
	}

	p := plot.New()
	p.Title.Text = "Anchor gage on the load cell grid"
	p.X.Label.Text = "time [s]"
	p.Y.Label.Text = "strain [mm/m]"

	if err := plotutil.AddLines(p, "Anchor", pts); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
