package results

import (
	"bytes"
	"testing"

	"github.com/cloud-bulldozer/shbench/pkg/config"
	"github.com/cloud-bulldozer/shbench/pkg/driver"
	"github.com/cloud-bulldozer/shbench/pkg/sample"
	"github.com/cloud-bulldozer/shbench/pkg/stats"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plainConsole(buf *bytes.Buffer) *Console {
	return &Console{out: buf, profile: termenv.Ascii}
}

func TestReportPlain(t *testing.T) {
	var buf bytes.Buffer
	c := plainConsole(&buf)

	c.Report(driver.Block{
		Title: "Time (in seconds)",
		Names: []string{"A", "B"},
		Stats: []string{"n=2 mean=1.000", "n=2 mean=2.000"},
		Plots: []driver.PlotData{
			{Counts: []uint64{1, 0, 1}, Max: 1},
			{Counts: []uint64{0, 2, 0}, Max: 2},
		},
		Ratios: []stats.Ratio{{Value: 2, Min: 1.5, Max: 2.5}},
	})

	out := buf.String()
	assert.Contains(t, out, "Time (in seconds):")
	assert.Contains(t, out, "A: n=2 mean=1.000")
	assert.Contains(t, out, "B: distr=[")
	assert.Contains(t, out, "B/A: 2.000 1.500..2.500 (95% conf)")
}

func TestPreambleWarnsWithoutIgnoreFirst(t *testing.T) {
	var buf bytes.Buffer
	c := plainConsole(&buf)
	variants := driver.FromConfig(config.Config{Tests: []config.Test{{Run: "true"}}})

	c.Preamble(variants, driver.Config{})
	assert.Contains(t, buf.String(), "Results might be skewed.")

	buf.Reset()
	c.Preamble(variants, driver.Config{IgnoreFirst: true})
	assert.NotContains(t, buf.String(), "Results might be skewed.")
}

func TestRunStartedPrintsScripts(t *testing.T) {
	var buf bytes.Buffer
	c := plainConsole(&buf)
	v := &driver.Variant{Name: "A", Warmup: "make clean", Run: "make build"}

	c.RunStarted(v)
	out := buf.String()
	assert.Contains(t, out, "running test: A")
	assert.Contains(t, out, "    make clean")
	assert.Contains(t, out, "    make build")
}

func TestConfidenceInterval(t *testing.T) {
	_, lo, hi := ConfidenceInterval([]float64{1, 2, 3, 4, 5}, 0.95)
	assert.Less(t, lo, 3.0)
	assert.Greater(t, hi, 3.0)
}

func TestAverageAndPercentile(t *testing.T) {
	avg, err := Average([]float64{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, 2.0, avg)

	p90, err := Percentile([]float64{5, 5, 5, 5}, 90)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, p90)
}

func sampleVariant(name string, vals ...int64) *driver.Variant {
	v := &driver.Variant{Name: name, Run: "true"}
	for _, ns := range vals {
		v.Durations.Push(sample.DurationFromNanos(ns))
	}
	return v
}

func TestSummaryRenders(t *testing.T) {
	// smoke test: the table writes to stdout; just make sure it does
	// not panic with one and with many samples
	c := plainConsole(&bytes.Buffer{})
	c.Summary([]*driver.Variant{
		sampleVariant("A", 1_000_000_000),
		sampleVariant("B", 1_000_000_000, 2_000_000_000),
	}, false)
}
