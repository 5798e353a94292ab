// Package driver owns the iteration loop: it runs every variant once
// per round, feeds the sample stores and assembles the reporting
// blocks.
package driver

import (
	"math/rand"
	"time"

	"github.com/cloud-bulldozer/shbench/pkg/config"
	"github.com/cloud-bulldozer/shbench/pkg/runner"
	"github.com/cloud-bulldozer/shbench/pkg/sample"
	"github.com/cloud-bulldozer/shbench/pkg/stats"
)

// Variant is one candidate script with its measurement channels. A
// variant is owned by the driver and mutated only between runs; no
// locking.
type Variant struct {
	Name      string
	Warmup    string
	Run       string
	Durations sample.Store[sample.Duration]
	MemUsages sample.Store[sample.MemUsage]
}

// Config is the loop configuration snapshot.
type Config struct {
	RandomOrder bool
	IgnoreFirst bool
	// Iterations stops the loop once every variant holds that many
	// samples; 0 runs until externally interrupted.
	Iterations int
	Mem        bool
}

// PlotData is one variant's histogram handed to the renderer: raw
// bucket counts, the max-count scale shared across variants, and
// whether the half-resolution rendering (two buckets per cell) was
// selected.
type PlotData struct {
	Counts []uint64
	Max    uint64
	Halves bool
}

// Block is one reporting section: formatted stats lines, plot data and
// ratio comparisons, one entry per variant in baseline-first order.
// Values are plain text; color is the reporter's concern, keyed off
// the variant names.
type Block struct {
	Title  string
	Names  []string
	Stats  []string
	Plots  []PlotData
	Raw    [][]string
	Ratios []stats.Ratio
}

// Reporter receives the driver's progress and reporting blocks.
type Reporter interface {
	Preamble(variants []*Variant, cfg Config)
	RunStarted(v *Variant)
	RunFinished(v *Variant, res runner.Result)
	RunFailed(v *Variant, err error)
	FirstRoundIgnored()
	Report(b Block)
}

// Driver executes variants strictly sequentially, one child at a time;
// concurrent children would share CPU and memory pressure and
// invalidate the measurement.
type Driver struct {
	variants []*Variant
	cfg      Config
	runner   runner.Runner
	rep      Reporter
	rng      *rand.Rand
	round    int
}

// New builds a driver over 1-4 variants; the first is the baseline.
func New(variants []*Variant, cfg Config, run runner.Runner, rep Reporter) *Driver {
	return &Driver{
		variants: variants,
		cfg:      cfg,
		runner:   run,
		rep:      rep,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// FromConfig builds the variant list out of a parsed configuration,
// assigning the letters A-D in order.
func FromConfig(cfg config.Config) []*Variant {
	names := []string{"A", "B", "C", "D"}
	variants := make([]*Variant, 0, len(cfg.Tests))
	for i, t := range cfg.Tests {
		variants = append(variants, &Variant{Name: names[i], Warmup: t.Warmup, Run: t.Run})
	}
	return variants
}

// Run executes rounds until the iteration target is reached. It
// blocks; with Iterations unset it loops until the process is
// interrupted.
func (d *Driver) Run() {
	d.rep.Preamble(d.variants, d.cfg)

	if d.cfg.IgnoreFirst {
		d.runRound()
		for _, v := range d.variants {
			v.Durations.Clear()
			v.MemUsages.Clear()
		}
		d.rep.FirstRoundIgnored()
	}

	for {
		d.runRound()

		minLen := d.variants[0].Durations.Len()
		for _, v := range d.variants[1:] {
			if v.Durations.Len() < minLen {
				minLen = v.Durations.Len()
			}
		}

		if d.cfg.Iterations > 0 && minLen == d.cfg.Iterations {
			return
		}
		// A failed run leaves a variant short; hold reporting until
		// the slowest-progressing variant has two samples.
		if minLen < 2 {
			continue
		}

		d.rep.Report(buildBlock("Time (in seconds)", d.variants,
			func(v *Variant) *sample.Store[sample.Duration] { return &v.Durations }))
		if d.cfg.Mem {
			d.rep.Report(buildBlock("Max RSS (in megabytes)", d.variants,
				func(v *Variant) *sample.Store[sample.MemUsage] { return &v.MemUsages }))
		}
	}
}

// Rounds returns the number of completed rounds, the ignored first one
// included.
func (d *Driver) Rounds() int {
	return d.round
}

func (d *Driver) runRound() {
	order := make([]int, len(d.variants))
	for i := range order {
		order[i] = i
	}
	if d.cfg.RandomOrder {
		d.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	for _, i := range order {
		v := d.variants[i]
		d.rep.RunStarted(v)
		res, err := d.runner.Run(v.Warmup, v.Run)
		if err != nil {
			d.rep.RunFailed(v, err)
			continue
		}
		v.Durations.Push(res.Duration)
		v.MemUsages.Push(res.MaxRSS)
		d.rep.RunFinished(v, res)
	}
	d.round++
}

// statsPrefixWidth is the rendered width of the "distr=[" prefix plus
// the closing "]", so the plot's right edge lines up with the stats
// columns.
const statsPrefixWidth = 8

func buildBlock[T sample.Number[T]](title string, variants []*Variant, store func(*Variant) *sample.Store[T]) Block {
	b := Block{Title: title}

	set := make([]*stats.Stats[T], len(variants))
	for i, v := range variants {
		b.Names = append(b.Names, v.Name)
		set[i] = stats.New(store(v))
	}
	b.Stats = stats.Format(set)

	width := len(b.Stats[0]) - statsPrefixWidth
	if width < 1 {
		width = 1
	}
	b.Plots = makePlots(variants, width, store)

	for _, v := range variants {
		row := make([]string, 0, store(v).Len())
		for _, s := range store(v).Raw() {
			row = append(row, s.String())
		}
		b.Raw = append(b.Raw, row)
	}

	for i := 1; i < len(set); i++ {
		b.Ratios = append(b.Ratios, stats.Compare(set[0], set[i]))
	}
	return b
}

// makePlots builds both the full-resolution histogram of width w and
// the half-resolution one of width 2w across a min/max range shared by
// all variants, then selects the halves rendering when its tallest
// bucket is at most 2: at such tiny counts the sub-cell glyphs convey
// more than a single full-height bar.
func makePlots[T sample.Number[T]](variants []*Variant, width int, store func(*Variant) *sample.Store[T]) []PlotData {
	min, _ := store(variants[0]).Min()
	max, _ := store(variants[0]).Max()
	for _, v := range variants[1:] {
		if lo, ok := store(v).Min(); ok && lo.Less(min) {
			min = lo
		}
		if hi, ok := store(v).Max(); ok && max.Less(hi) {
			max = hi
		}
	}

	full := make([]sample.Distr, len(variants))
	halves := make([]sample.Distr, len(variants))
	var maxFull, maxHalves uint64
	for i, v := range variants {
		full[i] = store(v).Distr(width, min, max)
		halves[i] = store(v).Distr(width*2, min, max)
		if m := full[i].Max(); m > maxFull {
			maxFull = m
		}
		if m := halves[i].Max(); m > maxHalves {
			maxHalves = m
		}
	}

	plots := make([]PlotData, len(variants))
	for i := range variants {
		if maxHalves <= 2 {
			plots[i] = PlotData{Counts: halves[i].Counts, Max: maxHalves, Halves: true}
		} else {
			plots[i] = PlotData{Counts: full[i].Counts, Max: maxFull, Halves: false}
		}
	}
	return plots
}
