package results

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	math "github.com/aclements/go-moremath/stats"
	"github.com/cloud-bulldozer/shbench/pkg/driver"
	"github.com/cloud-bulldozer/shbench/pkg/logging"
	"github.com/cloud-bulldozer/shbench/pkg/plot"
	"github.com/cloud-bulldozer/shbench/pkg/runlog"
	"github.com/cloud-bulldozer/shbench/pkg/runner"
	stats "github.com/montanaflynn/stats"
	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Specify Language specific case wrapper as global variable
var caser = cases.Title(language.English)

var variantColors = map[string]termenv.ANSIColor{
	"A": termenv.ANSIRed,
	"B": termenv.ANSIGreen,
	"C": termenv.ANSIBlue,
	"D": termenv.ANSIMagenta,
}

// Average accepts array of floats to calculate average
func Average(vals []float64) (float64, error) {
	return stats.Mean(vals)
}

// Percentile accepts array of floats and the desired %tile to calculate
func Percentile(vals []float64, ptile float64) (float64, error) {
	return stats.Percentile(vals, ptile)
}

// ConfidenceInterval accepts array of floats to calculate the CI of the mean
func ConfidenceInterval(vals []float64, ci float64) (float64, float64, float64) {
	return math.MeanCI(vals, ci)
}

// Console renders the driver's progress and reporting blocks to
// stderr, teeing everything into the run log. Color is applied per
// variant (A red, B green, C blue, D magenta) when stderr is a
// terminal; the log receives the same bytes.
type Console struct {
	out     io.Writer
	log     *runlog.RunLog
	profile termenv.Profile
}

// NewConsole builds the reporter over the open run log. A nil log
// keeps everything on stderr only.
func NewConsole(log *runlog.RunLog) *Console {
	c := &Console{
		out:     os.Stderr,
		log:     log,
		profile: termenv.NewOutput(os.Stderr).ColorProfile(),
	}
	if log != nil {
		c.out = io.MultiWriter(os.Stderr, log)
	}
	return c
}

func (c *Console) colored(name, s string) string {
	if c.profile == termenv.Ascii {
		return s
	}
	col, ok := variantColors[name]
	if !ok {
		return s
	}
	return termenv.CSI + col.Sequence(false) + "m" + s + termenv.CSI + termenv.ResetSeq + "m"
}

// highlight is the escape token set handed to the plot renderer for
// the full-resolution bars: zero buckets carry a faint background so
// the plot extent stays visible.
func (c *Console) highlight(name string) plot.Highlight {
	if c.profile == termenv.Ascii {
		return plot.Highlight{}
	}
	return plot.Highlight{
		NonZero: termenv.CSI + variantColors[name].Sequence(false) + "m",
		Zero:    termenv.CSI + termenv.ANSIWhite.Sequence(true) + "m",
		Reset:   termenv.CSI + termenv.ResetSeq + "m",
	}
}

// halvesHighlight drops the zero background; quadrant glyphs next to
// it read as noise.
func (c *Console) halvesHighlight(name string) plot.Highlight {
	if c.profile == termenv.Ascii {
		return plot.Highlight{}
	}
	return plot.Highlight{
		NonZero: termenv.CSI + variantColors[name].Sequence(false) + "m",
		Reset:   termenv.CSI + termenv.ResetSeq + "m",
	}
}

// Preamble announces the run: log location, scripts and the
// first-round policy.
func (c *Console) Preamble(variants []*driver.Variant, cfg driver.Config) {
	if c.log != nil {
		logging.Infof("Writing run data to %s/", c.log.Dir())
		if last := c.log.Last(); last != "" {
			logging.Infof("Log symlink is %s", last)
		}
		fmt.Fprintf(c.log, "random_order: %t\n", cfg.RandomOrder)
		for _, v := range variants {
			fmt.Fprintf(c.log, "%s.run: %s\n", v.Name, v.Run)
			if v.Warmup != "" {
				fmt.Fprintf(c.log, "%s.warmup: %s\n", v.Name, v.Warmup)
			}
		}
	}

	if !cfg.IgnoreFirst {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "First round results will be used in statistics.")
		fmt.Fprintln(c.out, "Results might be skewed.")
		fmt.Fprintln(c.out, "Use the -i command line flag to ignore the first round.")
	}
}

// RunStarted prints the scripts about to execute.
func (c *Console) RunStarted(v *driver.Variant) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "running test: %s\n", c.colored(v.Name, v.Name))
	if v.Warmup != "" {
		fmt.Fprintln(c.out, "running warmup script:")
		for _, line := range strings.Split(v.Warmup, "\n") {
			fmt.Fprintf(c.out, "    %s\n", line)
		}
	}
	fmt.Fprintln(c.out, "running script:")
	for _, line := range strings.Split(v.Run, "\n") {
		fmt.Fprintf(c.out, "    %s\n", line)
	}
}

// RunFinished prints the progress line for one successful run.
func (c *Console) RunFinished(v *driver.Variant, res runner.Result) {
	fmt.Fprintf(c.out, "%s finished in %s s, max rss %d MiB\n",
		c.colored(v.Name, v.Name), res.Duration, res.MaxRSS.MiB())
}

// RunFailed reports a warmup or script failure; the variant simply
// contributes no sample this round.
func (c *Console) RunFailed(v *driver.Variant, err error) {
	fmt.Fprintf(c.out, "%s %v\n", c.colored(v.Name, v.Name), err)
}

// FirstRoundIgnored prints the ignore-first notice.
func (c *Console) FirstRoundIgnored() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Ignoring first round results.")
	fmt.Fprintln(c.out, "Now collecting the results.")
	fmt.Fprintln(c.out, "Statistics will be printed after the second successful round.")
}

// Report renders one reporting block: the section title, the aligned
// stats lines, the distribution plots and the ratio comparisons, and
// appends the raw samples to the run log.
func (c *Console) Report(b driver.Block) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "%s:\n", b.Title)
	for i, name := range b.Names {
		fmt.Fprintf(c.out, "%s: %s\n", c.colored(name, name), b.Stats[i])
	}
	for i, name := range b.Names {
		p := b.Plots[i]
		var bar string
		if p.Halves {
			bar = plot.HalfBars(p.Counts, p.Max, c.halvesHighlight(name))
		} else {
			bar = plot.Bars(p.Counts, p.Max, c.highlight(name))
		}
		fmt.Fprintf(c.out, "%s: distr=[%s]\n", c.colored(name, name), bar)
	}
	for i, r := range b.Ratios {
		fmt.Fprintf(c.out, "%s/%s: %s\n", b.Names[i+1], b.Names[0], r)
	}

	if c.log != nil {
		if err := c.log.WriteRaw(b.Title, b.Names, b.Raw); err != nil {
			logging.Warnf("Unable to append raw samples to the run log: %v", err)
		}
	}
}

// Method to init common table structure.
func initTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	return table
}

// Summary renders the final per-variant table once the iteration
// target is reached.
func (c *Console) Summary(variants []*driver.Variant, mem bool) {
	fmt.Printf("📊 %s\n", caser.String("final results"))
	renderSummary(variants, "Time (s)", func(v *driver.Variant) []float64 {
		vals := make([]float64, 0, v.Durations.Len())
		for _, d := range v.Durations.Raw() {
			vals = append(vals, d.AsFloat())
		}
		return vals
	})
	if mem {
		renderSummary(variants, "Max RSS (MiB)", func(v *driver.Variant) []float64 {
			vals := make([]float64, 0, v.MemUsages.Len())
			for _, m := range v.MemUsages.Raw() {
				vals = append(vals, m.AsFloat())
			}
			return vals
		})
	}
}

func renderSummary(variants []*driver.Variant, metric string, extract func(*driver.Variant) []float64) {
	table := initTable([]string{"Variant", "Script", "Samples", fmt.Sprintf("Avg %s", metric), fmt.Sprintf("P90 %s", metric), fmt.Sprintf("95%% Confidence Interval %s", metric)})
	for _, v := range variants {
		vals := extract(v)
		avg, _ := Average(vals)
		p90, _ := Percentile(vals, 90)
		var lo, hi float64
		if len(vals) > 1 {
			_, lo, hi = ConfidenceInterval(vals, 0.95)
		}
		table.Append([]string{v.Name, v.Run, strconv.Itoa(len(vals)), fmt.Sprintf("%f", avg), fmt.Sprintf("%f", p90), fmt.Sprintf("%f-%f", lo, hi)})
	}
	table.Render()
}
