package archive

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cloud-bulldozer/shbench/pkg/driver"
	result "github.com/cloud-bulldozer/shbench/pkg/results"
)

// Doc struct of the JSON document written per variant
type Doc struct {
	UUID             string    `json:"uuid"`
	Timestamp        time.Time `json:"timestamp"`
	Variant          string    `json:"variant"`
	Run              string    `json:"run"`
	Warmup           string    `json:"warmup,omitempty"`
	Samples          int       `json:"samples"`
	MeanSeconds      float64   `json:"meanSeconds"`
	P90Seconds       float64   `json:"p90Seconds"`
	Confidence       []float64 `json:"confidence"`
	MeanRSSMiB       float64   `json:"meanRssMib"`
	DurationsSeconds []float64 `json:"durationsSeconds"`
	MaxRSSMiB        []float64 `json:"maxRssMib"`
}

func durationsSeconds(v *driver.Variant) []float64 {
	vals := make([]float64, 0, v.Durations.Len())
	for _, d := range v.Durations.Raw() {
		vals = append(vals, d.AsFloat())
	}
	return vals
}

func maxRSSMiB(v *driver.Variant) []float64 {
	vals := make([]float64, 0, v.MemUsages.Len())
	for _, m := range v.MemUsages.Raw() {
		vals = append(vals, m.AsFloat())
	}
	return vals
}

// BuildDocs returns the documents to be written, or an error.
func BuildDocs(variants []*driver.Variant, uuid string) ([]interface{}, error) {
	now := time.Now().UTC()

	var docs []interface{}
	if len(variants) < 1 {
		return nil, fmt.Errorf("no result documents")
	}
	for _, v := range variants {
		secs := durationsSeconds(v)
		mibs := maxRSSMiB(v)
		var lo, hi float64
		if len(secs) > 1 {
			_, lo, hi = result.ConfidenceInterval(secs, 0.95)
		}
		mean, _ := result.Average(secs)
		p90, _ := result.Percentile(secs, 90)
		meanRSS, _ := result.Average(mibs)
		docs = append(docs, Doc{
			UUID:             uuid,
			Timestamp:        now,
			Variant:          v.Name,
			Run:              v.Run,
			Warmup:           v.Warmup,
			Samples:          v.Durations.Len(),
			MeanSeconds:      mean,
			P90Seconds:       p90,
			Confidence:       []float64{lo, hi},
			MeanRSSMiB:       meanRSS,
			DurationsSeconds: secs,
			MaxRSSMiB:        mibs,
		})
	}
	return docs, nil
}

// Common csv header fields.
func commonCsvHeaderFields() []string {
	return []string{
		"Variant",
		"Run",
		"Warmup",
		"# of Samples",
		"Confidence metric - low",
		"Confidence metric - high",
	}
}

// Common csv data fields.
func commonCsvDataFields(v *driver.Variant) []string {
	var lo, hi float64
	if v.Durations.Len() > 1 {
		_, lo, hi = result.ConfidenceInterval(durationsSeconds(v), 0.95)
	}
	return []string{
		v.Name,
		v.Run,
		v.Warmup,
		strconv.Itoa(v.Durations.Len()),
		strconv.FormatFloat(lo, 'f', -1, 64),
		strconv.FormatFloat(hi, 'f', -1, 64),
	}
}

// WriteJSONResult writes the per-variant documents to result.json in
// the run directory.
func WriteJSONResult(dir string, variants []*driver.Variant, uuid string) error {
	docs, err := BuildDocs(variants, uuid)
	if err != nil {
		return err
	}
	p, err := json.MarshalIndent(docs, " ", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "result.json"), p, 0o644)
}

// WriteCSVResult will write the final results to the run directory
func WriteCSVResult(dir string, variants []*driver.Variant) error {
	fp, err := os.Create(filepath.Join(dir, "result.csv"))
	if err != nil {
		return fmt.Errorf("failed to open archive file")
	}
	defer fp.Close()
	archive := csv.NewWriter(fp)
	defer archive.Flush()

	data := append(commonCsvHeaderFields(),
		"Avg Time (s)",
		"P90 Time (s)",
		"Avg Max RSS (MiB)",
	)

	if err := archive.Write(data); err != nil {
		return fmt.Errorf("failed to write result archive to file")
	}
	for _, v := range variants {
		secs := durationsSeconds(v)
		avg, _ := result.Average(secs)
		p90, _ := result.Percentile(secs, 90)
		meanRSS, _ := result.Average(maxRSSMiB(v))
		row := append(commonCsvDataFields(v),
			fmt.Sprintf("%f", avg),
			fmt.Sprintf("%f", p90),
			fmt.Sprintf("%f", meanRSS),
		)
		if err := archive.Write(row); err != nil {
			return fmt.Errorf("failed to write archive to file")
		}
	}
	return nil
}
