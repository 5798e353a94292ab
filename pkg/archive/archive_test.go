package archive

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloud-bulldozer/shbench/pkg/config"
	"github.com/cloud-bulldozer/shbench/pkg/driver"
	"github.com/cloud-bulldozer/shbench/pkg/sample"
	"github.com/stretchr/testify/assert"
)

func testVariants() []*driver.Variant {
	variants := driver.FromConfig(config.Config{Tests: []config.Test{
		{Run: "sleep 1"},
		{Run: "sleep 2", Warmup: "sync"},
	}})
	for _, v := range variants {
		for i := int64(1); i <= 3; i++ {
			v.Durations.Push(sample.DurationFromNanos(i * 1_000_000_000))
			v.MemUsages.Push(sample.MemUsageFromBytes(i * (64 << 20)))
		}
	}
	return variants
}

func TestBuildDocs(t *testing.T) {
	docs, err := BuildDocs(testVariants(), "test-uuid")
	assert.NoError(t, err)
	assert.Len(t, docs, 2)

	d := docs[0].(Doc)
	assert.Equal(t, "A", d.Variant)
	assert.Equal(t, 3, d.Samples)
	assert.Equal(t, 2.0, d.MeanSeconds)
	assert.Len(t, d.DurationsSeconds, 3)
}

func TestBuildDocsEmpty(t *testing.T) {
	_, err := BuildDocs(nil, "test-uuid")
	assert.Error(t, err)
}

func TestWriteCSVResult(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, WriteCSVResult(dir, testVariants()))

	fp, err := os.Open(filepath.Join(dir, "result.csv"))
	assert.NoError(t, err)
	defer fp.Close()

	rows, err := csv.NewReader(fp).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Variant", rows[0][0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "B", rows[2][0])
}

func TestWriteJSONResult(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, WriteJSONResult(dir, testVariants(), "test-uuid"))

	buf, err := os.ReadFile(filepath.Join(dir, "result.json"))
	assert.NoError(t, err)

	var docs []Doc
	assert.NoError(t, json.Unmarshal(buf, &docs))
	assert.Len(t, docs, 2)
	assert.Equal(t, "test-uuid", docs[0].UUID)
	assert.Equal(t, "B", docs[1].Variant)
}
