package stats

// Confidence selects a column of the Student-t critical value table.
type Confidence int

// TwoSided95 is the only supported confidence level.
const TwoSided95 Confidence = iota

// Two-sided 95% critical values for df = 1..30. Beyond 30 the printed
// table thins out and converges on the asymptotic 1.960.
var twoSided95 = [...]float64{
	12.706, 4.303, 3.182, 2.776, 2.571,
	2.447, 2.365, 2.306, 2.262, 2.228,
	2.201, 2.179, 2.160, 2.145, 2.131,
	2.120, 2.110, 2.101, 2.093, 2.086,
	2.080, 2.074, 2.069, 2.064, 2.060,
	2.056, 2.052, 2.048, 2.045, 2.042,
}

var twoSided95Tail = []struct {
	df int
	t  float64
}{
	{40, 2.021},
	{50, 2.009},
	{60, 2.000},
	{80, 1.990},
	{100, 1.984},
	{120, 1.980},
}

const twoSided95Inf = 1.960

// TTable returns the two-sided critical value t*(df, c), clamping df
// into the table's range. Values are monotonically non-increasing in
// df and settle at 1.960 past the last explicit entry.
func TTable(df int, c Confidence) float64 {
	if c != TwoSided95 {
		panic("stats: unsupported confidence level")
	}
	if df < 1 {
		df = 1
	}
	if df <= len(twoSided95) {
		return twoSided95[df-1]
	}
	t := twoSided95[len(twoSided95)-1]
	for _, e := range twoSided95Tail {
		if df < e.df {
			return t
		}
		t = e.t
	}
	if df > twoSided95Tail[len(twoSided95Tail)-1].df {
		return twoSided95Inf
	}
	return t
}
