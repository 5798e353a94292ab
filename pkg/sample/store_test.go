package sample

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testNumber is a bare integer sample with a deliberately scaled float
// bridge (x1000) so bridge round trips are exercised by the stddev path.
type testNumber int64

func (t testNumber) Less(o testNumber) bool { return t < o }
func (t testNumber) Add(o testNumber) testNumber { return t + o }

func (t testNumber) Sub(o testNumber) testNumber {
	if t < o {
		panic("testNumber subtraction underflow")
	}
	return t - o
}

func (t testNumber) DivN(n int) testNumber { return t / testNumber(n) }
func (t testNumber) MulN(n int) testNumber { return t * testNumber(n) }
func (t testNumber) AsFloat() float64      { return float64(t) * 1000.0 }

func (t testNumber) FromFloat(f float64) testNumber { return testNumber(f / 1000.0) }

func (t testNumber) String() string { return fmt.Sprintf("%d", int64(t)) }

func push(s *Store[testNumber], vals ...testNumber) {
	for _, v := range vals {
		s.Push(v)
	}
}

func TestPush(t *testing.T) {
	var ds Store[testNumber]
	push(&ds, 30, 50, 20, 30)

	min, ok := ds.Min()
	assert.True(t, ok)
	assert.Equal(t, testNumber(20), min)
	max, _ := ds.Max()
	assert.Equal(t, testNumber(50), max)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, testNumber(130), ds.Sum())
	mean, _ := ds.Mean()
	assert.Equal(t, testNumber(32), mean)
	med, _ := ds.Median()
	assert.Equal(t, testNumber(30), med)

	ds.Push(60)
	max, _ = ds.Max()
	assert.Equal(t, testNumber(60), max)

	ds.Push(10)
	min, _ = ds.Min()
	assert.Equal(t, testNumber(10), min)
	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, []testNumber{10, 20, 30, 30, 50, 60}, ds.Sorted())
	med, _ = ds.Median()
	assert.Equal(t, testNumber(30), med)
}

func TestSortedMirrorsRaw(t *testing.T) {
	var ds Store[testNumber]
	push(&ds, 5, 1, 4, 1, 3, 9, 2, 6)
	ds.Clear()
	push(&ds, 7, 7, 2, 8, 2, 7)

	assert.Equal(t, ds.Len(), len(ds.Sorted()))
	assert.True(t, sort.SliceIsSorted(ds.Sorted(), func(i, j int) bool {
		return ds.Sorted()[i] < ds.Sorted()[j]
	}))

	counts := func(vals []testNumber) map[testNumber]int {
		m := map[testNumber]int{}
		for _, v := range vals {
			m[v]++
		}
		return m
	}
	assert.Equal(t, counts(ds.Raw()), counts(ds.Sorted()))
}

func TestEmptyStats(t *testing.T) {
	var ds Store[testNumber]
	_, ok := ds.Min()
	assert.False(t, ok)
	_, ok = ds.Max()
	assert.False(t, ok)
	_, ok = ds.Mean()
	assert.False(t, ok)
	_, ok = ds.Median()
	assert.False(t, ok)
	_, ok = ds.StdDev()
	assert.False(t, ok)

	ds.Push(10)
	_, ok = ds.StdDev()
	assert.False(t, ok)
	mean, ok := ds.Mean()
	assert.True(t, ok)
	assert.Equal(t, testNumber(10), mean)
}

func TestStdDev(t *testing.T) {
	var ds Store[testNumber]
	push(&ds, 11, 13, 15)

	mean, _ := ds.Mean()
	assert.Equal(t, testNumber(13), mean)
	std, ok := ds.StdDev()
	assert.True(t, ok)
	assert.Equal(t, testNumber(2), std)
}

func TestDistrSingleBucket(t *testing.T) {
	var ds Store[testNumber]
	ds.Push(10)
	assert.Equal(t, []uint64{1}, ds.Distr(1, 0, 10).Counts)
	assert.Equal(t, []uint64{1}, ds.Distr(1, 10, 20).Counts)
}

func TestDistrTwoBuckets(t *testing.T) {
	var ds Store[testNumber]
	push(&ds, 10, 14, 16, 17, 20)
	assert.Equal(t, []uint64{2, 3}, ds.Distr(2, 10, 20).Counts)
}

func TestDistrDegenerateRange(t *testing.T) {
	var ds Store[testNumber]
	push(&ds, 10, 10, 10)
	d := ds.Distr(4, 10, 10)
	assert.Equal(t, []uint64{0, 0, 0, 0}, d.Counts)
	assert.Equal(t, uint64(0), d.Max())
}

func TestDistrCountsSumToLen(t *testing.T) {
	var ds Store[testNumber]
	push(&ds, 3, 9, 27, 81, 82, 83, 100)
	for _, n := range []int{1, 2, 5, 13} {
		d := ds.Distr(n, 3, 100)
		assert.Len(t, d.Counts, n)
		var total uint64
		for _, c := range d.Counts {
			total += c
		}
		assert.Equal(t, uint64(ds.Len()), total)
	}
}

func TestDistrMax(t *testing.T) {
	var ds Store[testNumber]
	push(&ds, 1, 1, 1, 10)
	d := ds.Distr(2, 1, 10)
	assert.Equal(t, []uint64{3, 1}, d.Counts)
	assert.Equal(t, uint64(3), d.Max())
}
