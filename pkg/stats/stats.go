// Package stats holds the summary snapshot, the Student-t table and
// the ratio comparator of the measurement engine.
package stats

import (
	"fmt"
	"strings"

	"github.com/cloud-bulldozer/shbench/pkg/sample"
)

// Stats is an immutable summary snapshot of one variant's store.
type Stats[T sample.Number[T]] struct {
	Count  int
	Min    T
	Max    T
	Sum    T
	Mean   T
	Median T
	StdDev T
	// HasStdDev is false until the store held at least two samples.
	HasStdDev bool
}

// New assembles a snapshot from the store, or nil when it is empty.
func New[T sample.Number[T]](s *sample.Store[T]) *Stats[T] {
	if s.Len() == 0 {
		return nil
	}
	min, _ := s.Min()
	max, _ := s.Max()
	mean, _ := s.Mean()
	median, _ := s.Median()
	st := &Stats[T]{
		Count:  s.Len(),
		Min:    min,
		Max:    max,
		Sum:    s.Sum(),
		Mean:   mean,
		Median: median,
	}
	if sd, ok := s.StdDev(); ok {
		st.StdDev = sd
		st.HasStdDev = true
	}
	return st
}

// SigmaSq returns the sample variance as a float.
func (s *Stats[T]) SigmaSq() float64 {
	f := s.StdDev.AsFloat()
	return f * f
}

// Format renders one line per snapshot with the columns vertically
// aligned across the whole set, so the variant lines read side by
// side. All lines share the same width; that width drives the plot
// width downstream.
func Format[T sample.Number[T]](set []*Stats[T]) []string {
	fields := make([][]string, len(set))
	for i, st := range set {
		std := "n/a"
		if st.HasStdDev {
			std = st.StdDev.String()
		}
		fields[i] = []string{
			fmt.Sprintf("n=%d", st.Count),
			fmt.Sprintf("mean=%s", st.Mean),
			fmt.Sprintf("std=%s", std),
			fmt.Sprintf("min=%s", st.Min),
			fmt.Sprintf("max=%s", st.Max),
			fmt.Sprintf("med=%s", st.Median),
		}
	}

	widths := make([]int, len(fields[0]))
	for _, row := range fields {
		for c, f := range row {
			if len(f) > widths[c] {
				widths[c] = len(f)
			}
		}
	}

	lines := make([]string, len(fields))
	for i, row := range fields {
		padded := make([]string, len(row))
		for c, f := range row {
			padded[c] = strings.Repeat(" ", widths[c]-len(f)) + f
		}
		lines[i] = strings.Join(padded, " ")
	}
	return lines
}
