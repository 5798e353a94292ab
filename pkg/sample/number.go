package sample

import "fmt"

// Number is the capability set the measurement engine needs from a
// sample scalar: total order, closed integer arithmetic and a float64
// bridge. Precondition violations (Sub underflow, MulN overflow, DivN
// by a zero count) are programming errors and panic.
type Number[T any] interface {
	comparable
	Less(T) bool
	Add(T) T
	Sub(T) T
	DivN(n int) T
	MulN(n int) T
	AsFloat() float64
	FromFloat(f float64) T
	String() string
}

// Duration is a wall-clock measurement stored as integer nanoseconds.
// AsFloat reports seconds.
type Duration int64

// DurationFromNanos builds a Duration from a nanosecond count.
func DurationFromNanos(ns int64) Duration {
	return Duration(ns)
}

// Nanos returns the raw nanosecond count.
func (d Duration) Nanos() int64 {
	return int64(d)
}

func (d Duration) Less(o Duration) bool {
	return d < o
}

func (d Duration) Add(o Duration) Duration {
	return d + o
}

func (d Duration) Sub(o Duration) Duration {
	if d < o {
		panic("sample: duration subtraction underflow")
	}
	return d - o
}

func (d Duration) DivN(n int) Duration {
	if n == 0 {
		panic("sample: duration division by zero count")
	}
	return d / Duration(n)
}

func (d Duration) MulN(n int) Duration {
	r := d * Duration(n)
	if n != 0 && r/Duration(n) != d {
		panic("sample: duration multiplication overflow")
	}
	return r
}

func (d Duration) AsFloat() float64 {
	return float64(d) / 1e9
}

func (d Duration) FromFloat(f float64) Duration {
	return Duration(f * 1e9)
}

// String renders seconds with millisecond precision.
func (d Duration) String() string {
	return fmt.Sprintf("%.3f", d.AsFloat())
}

// MemUsage is a peak resident set size stored as integer bytes.
// AsFloat reports MiB.
type MemUsage int64

// MemUsageFromBytes builds a MemUsage from a byte count.
func MemUsageFromBytes(b int64) MemUsage {
	return MemUsage(b)
}

// Bytes returns the raw byte count.
func (m MemUsage) Bytes() int64 {
	return int64(m)
}

// MiB returns the truncated mebibyte count.
func (m MemUsage) MiB() int64 {
	return int64(m) >> 20
}

func (m MemUsage) Less(o MemUsage) bool {
	return m < o
}

func (m MemUsage) Add(o MemUsage) MemUsage {
	return m + o
}

func (m MemUsage) Sub(o MemUsage) MemUsage {
	if m < o {
		panic("sample: mem usage subtraction underflow")
	}
	return m - o
}

func (m MemUsage) DivN(n int) MemUsage {
	if n == 0 {
		panic("sample: mem usage division by zero count")
	}
	return m / MemUsage(n)
}

func (m MemUsage) MulN(n int) MemUsage {
	r := m * MemUsage(n)
	if n != 0 && r/MemUsage(n) != m {
		panic("sample: mem usage multiplication overflow")
	}
	return r
}

func (m MemUsage) AsFloat() float64 {
	return float64(m) / (1 << 20)
}

func (m MemUsage) FromFloat(f float64) MemUsage {
	return MemUsage(f * (1 << 20))
}

// String renders MiB with one decimal.
func (m MemUsage) String() string {
	return fmt.Sprintf("%.1f", m.AsFloat())
}
