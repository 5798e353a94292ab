package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationBridge(t *testing.T) {
	d := DurationFromNanos(1_234_000_000)
	assert.Equal(t, 1.234, d.AsFloat())
	assert.Equal(t, "1.234", d.String())

	var zero Duration
	assert.Equal(t, d, zero.FromFloat(d.AsFloat()))
}

func TestDurationArithmetic(t *testing.T) {
	a := DurationFromNanos(300)
	b := DurationFromNanos(100)
	assert.Equal(t, DurationFromNanos(400), a.Add(b))
	assert.Equal(t, DurationFromNanos(200), a.Sub(b))
	assert.Equal(t, DurationFromNanos(150), a.DivN(2))
	assert.Equal(t, DurationFromNanos(900), a.MulN(3))

	assert.Panics(t, func() { b.Sub(a) })
	assert.Panics(t, func() { a.DivN(0) })
}

func TestMemUsageBridge(t *testing.T) {
	m := MemUsageFromBytes(3 << 20)
	assert.Equal(t, 3.0, m.AsFloat())
	assert.Equal(t, "3.0", m.String())
	assert.Equal(t, int64(3), m.MiB())

	half := MemUsageFromBytes(1 << 19)
	assert.Equal(t, "0.5", half.String())
	assert.Equal(t, int64(0), half.MiB())
}
