package storyteller

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestComputeWorkedExample checks the canonical 150px-into-1000px case.
func TestComputeWorkedExample(t *testing.T) {
	t.Parallel()

	m := ScrollMetrics{Offset: 150, ScrollableExtent: 1150, ViewportExtent: 150}
	require.InDelta(t, 1000.0, UsableExtent(m), 1e-9)

	got := Compute(m)
	require.InDelta(t, 0.15, got.Progress, 1e-12)
	require.Equal(t, 150.0, got.Offset)
	require.Equal(t, 1150.0, got.ScrollableExtent)
	require.Equal(t, 150.0, got.ViewportExtent)
}

// TestComputeDegenerateExtents asserts content that cannot scroll reports zero progress.
func TestComputeDegenerateExtents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    ScrollMetrics
	}{
		{name: "equal extents", m: ScrollMetrics{Offset: 40, ScrollableExtent: 500, ViewportExtent: 500}},
		{name: "content shorter than viewport", m: ScrollMetrics{Offset: 40, ScrollableExtent: 200, ViewportExtent: 500}},
		{name: "offsets consume range", m: ScrollMetrics{Offset: 40, ScrollableExtent: 600, ViewportExtent: 500, TopOffset: 60, BottomOffset: 40}},
		{name: "all zero", m: ScrollMetrics{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Zero(t, UsableExtent(tt.m))
			require.Zero(t, Compute(tt.m).Progress)
		})
	}
}

// TestComputeStaysInUnitRange feeds extreme and malformed inputs.
func TestComputeStaysInUnitRange(t *testing.T) {
	t.Parallel()

	inputs := []ScrollMetrics{
		{Offset: -500, ScrollableExtent: 2000, ViewportExtent: 500},
		{Offset: 1e12, ScrollableExtent: 2000, ViewportExtent: 500},
		{Offset: math.Inf(1), ScrollableExtent: 2000, ViewportExtent: 500},
		{Offset: math.Inf(-1), ScrollableExtent: 2000, ViewportExtent: 500},
		{Offset: math.NaN(), ScrollableExtent: 2000, ViewportExtent: 500},
		{Offset: 100, ScrollableExtent: math.NaN(), ViewportExtent: 500},
		{Offset: 100, ScrollableExtent: math.Inf(1), ViewportExtent: 500},
		{Offset: 100, ScrollableExtent: -2000, ViewportExtent: -500},
		{Offset: 100, ScrollableExtent: 2000, ViewportExtent: 500, TopOffset: 300},
		{Offset: 100, ScrollableExtent: 2000, ViewportExtent: 500, TopOffset: -300, BottomOffset: -300},
	}
	for _, m := range inputs {
		got := Compute(m).Progress
		require.False(t, math.IsNaN(got), "metrics %+v", m)
		require.GreaterOrEqual(t, got, 0.0, "metrics %+v", m)
		require.LessOrEqual(t, got, 1.0, "metrics %+v", m)
	}
}

// TestComputeNegativeExtentsClampToZero checks malformed extents are sanitized, not rejected.
func TestComputeNegativeExtentsClampToZero(t *testing.T) {
	t.Parallel()

	got := Compute(ScrollMetrics{Offset: 10, ScrollableExtent: -1, ViewportExtent: -1})
	require.Zero(t, got.ScrollableExtent)
	require.Zero(t, got.ViewportExtent)
	require.Zero(t, got.Progress)
}

// TestComputeIsIdempotent verifies identical metrics yield identical results.
func TestComputeIsIdempotent(t *testing.T) {
	t.Parallel()

	m := ScrollMetrics{Offset: 333, ScrollableExtent: 4000, ViewportExtent: 720, TopOffset: 64, BottomOffset: 32}
	require.Equal(t, Compute(m), Compute(m))
}

// TestTargetForRoundTrip checks Compute inverts TargetFor across the range.
func TestTargetForRoundTrip(t *testing.T) {
	t.Parallel()

	geometries := []ScrollMetrics{
		{ScrollableExtent: 1150, ViewportExtent: 150},
		{ScrollableExtent: 5000, ViewportExtent: 900, TopOffset: 120, BottomOffset: 80},
		{ScrollableExtent: 777.7, ViewportExtent: 333.3, TopOffset: 11.1},
	}
	for _, g := range geometries {
		for i := 0; i <= 40; i++ {
			p := float64(i) / 40
			m := g
			m.Offset = TargetFor(g, p)
			require.InDelta(t, p, Compute(m).Progress, 1e-9, "geometry %+v p=%v", g, p)
		}
	}
}

// TestTargetForClampsProgress keeps targets inside the usable range.
func TestTargetForClampsProgress(t *testing.T) {
	t.Parallel()

	g := ScrollMetrics{ScrollableExtent: 1100, ViewportExtent: 100, TopOffset: 50}
	require.InDelta(t, 50.0, TargetFor(g, -3), 1e-9)
	require.InDelta(t, 1000.0, TargetFor(g, 7), 1e-9)
}

// TestInRange covers the local re-mapping used by range observers.
func TestInRange(t *testing.T) {
	t.Parallel()

	p := ScrollProgress{Progress: 0.5}
	require.InDelta(t, 0.75, p.InRange(0.2, 0.6), 1e-12)
	require.True(t, p.IsInRange(0.2, 0.6))
	require.True(t, p.IsInRange(0.5, 0.6))
	require.False(t, p.IsInRange(0.6, 0.9))

	require.Zero(t, ScrollProgress{Progress: 0.1}.InRange(0.2, 0.6))
	require.Equal(t, 1.0, ScrollProgress{Progress: 0.9}.InRange(0.2, 0.6))
}
