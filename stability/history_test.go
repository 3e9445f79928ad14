package stability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sagsin-net/heuristic/stability"
)

func TestHistory_WindowCapsFIFO(t *testing.T) {
	h := stability.NewHistory(3, 0.3)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		h.Add(stability.EntityNode, "A", "cpu_load", float64(i), base.Add(time.Duration(i)*time.Second))
	}

	samples := h.History(stability.EntityNode, "A", "cpu_load")
	require.Len(t, samples, 3)
	require.Equal(t, 2.0, samples[0].Value)
	require.Equal(t, 4.0, samples[2].Value)
}

func TestHistory_EMASeededByFirstSampleThenBlends(t *testing.T) {
	h := stability.NewHistory(10, 0.5)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Add(stability.EntityLink, "A-B", "delay_ms", 10, base)
	require.Equal(t, 10.0, h.EMA(stability.EntityLink, "A-B", "delay_ms"))

	h.Add(stability.EntityLink, "A-B", "delay_ms", 20, base.Add(time.Second))
	require.Equal(t, 15.0, h.EMA(stability.EntityLink, "A-B", "delay_ms"))
}

func TestHistory_HasEnoughDataRequiresTwoSamples(t *testing.T) {
	h := stability.NewHistory(10, 0.3)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.False(t, h.HasEnoughData(stability.EntityNode, "A", "cpu_load"))

	h.Add(stability.EntityNode, "A", "cpu_load", 1, base)
	require.False(t, h.HasEnoughData(stability.EntityNode, "A", "cpu_load"))

	h.Add(stability.EntityNode, "A", "cpu_load", 2, base.Add(time.Second))
	require.True(t, h.HasEnoughData(stability.EntityNode, "A", "cpu_load"))
}

func TestHistory_EntitiesAndMetricsForEnumerate(t *testing.T) {
	h := stability.NewHistory(10, 0.3)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Add(stability.EntityNode, "A", "cpu_load", 1, base)
	h.Add(stability.EntityNode, "A", "jitter_ms", 2, base)
	h.Add(stability.EntityLink, "A-B", "delay_ms", 3, base)

	entities := h.Entities()
	require.Len(t, entities, 2)
	require.Contains(t, entities, stability.EntityRef{Kind: stability.EntityNode, ID: "A"})
	require.Contains(t, entities, stability.EntityRef{Kind: stability.EntityLink, ID: "A-B"})

	require.ElementsMatch(t, []string{"cpu_load", "jitter_ms"}, h.MetricsFor(stability.EntityNode, "A"))
}

func TestHistory_NonPositiveWindowFallsBackToDefault(t *testing.T) {
	h := stability.NewHistory(0, 0.3)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < stability.DefaultWindow+5; i++ {
		h.Add(stability.EntityNode, "A", "cpu_load", float64(i), base.Add(time.Duration(i)*time.Second))
	}

	require.Len(t, h.History(stability.EntityNode, "A", "cpu_load"), stability.DefaultWindow)
}
