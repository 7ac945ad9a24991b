package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New(func() float64 { return 3 })

	m.ChartRenders.WithLabelValues("steam", "portrait").Inc()
	m.ChartRenders.WithLabelValues("steam", "portrait").Inc()
	m.Unlocks.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChartRenders.WithLabelValues("steam", "portrait")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unlocks))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Sessions))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["portfolio_chart_renders_total"])
	assert.True(t, names["portfolio_sessions"])
}
