// Package metrics defines the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the site's collectors around one registry.
type Metrics struct {
	Registry *prometheus.Registry

	ChartRenders  *prometheus.CounterVec
	AssetFailures prometheus.Counter
	Unlocks       prometheus.Counter
	Requests      *prometheus.CounterVec
	Sessions      prometheus.GaugeFunc
}

// New registers every collector on a fresh registry. sessions reports the
// number of live visitor sessions.
func New(sessions func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "chart_renders_total",
			Help:      "Dashboard draws by dashboard and resolved variant.",
		}, []string{"dashboard", "variant"}),
		AssetFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "asset_resolve_failures_total",
			Help:      "Carousel images skipped because they failed to resolve.",
		}),
		Unlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "resume_unlocks_total",
			Help:      "Successful resume unlocks.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
	if sessions == nil {
		sessions = func() float64 { return 0 }
	}
	m.Sessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "portfolio",
		Name:      "sessions",
		Help:      "Live visitor sessions.",
	}, sessions)

	reg.MustRegister(
		m.ChartRenders,
		m.AssetFailures,
		m.Unlocks,
		m.Requests,
		m.Sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
