package docsite

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are registered on a per-App registry so several Apps can live in
// one process.
type Metrics struct {
	registry  *prometheus.Registry
	pageViews *prometheus.CounterVec
	searches  prometheus.Counter
	siteLoads *prometheus.CounterVec
	sitePages prometheus.Gauge
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docsite",
			Name:      "page_views_total",
			Help:      "Documentation page responses by status code class.",
		}, []string{"status"}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docsite",
			Name:      "search_queries_total",
			Help:      "Search queries served.",
		}),
		siteLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docsite",
			Name:      "site_loads_total",
			Help:      "Content tree loads by result.",
		}, []string{"result"}),
		sitePages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "docsite",
			Name:      "site_pages",
			Help:      "Pages in the currently loaded site.",
		}),
	}
	m.registry.MustRegister(m.pageViews, m.searches, m.siteLoads, m.sitePages)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
