// Package metrics exposes storefront counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry and the counters the services update
type Metrics struct {
	registry *prometheus.Registry

	OrdersConfirmed *prometheus.CounterVec
	Checkouts       *prometheus.CounterVec
	StoreFallbacks  *prometheus.CounterVec
	InvoicesIssued  prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
}

// New registers every collector on a private registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		OrdersConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzaone",
			Name:      "orders_confirmed_total",
			Help:      "Order lines confirmed, by category.",
		}, []string{"category"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzaone",
			Name:      "checkouts_total",
			Help:      "Checkout attempts, by outcome.",
		}, []string{"outcome"}),
		StoreFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzaone",
			Name:      "order_store_fallbacks_total",
			Help:      "Calls served by the local order store because the database was unavailable.",
		}, []string{"operation"}),
		InvoicesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pizzaone",
			Name:      "invoices_issued_total",
			Help:      "Tax documents marked as issued.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzaone",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		m.OrdersConfirmed,
		m.Checkouts,
		m.StoreFallbacks,
		m.InvoicesIssued,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFallback counts a local-store fallback
func (m *Metrics) ObserveFallback(operation string) {
	m.StoreFallbacks.WithLabelValues(operation).Inc()
}
