package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restoremesh"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	TokensIssued      prometheus.Counter
	Restores          *prometheus.CounterVec
	Evicted           prometheus.Counter
	ConnectionsActive prometheus.Gauge
	Messages          *prometheus.CounterVec
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		TokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Restoration tokens issued to new connections.",
		}),
		Restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restores_total",
			Help:      "Restore requests that matched a registered token, by outcome.",
		}, []string{"outcome"}),
		Evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "evicted_total",
			Help:      "Registry entries removed by the evictor.",
		}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Open client connections.",
		}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Inbound messages by frame kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(r.TokensIssued, r.Restores, r.Evicted, r.ConnectionsActive, r.Messages)
	return r
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// MustRegister registers additional collectors.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// IncTokensIssued records one issued token.
func (r *Registry) IncTokensIssued() {
	if r == nil {
		return
	}
	r.TokensIssued.Inc()
}

// ObserveRestore records a matched restore request.
func (r *Registry) ObserveRestore(outcome string) {
	if r == nil {
		return
	}
	r.Restores.WithLabelValues(outcome).Inc()
}

// AddEvicted records entries removed by a sweep.
func (r *Registry) AddEvicted(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.Evicted.Add(float64(n))
}

// IncConnections records an opened connection.
func (r *Registry) IncConnections() {
	if r == nil {
		return
	}
	r.ConnectionsActive.Inc()
}

// DecConnections records a closed connection.
func (r *Registry) DecConnections() {
	if r == nil {
		return
	}
	r.ConnectionsActive.Dec()
}

// IncMessages records one inbound message of the given kind (text, binary).
func (r *Registry) IncMessages(kind string) {
	if r == nil {
		return
	}
	r.Messages.WithLabelValues(kind).Inc()
}
