// Package metrics expone contadores Prometheus de las suscripciones en vivo y de las
// escrituras al almacén remoto.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Resultados de escritura.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Fases de error de suscripción.
const (
	PhaseSetup    = "setup"
	PhaseDelivery = "delivery"
)

// Collectors agrupa las métricas de la capa de sincronización. Todos los métodos aceptan
// un receptor nil (sin métricas).
type Collectors struct {
	snapshots     *prometheus.CounterVec
	subErrors     *prometheus.CounterVec
	writes        *prometheus.CounterVec
	subscriptions *prometheus.GaugeVec
	records       *prometheus.GaugeVec
}

// New registra los colectores en reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "biciros",
			Name:      "snapshots_total",
			Help:      "Snapshots completos recibidos por colección.",
		}, []string{"collection"}),
		subErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "biciros",
			Name:      "subscription_errors_total",
			Help:      "Errores de suscripción por colección y fase.",
		}, []string{"collection", "phase"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "biciros",
			Name:      "writes_total",
			Help:      "Escrituras al almacén remoto por colección, operación y resultado.",
		}, []string{"collection", "op", "result"}),
		subscriptions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "biciros",
			Name:      "active_subscriptions",
			Help:      "Suscripciones en vivo abiertas por colección.",
		}, []string{"collection"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "biciros",
			Name:      "cached_records",
			Help:      "Registros en la lista local de cada colección tras el último snapshot.",
		}, []string{"collection"}),
	}
	reg.MustRegister(c.snapshots, c.subErrors, c.writes, c.subscriptions, c.records)
	return c
}

// Snapshot registra un snapshot entregado con n registros tras el filtrado.
func (c *Collectors) Snapshot(collection string, n int) {
	if c == nil {
		return
	}
	c.snapshots.WithLabelValues(collection).Inc()
	c.records.WithLabelValues(collection).Set(float64(n))
}

// SubscriptionError registra un error de configuración o de entrega.
func (c *Collectors) SubscriptionError(collection, phase string) {
	if c == nil {
		return
	}
	c.subErrors.WithLabelValues(collection, phase).Inc()
}

// Write registra una escritura.
func (c *Collectors) Write(collection, op string, err error) {
	if c == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	c.writes.WithLabelValues(collection, op, result).Inc()
}

// Opened y Closed llevan la cuenta de suscripciones activas.
func (c *Collectors) Opened(collection string) {
	if c == nil {
		return
	}
	c.subscriptions.WithLabelValues(collection).Inc()
}

func (c *Collectors) Closed(collection string) {
	if c == nil {
		return
	}
	c.subscriptions.WithLabelValues(collection).Dec()
}
