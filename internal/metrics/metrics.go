package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ads_dashboard"

// Metrics reúne a instrumentação do caminho de leitura e da sincronização.
// Métodos aceitam receptor nil para que os componentes funcionem sem métricas.
type Metrics struct {
	Loads        *prometheus.CounterVec
	LoadLatency  *prometheus.HistogramVec
	Syncs        *prometheus.CounterVec
	SyncLatency  prometheus.Histogram
	ActiveViews  prometheus.Gauge
	HTTPRequests *prometheus.CounterVec
}

var DefaultMetrics *Metrics

// NewMetrics registra as métricas no registerer informado (nil usa o registro padrão)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		Loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "loads_total",
				Help:      "Total de cargas de métricas por filtro e resultado",
			},
			[]string{"filter", "result"},
		),
		LoadLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_latency_seconds",
				Help:      "Duração do caminho de leitura em segundos",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"filter"},
		),
		Syncs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "syncs_total",
				Help:      "Decisões e resultados de sincronização",
			},
			[]string{"outcome"},
		),
		SyncLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_latency_seconds",
				Help:      "Duração da chamada ao gatilho de ingestão",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		ActiveViews: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_views",
				Help:      "Visões do painel abertas",
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Requisições HTTP por rota e status",
			},
			[]string{"method", "path", "status"},
		),
	}

	DefaultMetrics = m
	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor expõe um registro específico, usado quando o registro padrão não é o alvo
func HandlerFor(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordLoad(filter string, failed bool, latency time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if failed {
		result = "error"
	}
	m.Loads.WithLabelValues(filter, result).Inc()
	m.LoadLatency.WithLabelValues(filter).Observe(latency.Seconds())
}

// RecordSync registra triggered, skipped, succeeded ou failed
func (m *Metrics) RecordSync(outcome string) {
	if m == nil {
		return
	}
	m.Syncs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSyncLatency(latency time.Duration) {
	if m == nil {
		return
	}
	m.SyncLatency.Observe(latency.Seconds())
}

func (m *Metrics) SetActiveViews(count int) {
	if m == nil {
		return
	}
	m.ActiveViews.Set(float64(count))
}

func (m *Metrics) RecordHTTPRequest(method, path string, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
}
