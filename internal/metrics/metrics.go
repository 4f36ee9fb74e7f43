// Package metrics содержит коллекторы Prometheus, общие для агрегатора
// ленты и HTTP-сервера.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hws_news"

// Результаты загрузки, используемые как значения метки.
const (
	ResultOK      = "ok"
	ResultNetwork = "network_error"
	ResultDecode  = "decode_error"
	ResultCancel  = "canceled"
)

type Metrics struct {
	PageFetches   *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	MergedItems   prometheus.Gauge
	HTTPRequests  *prometheus.CounterVec
}

// New создаёт коллекторы и регистрирует их в reg. При nil регистрация
// пропускается.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PageFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_fetches_total",
			Help:      "Feed page fetches by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_fetch_duration_seconds",
			Help:      "Time spent fetching and decoding one feed page.",
			Buckets:   prometheus.DefBuckets,
		}),
		MergedItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "merged_items",
			Help:      "Items in the merged collection.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by path and status.",
		}, []string{"path", "status"}),
	}

	if reg != nil {
		reg.MustRegister(m.PageFetches, m.FetchDuration, m.MergedItems, m.HTTPRequests)
	}
	return m
}

// ObserveFetch учитывает одну загрузку страницы. Допускает nil-получатель.
func (m *Metrics) ObserveFetch(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.PageFetches.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// SetMerged записывает размер объединённой коллекции. Допускает nil-получатель.
func (m *Metrics) SetMerged(n int) {
	if m == nil {
		return
	}
	m.MergedItems.Set(float64(n))
}

// ObserveRequest учитывает один обработанный HTTP-запрос. Допускает nil-получатель.
func (m *Metrics) ObserveRequest(path string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(path, statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
