package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelMethod = "method"
	labelPath   = "path"
	labelStatus = "status"
)

type httpMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	factory := promauto.With(reg)

	return &httpMetrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parking_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{labelMethod, labelPath, labelStatus},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parking_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{labelMethod, labelPath},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "parking_http_requests_in_flight",
				Help: "Number of HTTP requests being served",
			},
		),
	}
}

// lotCollector reports the current lot at scrape time.
type lotCollector struct {
	handler  *Handler
	capacity *prometheus.Desc
	occupied *prometheus.Desc
}

func newLotCollector(h *Handler) *lotCollector {
	return &lotCollector{
		handler: h,
		capacity: prometheus.NewDesc("parking_lot_capacity_slots",
			"Number of slots in the current parking lot", nil, nil),
		occupied: prometheus.NewDesc("parking_lot_occupied_slots",
			"Number of occupied slots in the current parking lot", nil, nil),
	}
}

func (c *lotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.occupied
}

func (c *lotCollector) Collect(ch chan<- prometheus.Metric) {
	capacity, occupied, ok := c.handler.occupancy()
	if !ok {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(capacity))
	ch <- prometheus.MustNewConstMetric(c.occupied, prometheus.GaugeValue, float64(occupied))
}

func newRegistry(h *Handler) (*prometheus.Registry, *httpMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newLotCollector(h),
	)
	return reg, newHTTPMetrics(reg)
}
