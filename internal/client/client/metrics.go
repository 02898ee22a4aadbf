package client

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters the API client maintains.
type Metrics struct {
	Requests *prometheus.CounterVec
	Refresh  *prometheus.CounterVec
	Logouts  *prometheus.CounterVec
}

// NewMetrics creates the client counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophershop",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests by method and response status.",
		}, []string{"method", "status"}),
		Refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophershop",
			Subsystem: "client",
			Name:      "token_refresh_total",
			Help:      "Token refresh calls by result.",
		}, []string{"result"}),
		Logouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophershop",
			Subsystem: "client",
			Name:      "logouts_total",
			Help:      "Session logouts by reason.",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Refresh, m.Logouts)
	}
	return m
}

func (m *Metrics) request(method string, status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.Requests.WithLabelValues(method, label).Inc()
}
