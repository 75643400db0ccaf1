package apiclient

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "client_http_requests_total",
		Help: "Total number of outgoing HTTP requests.",
	}, []string{"method", "host", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "client_http_request_duration_seconds",
		Help:    "Duration of outgoing HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "host"})
)

type instrumentedTransport struct {
	base http.RoundTripper
}

// InstrumentTransport wraps a RoundTripper with request counters and
// duration histograms. Labels stay at method/host granularity; paths carry
// entity ids and would blow up cardinality.
func InstrumentTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &instrumentedTransport{base: base}
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.base.RoundTrip(req)

	duration := time.Since(start).Seconds()
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	httpRequestsTotal.WithLabelValues(req.Method, req.URL.Host, status).Inc()
	httpDuration.WithLabelValues(req.Method, req.URL.Host).Observe(duration)

	return resp, err
}
