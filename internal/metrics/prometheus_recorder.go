package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry         *prom.Registry
	generateDuration prom.Histogram
	generateOutcome  *prom.CounterVec
	publishOutcome   *prom.CounterVec
	mutations        *prom.CounterVec
	httpDuration     *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry. A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.generateDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "blogsmith",
		Name:      "generate_duration_seconds",
		Help:      "Duration of snapshot generation runs",
		Buckets:   prom.DefBuckets,
	})
	pr.generateOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "blogsmith",
		Name:      "generate_outcomes_total",
		Help:      "Snapshot generation outcomes by final status",
	}, []string{"outcome"})
	pr.publishOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "blogsmith",
		Name:      "publish_outcomes_total",
		Help:      "Publish outcomes by final status",
	}, []string{"outcome"})
	pr.mutations = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "blogsmith",
		Name:      "mutations_total",
		Help:      "Admin mutations by entity kind and action",
	}, []string{"kind", "action"})
	pr.httpDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "blogsmith",
		Name:      "http_request_duration_seconds",
		Help:      "Admin API request durations",
		Buckets:   prom.DefBuckets,
	}, []string{"method", "status"})
	reg.MustRegister(pr.generateDuration, pr.generateOutcome, pr.publishOutcome, pr.mutations, pr.httpDuration)
	return pr
}

// Handler returns the /metrics scrape handler for this recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (p *PrometheusRecorder) ObserveGenerateDuration(d time.Duration) {
	p.generateDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGenerateOutcome(outcome OutcomeLabel) {
	p.generateOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncPublishOutcome(outcome OutcomeLabel) {
	p.publishOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncMutation(kind, action string) {
	p.mutations.WithLabelValues(kind, action).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method string, status int, d time.Duration) {
	p.httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}
