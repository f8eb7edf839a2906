package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics on a
// private registry.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	deployResults *prom.CounterVec
	sitePosts     prom.Gauge
	httpRequests  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the build metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "inkwell",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "inkwell",
		Name:      "build_duration_seconds",
		Help:      "Total build duration including fingerprinting and deploy",
		Buckets:   prom.DefBuckets,
	})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "inkwell",
		Name:      "build_outcomes_total",
		Help:      "Build runs by final outcome",
	}, []string{"outcome"})
	pr.deployResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "inkwell",
		Name:      "deploy_results_total",
		Help:      "Deploy attempts by success/failure",
	}, []string{"result"})
	pr.sitePosts = prom.NewGauge(prom.GaugeOpts{
		Namespace: "inkwell",
		Name:      "site_posts",
		Help:      "Number of posts in the last successful build",
	})
	pr.httpRequests = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "inkwell",
		Name:      "http_requests_total",
		Help:      "Editor HTTP requests by method and status code",
	}, []string{"method", "status"})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.deployResults, pr.sitePosts, pr.httpRequests)
	return pr
}

// Handler exposes the recorder's registry over HTTP.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome OutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncDeploy(success bool) {
	if p == nil || p.deployResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.deployResults.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncHTTPRequest(method string, status int) {
	if p == nil || p.httpRequests == nil {
		return
	}
	p.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) SetSitePosts(n int) {
	if p == nil || p.sitePosts == nil {
		return
	}
	p.sitePosts.Set(float64(n))
}
