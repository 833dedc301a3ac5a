package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
)

const namespace = "docrefs"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	linkResults   *prom.CounterVec
	anchorResults *prom.CounterVec
	suggestions   *prom.CounterVec
	fixResults    *prom.CounterVec
	redirects     prom.Counter
	runDuration   *prom.HistogramVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		linkResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_checked_total",
			Help:      "Checked links by validation status",
		}, []string{"status"}),
		anchorResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "anchors_checked_total",
			Help:      "Checked anchors by result",
		}, []string{"result"}),
		suggestions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Fix suggestions by confidence",
		}, []string{"confidence"}),
		fixResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fixes_total",
			Help:      "Attempted link rewrites by result",
		}, []string{"result"}),
		redirects: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_added_total",
			Help:      "Redirect entries appended to the configuration",
		}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a command run",
			Buckets:   prom.DefBuckets,
		}, []string{"command"}),
	}
	reg.MustRegister(pr.linkResults, pr.anchorResults, pr.suggestions, pr.fixResults, pr.redirects, pr.runDuration)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) IncLinkResult(status LinkStatus) {
	if p == nil {
		return
	}
	p.linkResults.WithLabelValues(string(status)).Inc()
}

func (p *PrometheusRecorder) IncAnchorResult(valid bool) {
	if p == nil {
		return
	}
	p.anchorResults.WithLabelValues(resultLabel(valid, "valid", "broken")).Inc()
}

func (p *PrometheusRecorder) IncSuggestion(confidence string) {
	if p == nil {
		return
	}
	p.suggestions.WithLabelValues(confidence).Inc()
}

func (p *PrometheusRecorder) IncFixResult(success bool) {
	if p == nil {
		return
	}
	p.fixResults.WithLabelValues(resultLabel(success, "success", "failed")).Inc()
}

func (p *PrometheusRecorder) AddRedirects(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.redirects.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(command string, d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(command).Observe(d.Seconds())
}

// WriteTextfile writes the registry in the text exposition format, atomically
// replacing path, for collection by node_exporter's textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return errors.FileSystemError("failed to write metrics textfile").Wrap(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

func resultLabel(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
