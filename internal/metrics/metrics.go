// Package metrics records run results as Prometheus gauges and writes them in
// the text exposition format for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AndreyAkinshin/suiterun/internal/aggregate"
	"github.com/AndreyAkinshin/suiterun/internal/model"
)

// Namespace prefixes every metric name.
const Namespace = "suiterun"

// Recorder holds the gauges of a single run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	suiteSucceeded *prometheus.GaugeVec
	suiteTests     *prometheus.GaugeVec
	suiteDuration  *prometheus.GaugeVec
	suites         *prometheus.GaugeVec
	tests          *prometheus.GaugeVec
	successRate    *prometheus.GaugeVec
}

// NewRecorder creates a Recorder whose series are labelled with runID.
func NewRecorder(runID string) *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"run_id": runID}

	return &Recorder{
		registry: reg,
		suiteSucceeded: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "suite_succeeded",
			Help:        "1 when the suite process exited cleanly, 0 otherwise",
			ConstLabels: constLabels,
		}, []string{"suite", "outcome"}),
		suiteTests: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "suite_tests",
			Help:        "Test cases reported by the suite, by result",
			ConstLabels: constLabels,
		}, []string{"suite", "result"}),
		suiteDuration: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "suite_duration_seconds",
			Help:        "Wall time of the suite process",
			ConstLabels: constLabels,
		}, []string{"suite"}),
		suites: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "suites",
			Help:        "Suites in the run, by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		tests: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "tests",
			Help:        "Test cases in the run, by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		successRate: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "success_rate_percent",
			Help:        "Passed tests as a percentage of all tests; absent when no tests ran",
			ConstLabels: constLabels,
		}, nil),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Record sets gauges for every outcome and for the aggregate.
func (r *Recorder) Record(outcomes []model.SuiteOutcome, rep aggregate.Report) {
	for _, o := range outcomes {
		succeeded := 0.0
		if o.Succeeded {
			succeeded = 1
		}
		r.suiteSucceeded.WithLabelValues(o.Name, o.Kind.String()).Set(succeeded)
		r.suiteTests.WithLabelValues(o.Name, "total").Set(float64(o.Total))
		r.suiteTests.WithLabelValues(o.Name, "passed").Set(float64(o.Passed))
		r.suiteTests.WithLabelValues(o.Name, "failed").Set(float64(o.Failed))
		r.suiteDuration.WithLabelValues(o.Name).Set(o.Duration.Seconds())
	}

	r.suites.WithLabelValues("total").Set(float64(rep.SuiteCount))
	r.suites.WithLabelValues("succeeded").Set(float64(rep.SuccessfulSuites))
	r.suites.WithLabelValues("failed").Set(float64(rep.FailedSuites()))
	r.suites.WithLabelValues("with_test_failures").Set(float64(rep.SuitesWithTestFailures))
	r.tests.WithLabelValues("total").Set(float64(rep.TotalTests))
	r.tests.WithLabelValues("passed").Set(float64(rep.TotalPassed))
	r.tests.WithLabelValues("failed").Set(float64(rep.TotalFailed))
	if rate, ok := rep.SuccessRate(); ok {
		r.successRate.WithLabelValues().Set(rate)
	}
}

// WriteTextfile writes the recorded series to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
