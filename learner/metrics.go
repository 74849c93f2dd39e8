// SPDX-License-Identifier: MIT
package learner

import "github.com/prometheus/client_golang/prometheus"

// metrics holds every instrument a FeatureLearner emits during Fit and
// Transform, registered against a caller-injected prometheus.Registerer
// (spec §9 "injected, not statically linked" — no metric here ever touches
// prometheus.DefaultRegisterer).
type metrics struct {
	fitDuration       prometheus.Histogram
	fitSSE            prometheus.Gauge
	treesFitted       prometheus.Gauge
	transformDuration prometheus.Histogram
	shardErrors       prometheus.Counter
}

// newMetrics registers a fresh instrument set against reg. A nil reg
// disables metrics entirely: it returns a nil *metrics, whose methods are
// no-ops, so callers never need a feature flag to opt out.
func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		fitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "relboost",
			Subsystem: "learner",
			Name:      "fit_duration_seconds",
			Help:      "Wall-clock duration of FeatureLearner.Fit.",
			Buckets:   prometheus.DefBuckets,
		}),
		fitSSE: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "relboost",
			Subsystem: "learner",
			Name:      "fit_sse",
			Help:      "Sum of squared error of the committed ensemble after the last Fit.",
		}),
		treesFitted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "relboost",
			Subsystem: "learner",
			Name:      "trees_fitted",
			Help:      "Number of boosting rounds committed by the last Fit.",
		}),
		transformDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "relboost",
			Subsystem: "learner",
			Name:      "transform_duration_seconds",
			Help:      "Wall-clock duration of FeatureLearner.Transform.",
			Buckets:   prometheus.DefBuckets,
		}),
		shardErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relboost",
			Subsystem: "learner",
			Name:      "dfs_shard_errors_total",
			Help:      "Total propositionalization shard failures across every Transform call.",
		}),
	}

	reg.MustRegister(m.fitDuration, m.fitSSE, m.treesFitted, m.transformDuration, m.shardErrors)

	return m
}

func (m *metrics) observeFit(seconds, sse float64, numTrees int) {
	if m == nil {
		return
	}
	m.fitDuration.Observe(seconds)
	m.fitSSE.Set(sse)
	m.treesFitted.Set(float64(numTrees))
}

func (m *metrics) observeTransform(seconds float64) {
	if m == nil {
		return
	}
	m.transformDuration.Observe(seconds)
}

func (m *metrics) observeShardError() {
	if m == nil {
		return
	}
	m.shardErrors.Inc()
}
