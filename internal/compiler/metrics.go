package compiler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricPatternsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "compiler",
		Name:      "patterns_total",
		Help:      "Total number of patterns compiled, by result",
	}, []string{"result"})
	metricDFAStates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relex",
		Subsystem: "compiler",
		Name:      "dfa_states",
		Help:      "Number of states of compiled DFAs",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
	metricCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "compiler",
		Name:      "cache_lookups_total",
		Help:      "Total number of compile cache lookups, by result",
	}, []string{"result"})
)

const (
	resultOK      = "ok"
	resultInvalid = "invalid"
	resultHit     = "hit"
	resultMiss    = "miss"
)

func init() {
	// Make the counters present even when zero.
	for _, r := range []string{resultOK, resultInvalid} {
		metricPatternsTotal.WithLabelValues(r)
	}
	for _, r := range []string{resultHit, resultMiss} {
		metricCacheLookups.WithLabelValues(r)
	}
}
