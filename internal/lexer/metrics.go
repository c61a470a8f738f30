package lexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "lexer",
		Name:      "tokens_total",
		Help:      "Total number of tokens produced, by token type",
	}, []string{"type"})
	metricInvalidTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "lexer",
		Name:      "invalid_tokens_total",
		Help:      "Total number of scans where no token type matched",
	})
	metricInvalidPatternsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "lexer",
		Name:      "invalid_patterns_total",
		Help:      "Total number of token types disabled by an invalid pattern",
	})
)
