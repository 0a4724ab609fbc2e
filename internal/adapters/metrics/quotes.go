// Package metrics exposes quote business metrics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

// Namespace prefixes every metric of this package.
const Namespace = "quotes"

const (
	LabelOutcome   = "outcome"
	LabelOperation = "operation"
	LabelResult    = "result"

	ResultSuccess     = "success"
	ResultNotFound    = "not_found"
	ResultInvalid     = "invalid"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

func resultOf(err error) string {
	if err == nil {
		return ResultSuccess
	}

	switch domain.KindOf(err) {
	case domain.ErrNotFound:
		return ResultNotFound
	case domain.ErrValidation:
		return ResultInvalid
	case domain.ErrUnavailable:
		return ResultUnavailable
	default:
		return ResultError
	}
}

// Quotes implements ports.QuoteMetrics on Prometheus collectors.
type Quotes struct {
	randomServed *prometheus.CounterVec
	retries      prometheus.Counter
	adminOps     *prometheus.CounterVec
	imported     prometheus.Counter
}

var _ ports.QuoteMetrics = (*Quotes)(nil)

// NewQuotes registers the collectors on reg. A nil reg uses the default
// registerer; it panics if the collectors are already registered there.
func NewQuotes(reg prometheus.Registerer) *Quotes {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	q := &Quotes{
		randomServed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "random_served_total",
			Help:      "Random-quote requests answered, by outcome.",
		}, []string{LabelOutcome}),
		retries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "random_retries_total",
			Help:      "Random samples retried after the collection shrank.",
		}),
		adminOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "admin_operations_total",
			Help:      "Administrative operations, by operation and result (success or error kind).",
		}, []string{LabelOperation, LabelResult}),
		imported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "imported_total",
			Help:      "Quotes stored by upstream imports.",
		}),
	}

	// Pre-create the outcome series so dashboards see zeros.
	for _, outcome := range []ports.RandomOutcome{ports.OutcomeQuote, ports.OutcomeEmpty, ports.OutcomeDegraded} {
		q.randomServed.WithLabelValues(string(outcome))
	}

	return q
}

func (q *Quotes) RandomServed(outcome ports.RandomOutcome) {
	q.randomServed.WithLabelValues(string(outcome)).Inc()
}

func (q *Quotes) SampleRetried() {
	q.retries.Inc()
}

func (q *Quotes) AdminOperation(operation string, err error) {
	q.adminOps.WithLabelValues(operation, resultOf(err)).Inc()
}

func (q *Quotes) Imported(n int) {
	if n > 0 {
		q.imported.Add(float64(n))
	}
}
