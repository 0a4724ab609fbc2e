package metrics

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

func TestQuotes_RandomServed(t *testing.T) {
	q := NewQuotes(prometheus.NewRegistry())

	q.RandomServed(ports.OutcomeQuote)
	q.RandomServed(ports.OutcomeQuote)
	q.RandomServed(ports.OutcomeEmpty)

	assert.InDelta(t, 2, testutil.ToFloat64(q.randomServed.WithLabelValues("quote")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(q.randomServed.WithLabelValues("empty")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(q.randomServed.WithLabelValues("degraded")), 0)
}

func TestQuotes_AdminOperation(t *testing.T) {
	q := NewQuotes(prometheus.NewRegistry())

	q.AdminOperation("create", nil)
	q.AdminOperation("create", errors.New("boom"))
	q.AdminOperation("create", domain.NewValidationError("text", "is required"))
	q.AdminOperation("delete", nil)
	q.AdminOperation("delete", fmt.Errorf("deleting quote: %w", domain.NewNotFoundError(domain.EntityQuote, "q1")))
	q.AdminOperation("list", domain.NewUnavailableError("quote-store", "list failed"))

	tests := []struct {
		op, result string
	}{
		{"create", ResultSuccess},
		{"create", ResultError},
		{"create", ResultInvalid},
		{"delete", ResultSuccess},
		{"delete", ResultNotFound},
		{"list", ResultUnavailable},
	}

	for _, tt := range tests {
		assert.InDelta(t, 1, testutil.ToFloat64(q.adminOps.WithLabelValues(tt.op, tt.result)), 0, tt.op+"/"+tt.result)
	}
}

func TestQuotes_RetriesAndImports(t *testing.T) {
	q := NewQuotes(prometheus.NewRegistry())

	q.SampleRetried()
	q.Imported(3)
	q.Imported(0)

	assert.InDelta(t, 1, testutil.ToFloat64(q.retries), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(q.imported), 0)
}

func TestQuotes_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	q := NewQuotes(reg)

	q.Imported(2)

	expected := `
# HELP quotes_imported_total Quotes stored by upstream imports.
# TYPE quotes_imported_total counter
quotes_imported_total 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "quotes_imported_total"))

	n, err := testutil.GatherAndCount(reg, "quotes_random_served_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestNewQuotes_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewQuotes(reg)

	assert.Panics(t, func() { NewQuotes(reg) })
}
