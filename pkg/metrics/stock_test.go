package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/metrics"
)

func TestStockMetrics_CountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStockMetrics(reg)

	m.Record("create_exit", nil)
	m.Record("create_exit", domain.StockErrors{{ProductID: "A", Available: 1, Requested: 3}})
	m.Record("create_exit", domain.StockErrors{{ProductID: "B", Available: 0, Requested: 1}})
	m.Record("create_entry", &domain.PackageRuleError{Rule: domain.ErrEmptyPackage, Message: "vacío"})
	m.Record("delete_entry", &domain.PersistenceError{Op: "delete_entry", Err: errors.New("boom")})

	count, err := testutil.GatherAndCount(reg, "stock_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	expected := `
# HELP stock_operations_total Operaciones del motor de stock por operación y resultado.
# TYPE stock_operations_total counter
stock_operations_total{operation="create_entry",outcome="rejected"} 1
stock_operations_total{operation="create_exit",outcome="insufficient_stock"} 2
stock_operations_total{operation="create_exit",outcome="ok"} 1
stock_operations_total{operation="delete_entry",outcome="persistence_failure"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "stock_operations_total"))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeOK, metrics.Outcome(nil))
	assert.Equal(t, metrics.OutcomeInvalid, metrics.Outcome(domain.NewValidationError("cantidad", "debe ser mayor que cero")))
	assert.Equal(t, metrics.OutcomeNotFound, metrics.Outcome(domain.NewNotFound("bulto", "x")))
	assert.Equal(t, metrics.OutcomeRejected, metrics.Outcome(&domain.PackageRuleError{Rule: domain.ErrDuplicateMovement}))
	assert.Equal(t, metrics.OutcomePersistence, metrics.Outcome(errors.New("io")))
}

func TestNilRegistererIsInert(t *testing.T) {
	m := metrics.NewStockMetrics(nil)
	assert.NotPanics(t, func() { m.Record("create_entry", nil) })

	h := metrics.NewHTTPMetrics(nil)
	assert.NotPanics(t, func() { h.Observe("GET", "/health", "200", time.Millisecond) })
}

func TestHTTPMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := metrics.NewHTTPMetrics(reg)
	h.Observe("POST", "/api/entries", "201", 20*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
