package health_test

import (
	"context"
	"errors"
	"testing"

	"notekeeper-be/internal/health"
	"notekeeper-be/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestChecker(deps map[string]health.Pinger) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return health.NewChecker(deps, logger.NewNopLogger(), reg), reg
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, dependency string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "notekeeper_health_check_up" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == dependency {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("gauge for %s not found", dependency)
	return 0
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(map[string]health.Pinger{"postgres": &mockPinger{err: errors.New("db down")}})

	result := c.Liveness(context.Background())

	assert.Equal(t, "up", result.Status)
	assert.Nil(t, result.Checks)
}

func TestReadiness_AllUp(t *testing.T) {
	c, reg := newTestChecker(map[string]health.Pinger{
		"postgres": &mockPinger{},
		"redis":    health.PingFunc(func(context.Context) error { return nil }),
	})

	result := c.Readiness(context.Background())

	assert.Equal(t, "up", result.Status)
	assert.Equal(t, "up", result.Checks["postgres"].Status)
	assert.Equal(t, "up", result.Checks["redis"].Status)
	assert.Equal(t, 1.0, gaugeValue(t, reg, "postgres"))
	count, err := testutil.GatherAndCount(reg, "notekeeper_health_check_up")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReadiness_OneDown(t *testing.T) {
	c, reg := newTestChecker(map[string]health.Pinger{
		"postgres": &mockPinger{err: errors.New("connection refused")},
		"redis":    &mockPinger{},
	})

	result := c.Readiness(context.Background())

	assert.Equal(t, "down", result.Status)
	assert.Equal(t, "down", result.Checks["postgres"].Status)
	assert.Equal(t, "connection refused", result.Checks["postgres"].Error)
	assert.Equal(t, "up", result.Checks["redis"].Status)
	assert.Equal(t, 0.0, gaugeValue(t, reg, "postgres"))
	assert.Equal(t, 1.0, gaugeValue(t, reg, "redis"))
}
