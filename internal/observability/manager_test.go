package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/config"
)

func testConfig(obs config.Observability) config.Config {
	if obs.ServiceName == "" {
		obs.ServiceName = "padoca-test"
	}
	return config.Config{Observability: obs}
}

func TestBuildDisabled(t *testing.T) {
	mgr, err := Build(context.Background(), testConfig(config.Observability{}), zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mgr.TracingEnabled())
	assert.False(t, mgr.MetricsEnabled())
	assert.Nil(t, mgr.MetricsHandler())
	assert.NoError(t, mgr.Shutdown(context.Background()))
}

func TestBuildPrometheusPerInstance(t *testing.T) {
	cfg := testConfig(config.Observability{
		EnableMetrics:   true,
		MetricsExporter: "prometheus",
		PrometheusPath:  "/metrics",
	})

	for i := 0; i < 2; i++ {
		mgr, err := Build(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err)
		require.True(t, mgr.MetricsEnabled())
		assert.Equal(t, "/metrics", mgr.PrometheusPath())

		rec := httptest.NewRecorder()
		mgr.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")

		require.NoError(t, mgr.Shutdown(context.Background()))
	}
}

func TestBuildTracingNoneExporter(t *testing.T) {
	mgr, err := Build(context.Background(), testConfig(config.Observability{
		EnableTracing: true,
		TraceExporter: "none",
	}), zap.NewNop())
	require.NoError(t, err)
	assert.False(t, mgr.TracingEnabled())
}

func TestBuildOTLPRequiresEndpoint(t *testing.T) {
	_, err := Build(context.Background(), testConfig(config.Observability{
		EnableTracing: true,
		TraceExporter: "otlp",
	}), zap.NewNop())
	assert.Error(t, err)
}
