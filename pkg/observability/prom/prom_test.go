package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/asciiforge/pkg/observability"
)

func TestHooksRecordMetrics(t *testing.T) {
	ctx := context.Background()
	h := New(prometheus.NewRegistry())

	h.OnRunComplete(ctx, "recipe", 45, time.Millisecond, nil)
	h.OnRunComplete(ctx, "recipe", 0, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "shape")
	h.OnCacheMiss(ctx, "shape")
	h.OnCacheSet(ctx, "shape", 128)
	h.OnExport(ctx, "svg", 512, time.Millisecond, nil)
	h.OnResponse(ctx, "POST", "/v1/shapes", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.runs.WithLabelValues("recipe", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.runs.WithLabelValues("recipe", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.cacheEvents.WithLabelValues("shape", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.cacheEvents.WithLabelValues("shape", "miss")))
	assert.Equal(t, 128.0, testutil.ToFloat64(h.cacheBytes.WithLabelValues("shape")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.exports.WithLabelValues("svg", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.requests.WithLabelValues("POST", "/v1/shapes", "200")))
}

func TestInstall(t *testing.T) {
	defer observability.Reset()
	h := New(prometheus.NewRegistry())
	h.Install()

	assert.Same(t, h, observability.Pipeline())
	assert.Same(t, h, observability.Cache())
	assert.Same(t, h, observability.HTTP())
}
