package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/observability"
	"github.com/matzehuels/asciiforge/pkg/observability/prom"
	"github.com/matzehuels/asciiforge/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	return New(runner, append([]Option{WithLogger(logger)}, opts...)...).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "build")
}

func TestListRegistries(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/v1/decorators", "")
	require.Equal(t, http.StatusOK, rr.Code)
	decorators := decodeBody[map[string][]string](t, rr)
	assert.Equal(t, []string{"crosshatch", "diagonal", "dots", "gradient", "solid"}, decorators["decorators"])

	rr = do(t, h, http.MethodGet, "/v1/shapes", "")
	require.Equal(t, http.StatusOK, rr.Code)
	shapes := decodeBody[map[string][]string](t, rr)
	assert.Equal(t, []string{"circle", "line", "polygon", "rectangle", "text"}, shapes["shapes"])
}

func TestRenderShape(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/v1/shapes",
		`{"kind":"rectangle","params":{"width":3,"height":2},"rotate":90}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[renderResponse](t, rr)
	assert.Equal(t, pipeline.KindShape, resp.Kind)
	assert.Equal(t, "txt", resp.Format)
	assert.Equal(t, 2, resp.Width)
	assert.Equal(t, 3, resp.Height)
	assert.Equal(t, "**\n**\n**\n", resp.Output)
	assert.NotEmpty(t, resp.ID)
}

func TestRenderShapeRaw(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/v1/shapes?raw=true",
		`{"kind":"rectangle","params":{"width":2,"height":2},"format":"svg"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "<svg"))
}

func TestCompose(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/v1/compose", `{
		"width": 5, "height": 3,
		"shapes": [
			{"type": "rectangle", "params": {"width": 1, "height": 1, "char": "o"}},
			{"type": "rectangle", "params": {"width": 1, "height": 1}, "placement": {"anchor": "bottomRight", "char": "x"}}
		]
	}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[renderResponse](t, rr)
	assert.Equal(t, "     \n  o  \n    x\n", resp.Output)
	assert.Equal(t, 2, resp.Operations)
}

func TestExecuteRecipe(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/v1/recipes/execute", `{
		"recipe": [
			{"op": "generate", "shape": "rectangle", "params": {"width": 3, "height": 3}, "storeAs": "box"},
			{"op": "decorate", "source": "box", "decorator": "solid", "params": {"char": "."}, "storeAs": "out"}
		],
		"output": "out",
		"format": "json"
	}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[renderResponse](t, rr)
	assert.Equal(t, "json", resp.Format)
	assert.Equal(t, 2, resp.Operations)

	var doc struct {
		Rows []string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Output), &doc))
	assert.Equal(t, []string{"***", "*.*", "***"}, doc.Rows)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed body", "/v1/shapes", `{"kind":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "/v1/shapes", `{"kind":"circle","colour":"red"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown shape", "/v1/shapes", `{"kind":"star"}`, http.StatusBadRequest, errors.ErrCodeUnknownShape},
		{"bad format", "/v1/shapes", `{"kind":"circle","params":{"radius":1},"format":"png"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad anchor", "/v1/compose", `{"width":3,"height":3,"shapes":[{"type":"circle","params":{"radius":1},"placement":{"anchor":"middle"}}]}`, http.StatusBadRequest, errors.ErrCodeInvalidAnchor},
		{"invalid recipe", "/v1/recipes/execute", `{"recipe":[],"output":"out"}`, http.StatusBadRequest, errors.ErrCodeInvalidRecipe},
		{
			"missing output", "/v1/recipes/execute",
			`{"recipe":[{"op":"generate","shape":"circle","params":{"radius":1},"storeAs":"a"}],"output":"b"}`,
			http.StatusUnprocessableEntity, errors.ErrCodeOutputNotProduced,
		},
		{
			"missing symbol", "/v1/recipes/execute",
			`{"recipe":[{"op":"clip","source":"nope","bounds":{"startRow":0,"endRow":1,"startCol":0,"endCol":1},"storeAs":"a"}],"output":"a"}`,
			http.StatusUnprocessableEntity, errors.ErrCodeSymbolNotFound,
		},
	}

	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			resp := decodeBody[errorResponse](t, rr)
			assert.Equal(t, string(tt.code), resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestStatusForUncoded(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.New(errors.ErrCodeFileNotFound, "gone")))
}

type routeRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (r *routeRecorder) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
	r.codes = append(r.codes, status)
}

func TestInstrumentReportsRoutePattern(t *testing.T) {
	rec := &routeRecorder{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	h := newTestServer(t)
	do(t, h, http.MethodGet, "/v1/decorators", "")
	do(t, h, http.MethodPost, "/v1/shapes", `{"kind":"star"}`)

	assert.Equal(t, []string{"/v1/decorators", "/v1/shapes"}, rec.routes)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, rec.codes)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom.New(reg).Install()
	t.Cleanup(observability.Reset)

	h := newTestServer(t, WithMetrics(reg))
	do(t, h, http.MethodPost, "/v1/shapes", `{"kind":"circle","params":{"radius":2}}`)

	rr := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "asciiforge_runs_total")
	assert.Contains(t, body, `asciiforge_http_requests_total{code="200",method="POST",route="/v1/shapes"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	rr := do(t, newTestServer(t), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.New(io.Discard)
	s := New(pipeline.NewRunner(nil, nil, logger), WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
