// Copyright 2025 Valora Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package requestlog

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valora-inc/logging"
	"github.com/valora-inc/logging/gcloud"
)

func managedProbe() *gcloud.Probe {
	return gcloud.NewProbeWithLookup(func(key string) (string, bool) {
		if key == gcloud.ServiceEnvVar {
			return "api", true
		}

		return "", false
	})
}

func unmanagedProbe() *gcloud.Probe {
	return gcloud.NewProbeWithLookup(func(string) (string, bool) {
		return "", false
	})
}

// serve runs one request through the middleware-wrapped handler.
func serve(t *testing.T, mw func(http.Handler) http.Handler, r *http.Request, handler http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	if handler == nil {
		handler = func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}
	}

	w := httptest.NewRecorder()
	mw(handler).ServeHTTP(w, r)

	return w
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing logger", func(t *testing.T) {
		t.Parallel()

		_, err := New(WithProjectID("p"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNilLogger)
	})

	t.Run("missing project id", func(t *testing.T) {
		t.Parallel()

		logger, _ := logging.NewTestLogger(t)
		_, err := New(WithLogger(logger))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingProjectID)
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		logger, _ := logging.NewTestLogger(t)
		mw, err := New(WithLogger(logger), WithProjectID("p"))
		require.NoError(t, err)
		assert.NotNil(t, mw)
	})
}

func TestMustNewPanicsOnError(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew(WithProjectID("p"))
	})
}

func TestEmitsOneRecordPerRequest(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("p"),
		WithProbe(unmanagedProbe()),
	)

	r := httptest.NewRequest(http.MethodGet, "/orders?limit=5", nil)
	r.Header.Set("Accept", "application/json")
	serve(t, mw, r, nil)

	require.Equal(t, 1, sink.Count())
	rec := sink.Last()

	assert.Equal(t, FinishedMessage, rec["msg"])
	assert.Equal(t, int(logging.LevelInfo), rec["level"])
	assert.NotEmpty(t, rec["requestId"])
	assert.Contains(t, rec, "duration_ms")

	req, ok := rec["req"].(map[string]any)
	require.True(t, ok, "req should be the serialized request view")
	assert.Equal(t, http.MethodGet, req["method"])
	assert.Equal(t, "/orders?limit=5", req["url"])

	res, ok := rec["res"].(map[string]any)
	require.True(t, ok, "res should be the serialized response view")
	assert.Equal(t, float64(http.StatusOK), res["statusCode"])
}

func TestRequestIDsAreUnique(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("p"),
		WithProbe(unmanagedProbe()),
	)

	serve(t, mw, httptest.NewRequest(http.MethodGet, "/a", nil), nil)
	serve(t, mw, httptest.NewRequest(http.MethodGet, "/b", nil), nil)

	records := sink.Records()
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0]["requestId"], records[1]["requestId"])
}

func TestStatusCodeCapture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			},
			want: http.StatusTeapot,
		},
		{
			name: "implicit 200 from write",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("hello"))
			},
			want: http.StatusOK,
		},
		{
			name:    "no write at all",
			handler: func(http.ResponseWriter, *http.Request) {},
			want:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, sink := logging.NewTestLogger(t)
			mw := MustNew(
				WithLogger(logger),
				WithProjectID("p"),
				WithProbe(unmanagedProbe()),
			)

			serve(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), tt.handler)

			res, ok := sink.Last()["res"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(tt.want), res["statusCode"])
		})
	}
}

func TestManagedEnvironmentSummary(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("my-project"),
		WithProbe(managedProbe()),
	)

	r := httptest.NewRequest(http.MethodPost, "/orders", nil)
	r.Host = "api.example.com"
	serve(t, mw, r, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	rec := sink.Last()
	summary, ok := rec["httpRequest"].(map[string]any)
	require.True(t, ok, "managed environments should carry the httpRequest summary")
	assert.Equal(t, http.MethodPost, summary["requestMethod"])
	assert.Equal(t, "http://api.example.com/orders", summary["requestUrl"])
	assert.Equal(t, float64(http.StatusCreated), summary["status"])
	assert.Equal(t, float64(len("created")), summary["responseSize"])
}

func TestUnmanagedEnvironmentOmitsSummaryAndTrace(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("p"),
		WithProbe(unmanagedProbe()),
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(gcloud.TraceContextHeader, "abc123/456;o=1")
	serve(t, mw, r, nil)

	rec := sink.Last()
	assert.NotContains(t, rec, "httpRequest")
	assert.NotContains(t, rec, gcloud.TraceKey)
	assert.NotContains(t, rec, gcloud.SpanKey)
	assert.NotContains(t, rec, gcloud.SampledKey)
}

func TestTraceCorrelationFields(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("my-project"),
		WithProbe(managedProbe()),
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(gcloud.TraceContextHeader, "abc123/456;o=1")
	serve(t, mw, r, nil)

	rec := sink.Last()
	assert.Equal(t, "projects/my-project/traces/abc123", rec[gcloud.TraceKey])
	assert.Equal(t, "456", rec[gcloud.SpanKey])
	assert.Equal(t, true, rec[gcloud.SampledKey])
}

func TestNoTraceHeaderOmitsTraceFields(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("my-project"),
		WithProbe(managedProbe()),
	)

	serve(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	rec := sink.Last()
	assert.NotContains(t, rec, gcloud.TraceKey)
	assert.NotContains(t, rec, gcloud.SpanKey)
}

func TestWithExcludeHTTPRequestField(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("my-project"),
		WithProbe(managedProbe()),
		WithExcludeHTTPRequestField(),
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(gcloud.TraceContextHeader, "abc123/456;o=1")
	serve(t, mw, r, nil)

	rec := sink.Last()
	assert.NotContains(t, rec, "httpRequest")
	assert.Equal(t, "projects/my-project/traces/abc123", rec[gcloud.TraceKey],
		"trace fields are independent of the summary")
}

func TestWithExcludePaths(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("p"),
		WithProbe(unmanagedProbe()),
		WithExcludePaths("/healthz", "/metrics"),
	)

	serve(t, mw, httptest.NewRequest(http.MethodGet, "/healthz", nil), nil)
	serve(t, mw, httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	assert.Equal(t, 0, sink.Count())

	serve(t, mw, httptest.NewRequest(http.MethodGet, "/orders", nil), nil)
	assert.Equal(t, 1, sink.Count())
}

func TestRecordsFlowThroughRedaction(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t,
		logging.WithRedactPaths("req.headers.authorization"),
	)
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("p"),
		WithProbe(unmanagedProbe()),
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer secret-token")
	r.Header.Set("Accept", "application/json")
	serve(t, mw, r, nil)

	req, ok := sink.Last()["req"].(map[string]any)
	require.True(t, ok)
	headers, ok := req["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "***REDACTED***", headers["authorization"])
	assert.Equal(t, "application/json", headers["accept"])
}

func TestEmissionFailureInvokesErrorHandler(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	sinkErr := errors.New("sink unavailable")
	sink.FailWith(sinkErr)

	var handled error
	mw := MustNew(
		WithLogger(logger),
		WithProjectID("p"),
		WithProbe(unmanagedProbe()),
		WithErrorHandler(func(err error) { handled = err }),
	)

	serve(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	require.Error(t, handled)
	assert.ErrorIs(t, handled, sinkErr)
}

func TestEmissionFailurePanicsByDefault(t *testing.T) {
	t.Parallel()

	logger, sink := logging.NewTestLogger(t)
	sink.FailWith(errors.New("sink unavailable"))

	mw := MustNew(
		WithLogger(logger),
		WithProjectID("p"),
		WithProbe(unmanagedProbe()),
	)

	assert.Panics(t, func() {
		serve(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	})
}

func TestFullRequestURL(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/path?q=1", nil)
	r.Host = "example.com"
	assert.Equal(t, "http://example.com/path?q=1", fullRequestURL(r))

	tlsReq := httptest.NewRequest(http.MethodGet, "https://example.com/secure", nil)
	assert.Equal(t, "https://example.com/secure", fullRequestURL(tlsReq))
}
