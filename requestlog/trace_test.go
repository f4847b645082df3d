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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/valora-inc/logging/gcloud"
)

func TestCloudTraceExtractor(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(gcloud.TraceContextHeader, "abc123/456;o=1")

	traceID, spanID, sampled, ok := CloudTraceExtractor(r)
	require.True(t, ok)
	assert.Equal(t, "abc123", traceID)
	assert.Equal(t, "456", spanID)
	assert.True(t, sampled)

	_, _, _, ok = CloudTraceExtractor(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestOTelExtractor(t *testing.T) {
	t.Parallel()

	t.Run("active span", func(t *testing.T) {
		t.Parallel()

		provider := sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

		ctx, span := provider.Tracer("test").Start(t.Context(), "handle")
		defer span.End()

		r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

		traceID, spanID, sampled, ok := OTelExtractor(r)
		require.True(t, ok)
		assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
		assert.Equal(t, span.SpanContext().SpanID().String(), spanID)
		assert.True(t, sampled)
	})

	t.Run("no span", func(t *testing.T) {
		t.Parallel()

		_, _, _, ok := OTelExtractor(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
	})
}

func TestDefaultExtractorPrefersHeader(t *testing.T) {
	t.Parallel()

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	ctx, span := provider.Tracer("test").Start(t.Context(), "handle")
	defer span.End()

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	r.Header.Set(gcloud.TraceContextHeader, "header-trace/789;o=1")

	traceID, spanID, _, ok := DefaultExtractor(r)
	require.True(t, ok)
	assert.Equal(t, "header-trace", traceID)
	assert.Equal(t, "789", spanID)
}

func TestDefaultExtractorFallsBackToOTel(t *testing.T) {
	t.Parallel()

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	ctx, span := provider.Tracer("test").Start(t.Context(), "handle")
	defer span.End()

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	traceID, _, _, ok := DefaultExtractor(r)
	require.True(t, ok)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
}
