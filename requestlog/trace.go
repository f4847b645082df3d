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

	"go.opentelemetry.io/otel/trace"

	"github.com/valora-inc/logging/gcloud"
)

// TraceExtractor reports the trace correlation of one finished request.
// ok is false when no trace context is available; the record then carries
// no trace fields.
type TraceExtractor func(r *http.Request) (traceID, spanID string, sampled, ok bool)

// CloudTraceExtractor reads the provider's X-Cloud-Trace-Context header.
func CloudTraceExtractor(r *http.Request) (string, string, bool, bool) {
	return gcloud.ParseTraceContext(r.Header.Get(gcloud.TraceContextHeader))
}

// OTelExtractor reads the active OpenTelemetry span on the request context,
// for deployments where an upstream tracing middleware already established
// the span.
func OTelExtractor(r *http.Request) (string, string, bool, bool) {
	sc := trace.SpanContextFromContext(r.Context())
	if !sc.IsValid() {
		return "", "", false, false
	}

	return sc.TraceID().String(), sc.SpanID().String(), sc.IsSampled(), true
}

// DefaultExtractor tries the provider header first, then OpenTelemetry.
func DefaultExtractor(r *http.Request) (string, string, bool, bool) {
	if traceID, spanID, sampled, ok := CloudTraceExtractor(r); ok {
		return traceID, spanID, sampled, ok
	}

	return OTelExtractor(r)
}
