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

// Package requestlog provides HTTP middleware emitting one structured record
// per finished request.
//
// The record carries the request and response views (rendered by the logging
// package's standard serializers), a fresh requestId, and the request
// duration in milliseconds. When a managed hosting environment is detected
// the record additionally carries the platform's structured httpRequest
// summary and the reserved trace correlation keys, so the log viewer groups
// the record with its distributed trace.
//
// # Usage
//
//	logger := logging.MustNew(
//	    logging.WithName("api"),
//	    logging.WithRedactPaths("req.headers.authorization"),
//	)
//
//	mw := requestlog.MustNew(
//	    requestlog.WithLogger(logger),
//	    requestlog.WithProjectID("my-project"),
//	    requestlog.WithExcludePaths("/healthz"),
//	)
//
//	http.ListenAndServe(":8080", mw(mux))
//
// # Trace Correlation
//
// Trace context is resolved per request by a [TraceExtractor]. The default
// chain reads the provider's X-Cloud-Trace-Context header first and falls
// back to any active OpenTelemetry span on the request context; replace it
// with [WithTraceExtractor] when only one source applies.
//
// # Failure Handling
//
// The middleware never drops a record silently. If emitting fails it calls
// the configured error handler, which by default panics: an emission failure
// means the redaction pipeline failed, and that must not fail open. Override
// with [WithErrorHandler] to degrade differently.
package requestlog
