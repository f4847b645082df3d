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
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/valora-inc/logging"
	"github.com/valora-inc/logging/gcloud"
)

// FinishedMessage is the msg field of the per-request record.
const FinishedMessage = "Request finished"

// Emitter is the logger capability the middleware needs. A
// [*logging.Logger] satisfies it; tests may substitute fakes.
type Emitter interface {
	Log(level logging.Level, fields logging.Fields, msg string) error
}

// middleware holds the configuration assembled by [New].
type middleware struct {
	logger             Emitter
	projectID          string
	excludeHTTPRequest bool
	extract            TraceExtractor
	probe              *gcloud.Probe
	excludePaths       map[string]bool
	onError            func(error)
}

// New builds HTTP middleware that emits exactly one informational record per
// finished request, carrying the request and response views and, when a
// managed hosting environment is detected, the structured request summary
// and trace correlation fields.
//
// The middleware contributes no redaction logic of its own: it calls into
// the configured logger exactly like any other caller, and the views it
// logs go through the logger's full pipeline.
//
// Example:
//
//	mw, err := requestlog.New(
//	    requestlog.WithLogger(logger),
//	    requestlog.WithProjectID("my-project"),
//	)
//	if err != nil {
//	    // missing logger or project id
//	}
//	http.ListenAndServe(":8080", mw(mux))
func New(opts ...Option) (func(http.Handler) http.Handler, error) {
	m := &middleware{
		extract:      DefaultExtractor,
		probe:        gcloud.NewProbe(),
		excludePaths: make(map[string]bool),
		// Emission failures mean redaction failed; failing quiet here
		// would let the next unredacted path leak, so the default is loud.
		onError: func(err error) { panic(err) },
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		return nil, ErrNilLogger
	}
	if m.projectID == "" {
		return nil, ErrMissingProjectID
	}

	return m.handler, nil
}

// MustNew builds the middleware or panics on configuration error.
func MustNew(opts ...Option) func(http.Handler) http.Handler {
	mw, err := New(opts...)
	if err != nil {
		panic("requestlog initialization failed: " + err.Error())
	}

	return mw
}

// handler wraps next with request/response observation.
func (m *middleware) handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.excludePaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := newResponseRecorder(w)
		requestID := uuid.NewString()

		next.ServeHTTP(rec, r)
		m.finish(r, rec, start, requestID)
	})
}

// finish emits the single per-request record.
func (m *middleware) finish(r *http.Request, rec *responseRecorder, start time.Time, requestID string) {
	fields := logging.Fields{
		"req":         r,
		"res":         rec,
		"requestId":   requestID,
		"duration_ms": time.Since(start).Milliseconds(),
	}

	if m.probe.Managed() {
		if !m.excludeHTTPRequest {
			fields["httpRequest"] = map[string]any{
				"requestMethod": r.Method,
				"requestUrl":    fullRequestURL(r),
				"responseSize":  rec.BytesWritten(),
				"status":        rec.StatusCode(),
			}
		}

		if traceID, spanID, sampled, ok := m.extract(r); ok {
			fields[gcloud.TraceKey] = gcloud.TraceResource(m.projectID, traceID)
			fields[gcloud.SpanKey] = spanID
			fields[gcloud.SampledKey] = sampled
		}
	}

	if err := m.logger.Log(logging.LevelInfo, fields, FinishedMessage); err != nil {
		m.onError(err)
	}
}

// fullRequestURL reconstructs the absolute URL of a server-side request.
func fullRequestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.RequestURI())
}
