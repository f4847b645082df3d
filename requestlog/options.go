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

import "github.com/valora-inc/logging/gcloud"

// Option configures the requestlog middleware.
type Option func(*middleware)

// WithLogger sets the logger receiving the per-request records. Required.
func WithLogger(logger Emitter) Option {
	return func(m *middleware) { m.logger = logger }
}

// WithProjectID sets the cloud project id used to qualify trace resource
// names in the trace correlation fields. Required.
func WithProjectID(projectID string) Option {
	return func(m *middleware) { m.projectID = projectID }
}

// WithExcludeHTTPRequestField suppresses the structured httpRequest summary
// in managed environments. The plain request/response views and the trace
// correlation fields are still emitted.
func WithExcludeHTTPRequestField() Option {
	return func(m *middleware) { m.excludeHTTPRequest = true }
}

// WithTraceExtractor replaces the trace correlation source. The default
// chain reads the provider's trace header, then any active OpenTelemetry
// span on the request context.
func WithTraceExtractor(extract TraceExtractor) Option {
	return func(m *middleware) {
		if extract != nil {
			m.extract = extract
		}
	}
}

// WithProbe replaces the managed-environment probe, for tests or unusual
// deployments.
func WithProbe(probe *gcloud.Probe) Option {
	return func(m *middleware) {
		if probe != nil {
			m.probe = probe
		}
	}
}

// WithExcludePaths exempts specific request paths from logging.
// Useful for health checks and metrics endpoints.
func WithExcludePaths(paths ...string) Option {
	return func(m *middleware) {
		for _, path := range paths {
			m.excludePaths[path] = true
		}
	}
}

// WithErrorHandler replaces the handler invoked when emitting the record
// fails. The default panics: an emission failure means redaction failed,
// and that must not fail open.
func WithErrorHandler(onError func(error)) Option {
	return func(m *middleware) {
		if onError != nil {
			m.onError = onError
		}
	}
}
