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

package gcloud

import (
	"fmt"
	"os"
	"strings"
)

// Reserved structured-log keys recognized by the hosting provider's log
// platform for trace correlation. The exact names are part of the wire
// contract and must not change.
const (
	TraceKey   = "logging.googleapis.com/trace"
	SpanKey    = "logging.googleapis.com/spanId"
	SampledKey = "logging.googleapis.com/trace_sampled"
)

// TraceContextHeader carries the inbound trace context on managed hosting:
// "TRACE_ID/SPAN_ID;o=TRACE_TRUE".
const TraceContextHeader = "X-Cloud-Trace-Context"

// Environment variables signaling a managed hosting context and naming the
// running service.
const (
	// ServiceEnvVar is set on Cloud Run and second-generation Cloud Functions.
	ServiceEnvVar = "K_SERVICE"
	// AppEngineServiceEnvVar is set on App Engine.
	AppEngineServiceEnvVar = "GAE_SERVICE"
)

// Probe looks up managed-hosting environment signals.
//
// A Probe is constructed once at logger/middleware build time and is the
// only place environment variables are consulted; nothing reads the
// environment ad hoc elsewhere.
type Probe struct {
	lookup func(key string) (string, bool)
}

// NewProbe creates a Probe reading the process environment.
func NewProbe() *Probe {
	return &Probe{lookup: os.LookupEnv}
}

// NewProbeWithLookup creates a Probe with an injected lookup, for tests.
func NewProbeWithLookup(lookup func(key string) (string, bool)) *Probe {
	return &Probe{lookup: lookup}
}

// ServiceName returns the managed service's name when running inside a
// recognized managed hosting environment.
func (p *Probe) ServiceName() (string, bool) {
	for _, key := range []string{ServiceEnvVar, AppEngineServiceEnvVar} {
		if value, ok := p.lookup(key); ok && value != "" {
			return value, true
		}
	}

	return "", false
}

// Managed reports whether a managed hosting environment was detected.
func (p *Probe) Managed() bool {
	_, ok := p.ServiceName()
	return ok
}

// ParseTraceContext parses an X-Cloud-Trace-Context header value of the form
// "TRACE_ID/SPAN_ID;o=1". The span id and options part are optional.
// ok is false when the header is absent or carries no trace id.
func ParseTraceContext(header string) (traceID, spanID string, sampled, ok bool) {
	if header == "" {
		return "", "", false, false
	}

	rest := header
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		traceID, rest = rest[:i], rest[i+1:]
	} else {
		traceID, rest = rest, ""
	}
	if traceID == "" {
		return "", "", false, false
	}

	if i := strings.IndexByte(rest, ';'); i >= 0 {
		spanID = rest[:i]
		sampled = strings.Contains(rest[i+1:], "o=1")
	} else {
		spanID = rest
	}

	return traceID, spanID, sampled, true
}

// TraceResource formats a trace id as the fully qualified resource name the
// provider's log platform expects in the [TraceKey] field.
func TraceResource(projectID, traceID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, traceID)
}
