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
	"testing"

	"github.com/stretchr/testify/assert"
)

func envLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestProbe_ServiceName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		env      map[string]string
		expected string
		managed  bool
	}{
		{"cloud run", map[string]string{"K_SERVICE": "api"}, "api", true},
		{"app engine", map[string]string{"GAE_SERVICE": "default"}, "default", true},
		{"cloud run wins over app engine", map[string]string{"K_SERVICE": "api", "GAE_SERVICE": "default"}, "api", true},
		{"empty value is not managed", map[string]string{"K_SERVICE": ""}, "", false},
		{"bare environment", map[string]string{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			probe := NewProbeWithLookup(envLookup(tt.env))

			name, ok := probe.ServiceName()
			assert.Equal(t, tt.managed, ok)
			assert.Equal(t, tt.expected, name)
			assert.Equal(t, tt.managed, probe.Managed())
		})
	}
}

func TestParseTraceContext(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		header  string
		traceID string
		spanID  string
		sampled bool
		ok      bool
	}{
		{
			name:    "full header sampled",
			header:  "105445aa7843bc8bf206b12000100000/123456789;o=1",
			traceID: "105445aa7843bc8bf206b12000100000",
			spanID:  "123456789",
			sampled: true,
			ok:      true,
		},
		{
			name:    "full header not sampled",
			header:  "105445aa7843bc8bf206b12000100000/123456789;o=0",
			traceID: "105445aa7843bc8bf206b12000100000",
			spanID:  "123456789",
			sampled: false,
			ok:      true,
		},
		{
			name:    "no options part",
			header:  "abc123/456",
			traceID: "abc123",
			spanID:  "456",
			sampled: false,
			ok:      true,
		},
		{
			name:    "trace id only",
			header:  "abc123",
			traceID: "abc123",
			ok:      true,
		},
		{name: "empty header", header: ""},
		{name: "missing trace id", header: "/123;o=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			traceID, spanID, sampled, ok := ParseTraceContext(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.traceID, traceID)
			assert.Equal(t, tt.spanID, spanID)
			assert.Equal(t, tt.sampled, sampled)
		})
	}
}

func TestTraceResource(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"projects/my-project/traces/abc123",
		TraceResource("my-project", "abc123"),
	)
}
