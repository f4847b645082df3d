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

package logging

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/valora-inc/logging/redact"
)

// WithName sets the logger name emitted in the "name" protocol field.
// Defaults to the executable's base name.
func WithName(name string) Option {
	return func(l *Logger) {
		if name != "" {
			l.name = name
		}
	}
}

// WithLevel sets the minimum severity. Defaults to the LOG_LEVEL environment
// variable, then info.
func WithLevel(level Level) Option {
	return func(l *Logger) { l.level.Store(int32(level)) }
}

// WithOutput sets the output writer for the default JSON-lines sink.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// WithSink sets a custom emission sink instead of the default JSON-lines
// writer. The sink is still wrapped by the redaction pipeline.
func WithSink(sink Sink) Option {
	return func(l *Logger) { l.sink = sink }
}

// WithRedact sets the complete redaction policy.
func WithRedact(cfg redact.Config) Option {
	return func(l *Logger) { l.redactCfg = cfg }
}

// WithRedactPaths adds dotted, wildcard-capable field paths to scrub.
//
// Example:
//
//	logger := logging.MustNew(
//	    logging.WithRedactPaths("password", "req.headers.authorization", "users.*.token"),
//	)
func WithRedactPaths(paths ...string) Option {
	return func(l *Logger) { l.redactCfg.Paths = append(l.redactCfg.Paths, paths...) }
}

// WithCensor sets the replacement strategy for path-redacted leaves.
// Defaults to the fixed sentinel [redact.Sentinel].
func WithCensor(censor redact.Censor) Option {
	return func(l *Logger) { l.redactCfg.Censor = censor }
}

// WithGlobalReplace sets a text rewrite applied once per emission to the
// serialized non-protocol fields, for sensitive substrings not anchored to
// any known field path.
//
// Example:
//
//	phone := regexp.MustCompile(`\+\d{6}(\d{4})`)
//	logger := logging.MustNew(
//	    logging.WithGlobalReplace(func(s string) string {
//	        return phone.ReplaceAllString(s, "+123456XXXX")
//	    }),
//	)
func WithGlobalReplace(fn func(serialized string) string) Option {
	return func(l *Logger) { l.redactCfg.GlobalReplace = fn }
}

// WithSerializers replaces the full serializer set. The default is
// [StandardSerializers] with [DefaultErrorAdapters].
func WithSerializers(serializers map[string]Serializer) Option {
	return func(l *Logger) { l.serializers = serializers }
}

// WithErrorAdapters sets the adapters consulted by the standard error
// serializer to recognize HTTP-client error shapes. Ignored when
// [WithSerializers] is also given.
func WithErrorAdapters(adapters ...ErrorAdapter) Option {
	return func(l *Logger) { l.adapters = adapters }
}

// WithFields binds fields into every record emitted by this logger,
// equivalent to constructing a [Logger.Child].
func WithFields(fields Fields) Option {
	return func(l *Logger) {
		if l.bound == nil {
			l.bound = make(Fields, len(fields))
		}
		for key, value := range fields {
			l.bound[key] = value
		}
	}
}

// WithMetrics registers Prometheus instruments for the emission pipeline
// (records emitted by severity, redacted leaves, pipeline failures).
func WithMetrics(reg prometheus.Registerer) Option {
	return func(l *Logger) { l.registerer = reg }
}

// WithClock overrides the time source for the "time" protocol field.
// Intended for tests that assert on emitted timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}
