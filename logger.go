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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/valora-inc/logging/redact"
)

// Logger emits structured records through the redaction pipeline to a [Sink].
//
// Thread-safety: all public methods are safe for concurrent use.
//   - level uses an atomic for lock-free threshold checks
//   - mu serializes sink writes, so records reach the sink in call order
//   - everything else is immutable after [New] returns
//
// The redaction policy is compiled once at construction and shared read-only
// across all emissions; each emission's pipeline pass touches only its own
// copied structures, so concurrent Log calls need no further coordination.
type Logger struct {
	name     string
	hostname string
	pid      int

	level atomic.Int32

	out         io.Writer // used when no explicit sink was configured
	sink        Sink
	redactCfg   redact.Config
	serializers map[string]Serializer
	adapters    []ErrorAdapter
	bound       Fields
	metrics     *pipelineMetrics
	registerer  prometheus.Registerer
	now         func() time.Time

	// mu is shared between a logger and its children so that all records
	// bound for the same sink keep call order.
	mu *sync.Mutex
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

// defaultLogger returns a Logger with default configuration.
func defaultLogger() *Logger {
	l := &Logger{
		name: filepath.Base(os.Args[0]),
		pid:  os.Getpid(),
		out:  os.Stdout,
		now:  time.Now,
		mu:   &sync.Mutex{},
	}
	l.level.Store(int32(defaultLevel()))
	if hostname, err := os.Hostname(); err == nil {
		l.hostname = hostname
	} else {
		l.hostname = "unknown"
	}

	return l
}

// New creates a new Logger with the given options.
//
// The sink is wrapped in a [RedactingSink] exactly once here, so every
// record goes through normalization and the serialize/parse round trip
// whether or not a redaction policy is configured. That keeps the
// non-mutation and numeric-widening guarantees unconditional.
//
// Malformed redaction path patterns fail construction with
// [redact.ErrInvalidPattern] rather than producing a logger that silently
// never redacts.
func New(opts ...Option) (*Logger, error) {
	l := defaultLogger()

	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if l.registerer != nil {
		l.metrics = newPipelineMetrics(l.registerer)
	}

	if l.serializers == nil {
		adapters := l.adapters
		if adapters == nil {
			adapters = DefaultErrorAdapters()
		}
		l.serializers = StandardSerializers(adapters...)
	}

	inner := l.sink
	if inner == nil {
		inner = NewWriterSink(l.out)
	}

	redacting, err := NewRedactingSink(inner, l.redactCfg)
	if err != nil {
		return nil, err
	}
	redacting.metrics = l.metrics
	l.sink = redacting

	return l, nil
}

// MustNew creates a new Logger or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}

	return l
}

// Validate checks if the configuration is valid.
func (l *Logger) Validate() error {
	if l.name == "" {
		return errors.New("logger name cannot be empty")
	}

	if l.sink == nil && l.out == nil {
		return errors.New("output writer cannot be nil")
	}

	if !validLevel(Level(l.level.Load())) {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, l.level.Load())
	}

	return nil
}

// Log assembles and emits one record at the given severity.
//
// fields are merged first (with any bound child-logger fields), then the
// protocol fields are set, so callers can never override v, level, name,
// hostname, pid, time or msg. Fields with a registered [Serializer] are
// replaced by their display view before the record enters the pipeline.
//
// The returned error is non-nil only for invalid levels and pipeline or sink
// failures; a call below the threshold returns nil and emits nothing.
func (l *Logger) Log(level Level, fields Fields, msg string) error {
	if !validLevel(level) {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	if level < l.Level() {
		return nil
	}

	rec := make(Record, len(l.bound)+len(fields)+len(protocolFields))
	for key, value := range l.bound {
		rec[key] = l.serializeField(key, value)
	}
	for key, value := range fields {
		rec[key] = l.serializeField(key, value)
	}

	rec[FieldVersion] = RecordVersion
	rec[FieldLevel] = int(level)
	rec[FieldName] = l.name
	rec[FieldHostname] = l.hostname
	rec[FieldPID] = l.pid
	rec[FieldTime] = l.now().UTC().Format(TimeLayout)
	rec[FieldMessage] = msg

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.sink.Write(rec); err != nil {
		if l.metrics != nil {
			l.metrics.failures.Inc()
		}

		return err
	}

	if l.metrics != nil {
		l.metrics.emitted.WithLabelValues(level.String()).Inc()
	}

	return nil
}

// serializeField applies the registered serializer for key, if any.
// Serializers are display-only views: they never mutate the source value,
// and a value of an unexpected shape is passed through unchanged rather
// than aborting the whole record.
func (l *Logger) serializeField(key string, value any) any {
	if serializer, ok := l.serializers[key]; ok {
		return serializer(value)
	}

	return value
}

// Trace logs a message at trace severity.
func (l *Logger) Trace(msg string, fields ...Fields) error {
	return l.Log(LevelTrace, mergeFields(fields), msg)
}

// Debug logs a message at debug severity.
func (l *Logger) Debug(msg string, fields ...Fields) error {
	return l.Log(LevelDebug, mergeFields(fields), msg)
}

// Info logs a message at info severity.
func (l *Logger) Info(msg string, fields ...Fields) error {
	return l.Log(LevelInfo, mergeFields(fields), msg)
}

// Warn logs a message at warn severity.
func (l *Logger) Warn(msg string, fields ...Fields) error {
	return l.Log(LevelWarn, mergeFields(fields), msg)
}

// Error logs a message at error severity.
func (l *Logger) Error(msg string, fields ...Fields) error {
	return l.Log(LevelError, mergeFields(fields), msg)
}

// Fatal logs a message at fatal severity. Process lifecycle is the caller's
// concern: Fatal does not exit.
func (l *Logger) Fatal(msg string, fields ...Fields) error {
	return l.Log(LevelFatal, mergeFields(fields), msg)
}

// mergeFields flattens the optional variadic fields of the severity helpers.
// A single mapping is used as-is (it is only ever read); multiple mappings
// merge into a fresh one, later keys winning.
func mergeFields(fields []Fields) Fields {
	switch len(fields) {
	case 0:
		return nil
	case 1:
		return fields[0]
	default:
		merged := make(Fields)
		for _, f := range fields {
			for key, value := range f {
				merged[key] = value
			}
		}

		return merged
	}
}

// Child returns a logger that inherits this logger's configuration and sink
// and binds the given fields into every record it emits. Bound fields travel
// through the same redaction pipeline as caller fields.
//
// Parent and child share one write lock, so their records interleave at the
// sink in call order.
func (l *Logger) Child(fields Fields) *Logger {
	bound := make(Fields, len(l.bound)+len(fields))
	for key, value := range l.bound {
		bound[key] = value
	}
	for key, value := range fields {
		bound[key] = value
	}

	child := &Logger{
		name:        l.name,
		hostname:    l.hostname,
		pid:         l.pid,
		sink:        l.sink,
		serializers: l.serializers,
		adapters:    l.adapters,
		bound:       bound,
		metrics:     l.metrics,
		now:         l.now,
		mu:          l.mu,
	}
	child.level.Store(l.level.Load())

	return child
}

// SetLevel changes the minimum severity at runtime.
func (l *Logger) SetLevel(level Level) error {
	if !validLevel(level) {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	l.level.Store(int32(level))

	return nil
}

// Level returns the current minimum severity.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// Name returns the logger name emitted in the "name" protocol field.
// Immutable after initialization, so no lock is needed.
func (l *Logger) Name() string {
	return l.name
}
