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
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Sink receives fully assembled records for emission.
//
// The redaction pipeline is itself a Sink wrapping an inner one
// ([RedactingSink]), so observing or transforming every record before it
// leaves the logger is a matter of interface composition rather than
// patching the logger's internals.
//
// Implementations are called with the write lock of the owning [Logger]
// held, so a Sink shared by exactly one Logger (and its children) does not
// need its own synchronization.
type Sink interface {
	Write(rec Record) error
}

// WriterSink emits records as JSON lines to an [io.Writer].
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink writing one JSON object per line to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write implements [Sink].
func (s *WriterSink) Write(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	data = append(data, '\n')
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("write log record: %w", err)
	}

	return nil
}

// MultiSink fans one record out to several sinks, in order.
//
// Every sink is attempted even when an earlier one fails; the errors are
// joined so no destination is starved by another's outage.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink delegating to each of the given sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Write implements [Sink].
func (s *MultiSink) Write(rec Record) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Write(rec); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
