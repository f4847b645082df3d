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
	"bufio"
	"bytes"
	"encoding/json"
	"sync"
	"testing"
)

// MemorySink is a [Sink] that stores records in memory for test assertions.
//
// Records arrive after the full redaction pipeline has run, so assertions
// see exactly what a real sink would emit.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
	err     error
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write implements [Sink].
func (s *MemorySink) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)

	return nil
}

// FailWith makes every subsequent write return err, for error-path tests.
func (s *MemorySink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Records returns a copy of all captured records.
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Record(nil), s.records...)
}

// Last returns the most recent record, or nil when none were captured.
func (s *MemorySink) Last() Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return nil
	}

	return s.records[len(s.records)-1]
}

// Count returns the number of captured records.
func (s *MemorySink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Reset clears all captured records.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// NewTestLogger creates a [Logger] wired to a fresh [MemorySink], with the
// trace threshold so every severity is captured. Additional options are
// applied on top.
func NewTestLogger(t *testing.T, opts ...Option) (*Logger, *MemorySink) {
	t.Helper()

	sink := NewMemorySink()
	defaultOpts := []Option{
		WithName("test"),
		WithSink(sink),
		WithLevel(LevelTrace),
	}
	logger := MustNew(append(defaultOpts, opts...)...)

	return logger, sink
}

// ParseRecords parses JSON-line output (as produced by [WriterSink]) into
// records. It reads a copy of the buffer so the original is not consumed.
func ParseRecords(buf *bytes.Buffer) ([]Record, error) {
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))

	var records []Record
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, scanner.Err()
}
