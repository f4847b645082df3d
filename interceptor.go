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
	"fmt"

	"github.com/valora-inc/logging/redact"
)

// RedactingSink intercepts every record on its way to an inner [Sink] and
// applies the full redaction pipeline:
//
//  1. Split the record into the redaction-exempt protocol fields and the
//     remainder (caller fields plus the message text).
//  2. Normalize the remainder (arbitrary-precision integers widen to text).
//  3. Serialize the remainder, apply the global replace once, parse it back.
//  4. Apply the path redactor to the parsed form.
//  5. Merge into a fresh record and delegate to the inner sink.
//
// The caller's object graph is never touched: normalization copies
// containers, and the serialize/parse round trip yields structures owned
// solely by this emission. Logging the same object from two requests can
// therefore never leak redacted state between them.
//
// Serialization failures propagate out as [ErrSerialize]; see the sentinel's
// documentation for why they are not swallowed.
//
// Thread-safety: immutable after construction; per-call state only.
type RedactingSink struct {
	inner         Sink
	redactor      *redact.Redactor
	globalReplace func(string) string
	metrics       *pipelineMetrics
}

// NewRedactingSink wraps inner with the redaction policy of cfg.
// Returns [redact.ErrInvalidPattern] (wrapped) if any path pattern is
// malformed, so a logger can never run with a policy that silently fails
// to redact.
func NewRedactingSink(inner Sink, cfg redact.Config) (*RedactingSink, error) {
	if inner == nil {
		return nil, ErrNilSink
	}

	redactor, err := redact.New(cfg.Paths, cfg.Censor)
	if err != nil {
		return nil, err
	}

	return &RedactingSink{
		inner:         inner,
		redactor:      redactor,
		globalReplace: cfg.GlobalReplace,
	}, nil
}

// Write implements [Sink].
func (s *RedactingSink) Write(rec Record) error {
	out := make(Record, len(rec))
	remainder := make(map[string]any, len(rec))
	for key, value := range rec {
		if IsRedactionExempt(key) {
			out[key] = value
		} else {
			remainder[key] = value
		}
	}

	raw, err := json.Marshal(redact.NormalizeFields(remainder))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	text := string(raw)
	if s.globalReplace != nil {
		text = s.globalReplace(text)
	}

	var scrubbed map[string]any
	if err := json.Unmarshal([]byte(text), &scrubbed); err != nil {
		return fmt.Errorf("%w: global replace produced invalid JSON: %v", ErrSerialize, err)
	}

	redacted := s.redactor.Apply(scrubbed)
	if s.metrics != nil {
		s.metrics.redactedLeaves.Add(float64(redacted))
	}

	for key, value := range scrubbed {
		out[key] = value
	}

	return s.inner.Write(out)
}
