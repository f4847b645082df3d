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

import "errors"

// Error types for better error handling and testing.
//
// Design rationale:
//   - Sentinel errors (package-level vars) enable [errors.Is] checks
//   - Descriptive names make error handling self-documenting
//
// Usage pattern:
//
//	if err := logger.Info("msg", fields); err != nil {
//	    if errors.Is(err, logging.ErrSerialize) {
//	        // A field could not be represented in the interchange form.
//	    }
//	}
var (
	// ErrNilSink indicates a nil sink was provided to [WithSink].
	// This is a programmer error and is caught during initialization.
	ErrNilSink = errors.New("sink cannot be nil")

	// ErrInvalidLevel indicates a level outside the six defined severities.
	// Returned by [ParseLevel], [Logger.SetLevel], and [Logger.Log].
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrSerialize indicates a record's fields could not be represented in
	// the interchange form used for redaction. The error propagates out of
	// the emission call on purpose: silently dropping a log line whose
	// redaction failed would risk the unredacted data leaking through some
	// fallback path, so the failure is loud instead.
	ErrSerialize = errors.New("serialize log record")
)
