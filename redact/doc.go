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

// Package redact implements path-based and text-based scrubbing of sensitive
// values in structured log records.
//
// Two independent strategies compose in a single deterministic pass:
//
//   - Path redaction: dotted, wildcard-capable field addresses
//     (e.g. "req.headers.authorization", "users.*.password") whose matching
//     leaves are replaced by a [Censor].
//   - Global replace: a text rewrite applied to the full serialized record,
//     for sensitive substrings not anchored to any known field name.
//
// The package also provides [Normalize], which widens values with no exact
// JSON representation (arbitrary-precision integers) to decimal text before
// serialization.
//
// # Usage
//
//	r, err := redact.New(
//	    []string{"password", "req.headers.*"},
//	    redact.Fixed("[hidden]"),
//	)
//	if err != nil {
//	    // malformed pattern: fail fast, never run with a broken policy
//	}
//	n := r.Apply(fields) // fields scrubbed in place, n leaves redacted
//
// Redaction itself never fails at emission time: a path that matches nothing
// in a given record is silently skipped. Only pattern compilation can error.
package redact
