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

// Package logging is a structured-log emission layer with deep,
// pattern-driven redaction of sensitive values.
//
// Every record is intercepted before it leaves the process: its
// non-protocol fields are normalized, serialized, rewritten by an optional
// global text replace, parsed back, scrubbed by dotted/wildcarded path
// patterns, and merged into a fresh copy. The caller's objects are never
// mutated, and the engine's own protocol fields (v, level, name, hostname,
// pid, time) are never touched. The message itself is caller text: it goes
// through the global replace and path redaction like any other field.
//
// # Basic Usage
//
//	logger := logging.MustNew(
//	    logging.WithName("api"),
//	    logging.WithRedactPaths("password", "req.headers.authorization"),
//	)
//	if err := logger.Info("user signed in", logging.Fields{"user": "ada"}); err != nil {
//	    // Serialization failures are loud on purpose: a swallowed redaction
//	    // failure could leak the very data the policy exists to hide.
//	}
//
// # Redaction
//
// Two independent strategies compose in a single deterministic pass. Path
// patterns address known field locations; the global replace rewrites the
// serialized text for patterns not tied to any field name:
//
//	phone := regexp.MustCompile(`\+\d{6}(\d{4})`)
//	logger := logging.MustNew(
//	    logging.WithRedactPaths("a.*.c"),
//	    logging.WithCensor(redact.Fixed("[gone]")),
//	    logging.WithGlobalReplace(func(s string) string {
//	        return phone.ReplaceAllString(s, "+123456XXXX")
//	    }),
//	)
//
// Path redaction runs after the global replace, so a leaf matched by both
// ends up holding the censor value.
//
// # Serializers
//
// The req, res, and err fields get display views automatically: requests and
// responses become plain objects (method, url, query, headers, statusCode,
// ...), and errors from recognized HTTP client shapes are enriched with the
// failed exchange via [ErrorAdapter]. Views are read-only; the source
// objects are never altered. Request views never include the body, since a
// server cannot read it without consuming the handler's stream; log a
// buffered copy as its own field instead. See [StandardSerializers].
//
// # Wire Format
//
// Records are JSON lines with the protocol fields v(0), level(10..60),
// name, hostname, pid, time (ISO-8601 UTC) and msg, a contract consumed by
// downstream log platforms. The default minimum level comes from the
// LOG_LEVEL environment variable, then info.
//
// # HTTP Request Logging
//
// The requestlog subpackage emits one "Request finished" record per HTTP
// request, enriched with trace correlation fields when running inside a
// recognized managed hosting environment (see the gcloud subpackage).
package logging
