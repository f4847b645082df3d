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

package requestlog

import (
	"bufio"
	"net"
	"net/http"
)

// responseRecorder wraps an [http.ResponseWriter] to observe the status code
// and body size. It exposes the read-only view the logging package's
// response serializer duck-types on (StatusCode, Header, BytesWritten); the
// response itself is mutated only by the wrapped writer.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w}
}

// WriteHeader implements [http.ResponseWriter].
func (r *responseRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// Write implements [http.ResponseWriter].
func (r *responseRecorder) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}

	n, err := r.ResponseWriter.Write(p)
	r.bytes += int64(n)

	return n, err
}

// StatusCode returns the response status, defaulting to 200 when the
// handler never called WriteHeader.
func (r *responseRecorder) StatusCode() int {
	if !r.wroteHeader {
		return http.StatusOK
	}

	return r.status
}

// BytesWritten returns the number of body bytes written so far.
func (r *responseRecorder) BytesWritten() int64 {
	return r.bytes
}

// Flush passes through to the wrapped writer when it supports streaming.
func (r *responseRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack passes through to the wrapped writer for websocket upgrades.
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := r.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}

	return nil, nil, http.ErrNotSupported
}
