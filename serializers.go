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
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Serializer produces a plain display view of one top-level record field.
//
// Serializers must never mutate the source value (the same object may be
// logged many times across requests), and must return a value of an
// unexpected shape unchanged rather than failing: one malformed field should
// not abort the whole log line. Views produced here still flow through the
// full redaction pipeline like any other field.
type Serializer func(value any) any

// Field names with a standard serializer attached by default.
const (
	FieldRequest  = "req"
	FieldResponse = "res"
	FieldError    = "err"
)

// StandardSerializers returns the default serializer set for the req, res,
// and err fields. The given adapters are consulted by the error serializer;
// pass [DefaultErrorAdapters] for the stock behavior.
func StandardSerializers(adapters ...ErrorAdapter) map[string]Serializer {
	return map[string]Serializer{
		FieldRequest:  RequestSerializer,
		FieldResponse: ResponseSerializer,
		FieldError:    ErrorSerializer(adapters...),
	}
}

// RequestSerializer renders an [*http.Request] as a plain view with the
// method, url, query, headers, remoteAddress and remotePort fields.
// Other values pass through unchanged.
//
// The view carries no body field: a server-side request body is a one-shot
// stream still owned by the handler, and reading it here would consume it.
// Callers holding a buffered copy log it as a separate field, where path
// redaction can address it by name.
func RequestSerializer(value any) any {
	r, ok := value.(*http.Request)
	if !ok || r == nil || r.URL == nil {
		return value
	}

	view := map[string]any{
		"method":  r.Method,
		"url":     r.URL.RequestURI(),
		"headers": headerView(r.Header),
	}
	if query := r.URL.Query(); len(query) > 0 {
		view["query"] = queryView(query)
	}
	if host, port, ok := splitRemoteAddr(r.RemoteAddr); ok {
		view["remoteAddress"] = host
		if port > 0 {
			view["remotePort"] = port
		}
	}

	return view
}

// responseLike is the duck-typed shape of a server-side response recorder
// (see requestlog). [*http.Response] is handled separately.
type responseLike interface {
	StatusCode() int
	Header() http.Header
	BytesWritten() int64
}

// ResponseSerializer renders a response as a plain view with the statusCode,
// header (status line) and headers fields. It recognizes [*http.Response]
// values and server-side recorders implementing StatusCode/Header/
// BytesWritten. Other values pass through unchanged.
func ResponseSerializer(value any) any {
	switch r := value.(type) {
	case *http.Response:
		if r == nil {
			return value
		}

		return map[string]any{
			"statusCode": r.StatusCode,
			"header":     strings.TrimSpace(r.Proto + " " + r.Status),
			"headers":    headerView(r.Header),
		}
	case responseLike:
		code := r.StatusCode()

		return map[string]any{
			"statusCode": code,
			"header":     fmt.Sprintf("HTTP/1.1 %d %s", code, http.StatusText(code)),
			"headers":    headerView(r.Header()),
		}
	default:
		return value
	}
}

// ErrorSerializer returns a serializer rendering error values as a plain
// view with message and name, augmented with request/response sub-objects
// when an [ErrorAdapter] recognizes the error as coming from a known HTTP
// client shape. Non-error values pass through unchanged.
func ErrorSerializer(adapters ...ErrorAdapter) Serializer {
	return func(value any) any {
		err, ok := value.(error)
		if !ok || err == nil {
			return value
		}

		view := map[string]any{
			"message": err.Error(),
			"name":    fmt.Sprintf("%T", err),
		}
		for _, adapter := range adapters {
			if !adapter.CanHandle(err) {
				continue
			}
			request, response := adapter.Extract(err)
			if request != nil {
				view["req"] = request
			}
			if response != nil {
				view["res"] = response
			}

			break
		}

		return view
	}
}

// ErrorAdapter recognizes error values originating from a specific HTTP
// client shape and reconstructs request/response views from them.
//
// Adapters are duck-typed on purpose: recognizing the shape (via interface
// satisfaction or [errors.As]) avoids a hard dependency on any particular
// client library. The first adapter whose CanHandle returns true wins.
type ErrorAdapter interface {
	CanHandle(err error) bool
	Extract(err error) (request, response map[string]any)
}

// DefaultErrorAdapters returns the stock adapter chain: errors exposing the
// failed exchange via a Response() accessor, then [*url.Error].
func DefaultErrorAdapters() []ErrorAdapter {
	return []ErrorAdapter{httpResponseAdapter{}, urlErrorAdapter{}}
}

// httpResponseAdapter handles errors from clients that attach the failed
// [*http.Response] behind a Response() accessor, a convention shared by
// several HTTP client libraries.
type httpResponseAdapter struct{}

// responseCarrier is the duck-typed marker shape.
type responseCarrier interface {
	Response() *http.Response
}

func (httpResponseAdapter) CanHandle(err error) bool {
	var carrier responseCarrier
	return errors.As(err, &carrier) && carrier.Response() != nil
}

func (httpResponseAdapter) Extract(err error) (map[string]any, map[string]any) {
	var carrier responseCarrier
	if !errors.As(err, &carrier) {
		return nil, nil
	}

	resp := carrier.Response()
	if resp == nil {
		return nil, nil
	}

	response, _ := ResponseSerializer(resp).(map[string]any)

	var request map[string]any
	if resp.Request != nil {
		request, _ = RequestSerializer(resp.Request).(map[string]any)
	}

	return request, response
}

// urlErrorAdapter handles [*url.Error], the stdlib client's transport-level
// failure, which carries the operation and target URL but no response.
type urlErrorAdapter struct{}

func (urlErrorAdapter) CanHandle(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func (urlErrorAdapter) Extract(err error) (map[string]any, map[string]any) {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return nil, nil
	}

	return map[string]any{
		"method": urlErr.Op,
		"url":    urlErr.URL,
	}, nil
}

// headerView copies headers into a display mapping with lowercase names and
// comma-joined values. Lowercasing keeps redaction paths like
// "req.headers.authorization" stable regardless of the caller's
// canonicalization; copying decouples the view from the caller's header map.
func headerView(h http.Header) map[string]any {
	view := make(map[string]any, len(h))
	for name, values := range h {
		view[strings.ToLower(name)] = strings.Join(values, ", ")
	}

	return view
}

// queryView renders parsed query parameters, collapsing single-valued
// parameters to plain strings.
func queryView(query url.Values) map[string]any {
	view := make(map[string]any, len(query))
	for name, values := range query {
		if len(values) == 1 {
			view[name] = values[0]
		} else {
			view[name] = append([]string(nil), values...)
		}
	}

	return view
}

// splitRemoteAddr splits a host:port remote address. Addresses without a
// port (as in some test servers) report just the host.
func splitRemoteAddr(addr string) (string, int, bool) {
	if addr == "" {
		return "", 0, false
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0, true
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 0, true
	}

	return host, port, true
}
