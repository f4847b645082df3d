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

package redact

import (
	"fmt"
	"strconv"
	"strings"
)

// Wildcard matches any single key or index at its depth in a path pattern.
const Wildcard = "*"

// Config describes one redaction policy.
//
// Paths are dot-separated field addresses into the non-protocol portion of a
// record; a "*" segment matches any single key or index at that depth.
// Censor produces the replacement for every path match. GlobalReplace, when
// non-nil, is applied once per emission to the full serialized text of the
// record before structural parsing, so it can rewrite substrings that are not
// anchored to a known field path (e.g. a phone number inside a free-text
// message).
//
// A Config is immutable once the owning logger is constructed and is shared
// by reference across all emissions.
type Config struct {
	Paths         []string
	Censor        Censor
	GlobalReplace func(serialized string) string
}

// pattern is one compiled path pattern.
type pattern struct {
	raw      string
	segments []string
}

// compile validates and splits a raw path pattern.
// Fails fast on malformed patterns so a logger can never be constructed
// with a policy that silently matches nothing.
func compile(raw string) (pattern, error) {
	if raw == "" {
		return pattern{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	segments := strings.Split(raw, ".")
	for _, segment := range segments {
		if segment == "" {
			return pattern{}, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPattern, raw)
		}
	}

	return pattern{raw: raw, segments: segments}, nil
}

// Redactor scrubs leaf values matching a set of compiled path patterns.
//
// Matching is case-sensitive and exact per segment; a pattern that addresses
// a path not present in a given value is a no-op for that value. Multiple
// patterns may match the same leaf; because every match resolves through the
// same censor, the result is independent of pattern order.
//
// Thread-safety: a Redactor is immutable after construction and safe for
// concurrent use.
type Redactor struct {
	patterns []pattern
	censor   Censor
}

// New compiles the given path patterns into a Redactor.
// Returns [ErrInvalidPattern] (wrapped) if any pattern is malformed.
func New(paths []string, censor Censor) (*Redactor, error) {
	patterns := make([]pattern, 0, len(paths))
	for _, raw := range paths {
		p, err := compile(raw)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return &Redactor{patterns: patterns, censor: censor}, nil
}

// Apply replaces every leaf in fields reachable by a configured pattern with
// the censor result, mutating fields in place. It returns the number of
// leaves redacted.
//
// Apply expects the pipeline-owned parsed copy of a record; callers must not
// pass structures shared with application code.
func (r *Redactor) Apply(fields map[string]any) int {
	redacted := 0
	for _, p := range r.patterns {
		redacted += r.applyMap(fields, p.segments)
	}

	return redacted
}

// applyMap walks one pattern through a mapping node.
func (r *Redactor) applyMap(node map[string]any, segments []string) int {
	segment := segments[0]
	last := len(segments) == 1

	if segment == Wildcard {
		redacted := 0
		for key, child := range node {
			if last {
				node[key] = r.censor.resolve(child)
				redacted++
			} else {
				redacted += r.applyChild(child, segments[1:])
			}
		}

		return redacted
	}

	child, ok := node[segment]
	if !ok {
		return 0
	}
	if last {
		node[segment] = r.censor.resolve(child)
		return 1
	}

	return r.applyChild(child, segments[1:])
}

// applySlice walks one pattern through a sequence node.
// Index segments are decimal; the wildcard matches every element.
func (r *Redactor) applySlice(node []any, segments []string) int {
	segment := segments[0]
	last := len(segments) == 1

	if segment == Wildcard {
		redacted := 0
		for i, child := range node {
			if last {
				node[i] = r.censor.resolve(child)
				redacted++
			} else {
				redacted += r.applyChild(child, segments[1:])
			}
		}

		return redacted
	}

	index, err := strconv.Atoi(segment)
	if err != nil || index < 0 || index >= len(node) {
		return 0
	}
	if last {
		node[index] = r.censor.resolve(node[index])
		return 1
	}

	return r.applyChild(node[index], segments[1:])
}

// applyChild dispatches on the child's structural kind.
// Scalar children with remaining segments are a no-op: the pattern addresses
// deeper than the value goes.
func (r *Redactor) applyChild(child any, segments []string) int {
	switch node := child.(type) {
	case map[string]any:
		return r.applyMap(node, segments)
	case []any:
		return r.applySlice(node, segments)
	default:
		return 0
	}
}
