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

// Sentinel is the replacement value used when no censor is configured.
const Sentinel = "***REDACTED***"

// Censor produces the replacement value for a redacted leaf.
//
// A Censor is either a fixed literal (every match is replaced with the same
// value) or a computed function (invoked with the matched value, replacement
// is its return value). The zero Censor falls back to [Sentinel].
//
// Design rationale: modeling the fixed-or-computed choice as one tagged type
// lets the redactor resolve replacements uniformly at scrub time instead of
// branching at every call site.
type Censor struct {
	fixed any
	fn    func(matched any) any
	set   bool
}

// Fixed returns a Censor that replaces every match with the given literal.
func Fixed(value any) Censor {
	return Censor{fixed: value, set: true}
}

// Computed returns a Censor that derives the replacement from the matched value.
// The function must not retain or mutate its argument.
func Computed(fn func(matched any) any) Censor {
	return Censor{fn: fn, set: true}
}

// resolve returns the replacement for a matched value.
func (c Censor) resolve(matched any) any {
	if c.fn != nil {
		return c.fn(matched)
	}
	if c.set {
		return c.fixed
	}

	return Sentinel
}
