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

import "math/big"

// Normalize returns a value safe for lossless JSON serialization.
//
// Arbitrary-precision integers ([big.Int]) are widened to their decimal text
// representation; every other kind passes through unchanged. Mappings and
// sequences are recursed and always copied, so the returned structure shares
// no containers with the input. Normalization is total: it never fails, and
// normalizing twice yields the same result as normalizing once.
func Normalize(value any) any {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil
		}
		return v.String()
	case big.Int:
		return v.String()
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[key] = Normalize(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = Normalize(child)
		}
		return out
	default:
		return value
	}
}

// NormalizeFields normalizes a field mapping, always returning a fresh map.
// A nil input yields an empty map so the caller can serialize unconditionally.
func NormalizeFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, child := range fields {
		out[key] = Normalize(child)
	}

	return out
}
