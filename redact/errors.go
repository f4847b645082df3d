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

import "errors"

// ErrInvalidPattern indicates a malformed path pattern was supplied to [New].
// This is surfaced at construction time: a policy that could never match is a
// configuration error, not a per-record condition.
var ErrInvalidPattern = errors.New("invalid redaction path pattern")
