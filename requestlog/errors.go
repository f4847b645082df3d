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

import "errors"

var (
	// ErrNilLogger is returned by New when no logger was provided.
	// The middleware has no useful fallback; requiring WithLogger at
	// construction keeps misconfiguration loud.
	//
	// Example:
	//
	//	_, err := requestlog.New()
	//	if errors.Is(err, requestlog.ErrNilLogger) {
	//		// configuration bug
	//	}
	ErrNilLogger = errors.New("requestlog: logger is required")

	// ErrMissingProjectID is returned by New when trace correlation is
	// enabled but no project ID was provided. The trace resource name
	// embeds the project, so a missing ID would produce records the
	// log viewer cannot link to traces.
	ErrMissingProjectID = errors.New("requestlog: project ID is required for trace correlation")
)
