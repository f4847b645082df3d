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
	"fmt"
	"os"
	"strings"
)

// Level is a record severity. The numeric values are part of the wire
// contract consumed by downstream log platforms and must not change.
type Level int

const (
	// LevelTrace is the most verbose severity.
	LevelTrace Level = 10
	LevelDebug Level = 20
	LevelInfo  Level = 30
	LevelWarn  Level = 40
	LevelError Level = 50
	LevelFatal Level = 60
)

// LevelEnvVar names the environment variable consulted for the default
// minimum level when none is configured explicitly.
const LevelEnvVar = "LOG_LEVEL"

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name to a [Level]. Names are case-insensitive.
// Returns [ErrInvalidLevel] (wrapped) for unknown names.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}

// validLevel reports whether l is one of the six defined severities.
func validLevel(l Level) bool {
	switch l {
	case LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal:
		return true
	default:
		return false
	}
}

// defaultLevel resolves the initial minimum level: the LOG_LEVEL environment
// variable when it holds a recognized name, info otherwise.
func defaultLevel() Level {
	if name, ok := os.LookupEnv(LevelEnvVar); ok {
		if level, err := ParseLevel(name); err == nil {
			return level
		}
	}

	return LevelInfo
}
