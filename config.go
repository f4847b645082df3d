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

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"

	"github.com/valora-inc/logging/redact"
)

// fileConfig mirrors the YAML configuration file shape.
//
// Level is declared as any so the file may hold either a level name
// ("info") or a wire-format integer (30).
type fileConfig struct {
	Level  any    `yaml:"level"`
	Name   string `yaml:"name"`
	Redact struct {
		Paths  []string `yaml:"paths"`
		Censor *string  `yaml:"censor"`
	} `yaml:"redact"`
}

// FromConfigFile returns an [Option] applying settings read from a YAML
// file. Recognized keys:
//
//	level: info            # name or wire integer
//	name: my-service
//	redact:
//	  paths: [password, req.headers.authorization]
//	  censor: "[hidden]"   # optional fixed censor
//
// Malformed files and unknown levels are configuration errors surfaced
// here, before any logger exists.
func FromConfigFile(path string) (Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	var opts []Option

	if fc.Level != nil {
		level, err := levelFromConfigValue(fc.Level)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		opts = append(opts, WithLevel(level))
	}

	if fc.Name != "" {
		opts = append(opts, WithName(fc.Name))
	}

	if len(fc.Redact.Paths) > 0 {
		opts = append(opts, WithRedactPaths(fc.Redact.Paths...))
	}
	if fc.Redact.Censor != nil {
		opts = append(opts, WithCensor(redact.Fixed(*fc.Redact.Censor)))
	}

	return func(l *Logger) {
		for _, opt := range opts {
			opt(l)
		}
	}, nil
}

// levelFromConfigValue coerces a YAML scalar into a [Level], accepting
// either the wire integer or the level name.
func levelFromConfigValue(value any) (Level, error) {
	if n, err := cast.ToIntE(value); err == nil {
		level := Level(n)
		if !validLevel(level) {
			return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
		}

		return level, nil
	}

	return ParseLevel(cast.ToString(value))
}
