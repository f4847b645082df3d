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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFromConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
level: warn
name: billing
redact:
  paths:
    - password
    - req.headers.authorization
  censor: "[hidden]"
`)

		opt, err := FromConfigFile(path)
		require.NoError(t, err)

		logger, sink := NewTestLogger(t, opt)
		assert.Equal(t, "billing", logger.Name())
		assert.Equal(t, LevelWarn, logger.Level())

		require.NoError(t, logger.Error("msg", Fields{"password": "x"}))
		assert.Equal(t, "[hidden]", sink.Last()["password"])
	})

	t.Run("numeric level", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "level: 50\n")

		opt, err := FromConfigFile(path)
		require.NoError(t, err)

		logger, _ := NewTestLogger(t, opt)
		assert.Equal(t, LevelError, logger.Level())
	})

	t.Run("unknown level name", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "level: verbose\n")

		_, err := FromConfigFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	})

	t.Run("invalid numeric level", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "level: 35\n")

		_, err := FromConfigFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := FromConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "level: [unclosed\n")

		_, err := FromConfigFile(path)
		assert.Error(t, err)
	})

	t.Run("empty file applies nothing", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "")

		opt, err := FromConfigFile(path)
		require.NoError(t, err)

		logger, _ := NewTestLogger(t, opt)
		assert.Equal(t, "test", logger.Name())
		assert.Equal(t, LevelTrace, logger.Level())
	})
}
