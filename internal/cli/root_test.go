/*
 * Copyright (c) 2026 Paul Breen
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-breen/squelch/internal/config"
	"github.com/paul-breen/squelch/internal/state"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitUsage, GetExitCode(NewExitError(ExitUsage, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("plain")))
	assert.Equal(t, ExitFailure,
		GetExitCode(WrapExitError(ExitFailure, fmt.Errorf("wrapped"))))
}

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"conf-file", "url", "set", "pset", "verbose", "log-json"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "c", cmd.Flags().Lookup("conf-file").Shorthand)
	assert.Equal(t, "u", cmd.Flags().Lookup("url").Shorthand)
	assert.Equal(t, "S", cmd.Flags().Lookup("set").Shorthand)
	assert.Equal(t, "P", cmd.Flags().Lookup("pset").Shorthand)
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squelch.json")
	content := `{"url": "sqlite:///from/file.db", "verbose": 1}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadConfig(&RootOptions{
		ConfFile: path,
		URL:      "sqlite:///from/flag.db",
		Verbose:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, "sqlite:///from/flag.db", cfg.URL)
	assert.Equal(t, 2, cfg.Verbose)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(&RootOptions{
		ConfFile: filepath.Join(t.TempDir(), "absent.json"),
	})
	require.Error(t, err)
}

func TestBuildStoreAppliesFileThenFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Set = map[string]string{"autocommit": "off"}
	cfg.Pset = map[string]string{"footer": "off"}

	store, err := buildStore(cfg, &RootOptions{
		Set:  []string{"a=1"},
		Pset: []string{"footer=on"},
	})
	require.NoError(t, err)

	// File value applied.
	v, err := store.Get("autocommit")
	require.NoError(t, err)
	assert.Equal(t, "off", v)

	// Flag wins over file for the same variable.
	assert.True(t, store.IsOn(state.VarFooter))

	v, err = store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestBuildStoreRejectsMalformedPair(t *testing.T) {
	_, err := buildStore(config.DefaultConfig(), &RootOptions{
		Set: []string{"broken"},
	})
	require.Error(t, err)
}
