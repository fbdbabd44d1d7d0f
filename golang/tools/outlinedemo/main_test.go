// Copyright 2025 Google LLC
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

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd, err := newCommand(viper.New())
	require.NoError(t, err)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestFlags(t *testing.T) {
	out := run(t, "--calls=5", "--dof=2", "--dims=1", "--min-elements=2", "--max-elements=3", "--seed=3")
	require.Contains(t, out, "calls: 5\n")
	require.Contains(t, out, "call sites: 5\n")
	require.Contains(t, out, "max relative error: ")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("OUTLINE_CALLS", "7")
	t.Setenv("OUTLINE_MIN_ELEMENTS", "1")
	t.Setenv("OUTLINE_MAX_ELEMENTS", "1")
	out := run(t, "--dof=1", "--dims=0")
	require.Contains(t, out, "call sites: 7\n")
	require.Contains(t, out, "distinct functions: 1\n")
}

func TestFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("OUTLINE_CALLS", "7")
	out := run(t, "--calls=4", "--dof=1", "--dims=0", "--min-elements=1", "--max-elements=2")
	require.Contains(t, out, "call sites: 4\n")
}

func TestInvalidConfig(t *testing.T) {
	cmd, err := newCommand(viper.New())
	require.NoError(t, err)
	cmd.SetArgs([]string{"--calls=0"})
	require.Error(t, cmd.Execute())
}

func TestConfigFrom(t *testing.T) {
	v := viper.New()
	_, err := newCommand(v)
	require.NoError(t, err)
	cfg := configFrom(v)
	require.Equal(t, 300, cfg.NumCalls)
	require.Equal(t, 4, cfg.MinElements)
	require.Equal(t, 16, cfg.MaxElements)
}
