// Copyright 2025 walteh LLC
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.AddCommand(newVersionCmd())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	t.Logf("stderr: %s", errOut.String())
	return out.String(), err
}

func setupPages(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	pages := map[string]string{
		"a_farsi.html": `<p>x = rac{1}{2}</p>`,
		"b_farsi.html": `<p>ok</p>`,
		"c_farsi.html": `<input type="text" value="42" readonly>`,
		"index.html":   `<input value="keep">`,
	}
	for name, content := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644), "writing %s", name)
	}
	return dir
}

func TestRootCmd(t *testing.T) {
	dir := setupPages(t)

	out, err := runRoot(t, dir)
	require.NoError(t, err)

	rule := strings.Repeat("=", 60)
	want := strings.Join([]string{
		"Found 3 files matching " + filepath.Join(dir, "*_farsi.html"),
		"",
		"✓ a_farsi.html",
		`  - Fixed \frac syntax`,
		"○ b_farsi.html (no changes needed)",
		"✓ c_farsi.html",
		"  - Removed value attributes from all input fields",
		"",
		rule,
		"Modified 2 out of 3 files",
		rule,
		"",
	}, "\n")
	assert.Equal(t, want, out)

	data, err := os.ReadFile(filepath.Join(dir, "c_farsi.html"))
	require.NoError(t, err)
	assert.Equal(t, `<input type="text" readonly>`, string(data))

	data, err = os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, `<input value="keep">`, string(data))
}

func TestRootCmd_DryRun(t *testing.T) {
	dir := setupPages(t)

	out, err := runRoot(t, dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would modify 2 out of 3 files")

	data, err := os.ReadFile(filepath.Join(dir, "a_farsi.html"))
	require.NoError(t, err)
	assert.Equal(t, `<p>x = rac{1}{2}</p>`, string(data))
}

func TestRootCmd_SuffixFlag(t *testing.T) {
	dir := setupPages(t)

	out, err := runRoot(t, dir, "--suffix", "index.html")
	require.NoError(t, err)
	assert.Contains(t, out, "Modified 1 out of 1 files")

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, `<input>`, string(data))
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := setupPages(t)
	configPath := filepath.Join(t.TempDir(), "formfix.yaml")
	configContent := `
files:
  directory: ` + dir + `
dry_run: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	out, err := runRoot(t, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Would modify 2 out of 3 files")

	// flags win over the file
	out, err = runRoot(t, "--config", configPath, "--dry-run=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Modified 2 out of 3 files")
}

func TestRootCmd_MissingDirectory(t *testing.T) {
	out, err := runRoot(t, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Contains(t, out, "Modified 0 out of 0 files")
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "missing_config",
			args:        []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")},
			errContains: "loading config",
		},
		{
			name:        "suffix_with_separator",
			args:        []string{t.TempDir(), "--suffix", "sub/x.html"},
			errContains: "path separator",
		},
		{
			name:        "too_many_args",
			args:        []string{"a", "b"},
			errContains: "accepts at most 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "formfix "), "got %q", out)
	assert.Contains(t, out, "  go      ")
}

func TestBuildVersion_String(t *testing.T) {
	tests := []struct {
		name    string
		version buildVersion
		want    []string
		notWant []string
	}{
		{
			name:    "tagged_dirty",
			version: buildVersion{Module: "v1.2.3", Revision: "abc123", Time: "2025-01-01T00:00:00Z", Dirty: true},
			want:    []string{"formfix v1.2.3\n", "  commit  abc123+dirty\n", "  built   2025-01-01T00:00:00Z\n"},
		},
		{
			name:    "dev_without_vcs",
			version: buildVersion{Module: "dev"},
			want:    []string{"formfix dev\n"},
			notWant: []string{"commit", "built"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.version.String()
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, got, w)
			}
		})
	}
}
