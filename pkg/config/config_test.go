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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		want        *Config
		errContains string
	}{
		{
			name:     "yaml",
			filename: "formfix.yaml",
			content: `
files:
  directory: ./pages/
  suffix: _fa.html
dry_run: true
continue_on_error: true
show_diff: true
`,
			want: &Config{
				Files:           FileSet{Directory: "pages", Suffix: "_fa.html"},
				DryRun:          true,
				ContinueOnError: true,
				ShowDiff:        true,
			},
		},
		{
			name:     "yml_keeps_defaults",
			filename: "formfix.yml",
			content: `
dry_run: true
`,
			want: &Config{
				Files:  FileSet{Directory: ".", Suffix: DefaultSuffix},
				DryRun: true,
			},
		},
		{
			name:     "empty_yaml",
			filename: "formfix.yaml",
			content:  "",
			want:     Default(),
		},
		{
			name:     "json",
			filename: "formfix.json",
			content:  `{"files": {"directory": "pages"}, "continue_on_error": true}`,
			want: &Config{
				Files:           FileSet{Directory: "pages", Suffix: DefaultSuffix},
				ContinueOnError: true,
			},
		},
		{
			name:     "toml",
			filename: "formfix.toml",
			content: `
dry_run = true

[files]
directory = "pages"
suffix = "_fa.html"
`,
			want: &Config{
				Files:  FileSet{Directory: "pages", Suffix: "_fa.html"},
				DryRun: true,
			},
		},
		{
			name:     "hcl",
			filename: "formfix.hcl",
			content: `
files {
  directory = "pages"
  suffix    = default_suffix
}
show_diff = true
`,
			want: &Config{
				Files:    FileSet{Directory: "pages", Suffix: DefaultSuffix},
				ShowDiff: true,
			},
		},
		{
			name:     "hcl_without_files_block",
			filename: "formfix.hcl",
			content:  `dry_run = true`,
			want: &Config{
				Files:  FileSet{Directory: ".", Suffix: DefaultSuffix},
				DryRun: true,
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    "formfix.yaml",
			content:     "recursive: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    "formfix.json",
			content:     `{"recursive": true}`,
			errContains: "parsing JSON",
		},
		{
			name:        "toml_unknown_field",
			filename:    "formfix.toml",
			content:     "recursive = true\n",
			errContains: "parsing TOML",
		},
		{
			name:        "hcl_syntax_error",
			filename:    "formfix.hcl",
			content:     "files {",
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "formfix.ini",
			content:     "dry_run=true",
			errContains: "unsupported file extension",
		},
		{
			name:     "empty_suffix",
			filename: "formfix.yaml",
			content: `
files:
  suffix: ""
`,
			errContains: "files.suffix is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := LoadConfig(testContext(t), path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Files, cfg.Files)
			assert.Equal(t, tt.want.DryRun, cfg.DryRun)
			assert.Equal(t, tt.want.ContinueOnError, cfg.ContinueOnError)
			assert.Equal(t, tt.want.ShowDiff, cfg.ShowDiff)
			assert.Equal(t, path, cfg.Location())
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(testContext(t), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *Config
		wantDir     string
		errContains string
	}{
		{
			name:    "defaults",
			cfg:     Default(),
			wantDir: ".",
		},
		{
			name:    "cleans_directory",
			cfg:     &Config{Files: FileSet{Directory: "a/../b/", Suffix: ".html"}},
			wantDir: "b",
		},
		{
			name:        "nil",
			errContains: "config is nil",
		},
		{
			name:        "missing_directory",
			cfg:         &Config{Files: FileSet{Directory: "  ", Suffix: ".html"}},
			errContains: "files.directory is required",
		},
		{
			name:        "separator_in_suffix",
			cfg:         &Config{Files: FileSet{Directory: ".", Suffix: "x/y.html"}},
			errContains: "path separator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testContext(t), tt.cfg)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDir, tt.cfg.Files.Directory)
		})
	}
}

func TestFileSet_Pattern(t *testing.T) {
	fs := FileSet{Directory: "pages", Suffix: "_farsi.html"}
	assert.Equal(t, filepath.Join("pages", "*_farsi.html"), fs.Pattern())
}

func TestConfig_String(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "*_farsi.html (write)", cfg.String())
	cfg.DryRun = true
	assert.Equal(t, "*_farsi.html (dry-run)", cfg.String())
}
