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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultDirectory is scanned when no directory is configured
	DefaultDirectory = "."
	// DefaultSuffix selects the monograph pages
	DefaultSuffix = "_farsi.html"
)

// 📂 FileSet identifies the files a run operates on: every regular file
// directly inside Directory whose name ends with Suffix.
type FileSet struct {
	Directory string `json:"directory" yaml:"directory" toml:"directory"`
	Suffix    string `json:"suffix" yaml:"suffix" toml:"suffix"`
}

// 📝 Pattern returns the glob-like form of the file set, for display
func (fs FileSet) Pattern() string {
	return filepath.Join(fs.Directory, "*"+fs.Suffix)
}

// 📚 Config represents the complete configuration
type Config struct {
	Files           FileSet `json:"files" yaml:"files" toml:"files"`
	DryRun          bool    `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run,omitempty"`
	ContinueOnError bool    `json:"continue_on_error,omitempty" yaml:"continue_on_error,omitempty" toml:"continue_on_error,omitempty"`
	ShowDiff        bool    `json:"show_diff,omitempty" yaml:"show_diff,omitempty" toml:"show_diff,omitempty"`

	location string
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Files: FileSet{
			Directory: DefaultDirectory,
			Suffix:    DefaultSuffix,
		},
	}
}

// Location is the path the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s (%s)", cfg.Files.Pattern(), mode)
}

// 🔍 Validate checks the configuration and normalizes its paths
func Validate(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Files.Directory) == "" {
		return errors.Errorf("files.directory is required")
	}
	if cfg.Files.Suffix == "" {
		return errors.Errorf("files.suffix is required")
	}
	if strings.ContainsAny(cfg.Files.Suffix, `/\`) {
		return errors.Errorf("files.suffix %q must not contain a path separator", cfg.Files.Suffix)
	}

	cfg.Files.Directory = filepath.Clean(cfg.Files.Directory)

	zerolog.Ctx(ctx).Debug().
		Str("directory", cfg.Files.Directory).
		Str("suffix", cfg.Files.Suffix).
		Bool("dry_run", cfg.DryRun).
		Bool("continue_on_error", cfg.ContinueOnError).
		Msg("validated config")

	return nil
}
