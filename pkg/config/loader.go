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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// rawConfig is the on-disk shape shared by the JSON, YAML and TOML formats.
// Pointers distinguish "absent" from "zero" so defaults survive.
type rawConfig struct {
	Files *struct {
		Directory *string `json:"directory" yaml:"directory" toml:"directory"`
		Suffix    *string `json:"suffix" yaml:"suffix" toml:"suffix"`
	} `json:"files" yaml:"files" toml:"files"`
	DryRun          *bool `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	ContinueOnError *bool `json:"continue_on_error" yaml:"continue_on_error" toml:"continue_on_error"`
	ShowDiff        *bool `json:"show_diff" yaml:"show_diff" toml:"show_diff"`
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .toml for TOML
// - .hcl for HCL
// Settings missing from the file keep their defaults.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = loadJSON(data, cfg)
	case ".yaml", ".yml":
		err = loadYAML(data, cfg)
	case ".toml":
		err = loadTOML(data, cfg)
	case ".hcl":
		err = loadHCL(data, path, cfg)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg.location = path
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte, cfg *Config) error {
	var raw rawConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return errors.Errorf("parsing JSON: %w", err)
	}
	raw.apply(cfg)
	return nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte, cfg *Config) error {
	var raw rawConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// an empty document leaves every default in place
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return errors.Errorf("parsing YAML: %w", err)
	}
	raw.apply(cfg)
	return nil
}

// loadTOML loads a configuration from TOML data
func loadTOML(data []byte, cfg *Config) error {
	var raw rawConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return errors.Errorf("parsing TOML: %w", err)
	}
	raw.apply(cfg)
	return nil
}

func (raw *rawConfig) apply(cfg *Config) {
	if raw.Files != nil {
		if raw.Files.Directory != nil {
			cfg.Files.Directory = *raw.Files.Directory
		}
		if raw.Files.Suffix != nil {
			cfg.Files.Suffix = *raw.Files.Suffix
		}
	}
	if raw.DryRun != nil {
		cfg.DryRun = *raw.DryRun
	}
	if raw.ContinueOnError != nil {
		cfg.ContinueOnError = *raw.ContinueOnError
	}
	if raw.ShowDiff != nil {
		cfg.ShowDiff = *raw.ShowDiff
	}
}
