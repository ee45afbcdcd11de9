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
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// 🔧 hclConfig is the HCL schema, e.g.
//
//	files {
//	  directory = "./monographs"
//	  suffix    = "_farsi.html"
//	}
//	dry_run = true
type hclConfig struct {
	Files *struct {
		Directory *string `hcl:"directory,optional"`
		Suffix    *string `hcl:"suffix,optional"`
	} `hcl:"files,block"`
	DryRun          *bool `hcl:"dry_run,optional"`
	ContinueOnError *bool `hcl:"continue_on_error,optional"`
	ShowDiff        *bool `hcl:"show_diff,optional"`
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string, cfg *Config) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_suffix": cty.StringVal(DefaultSuffix),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	if hclCfg.Files != nil {
		if hclCfg.Files.Directory != nil {
			cfg.Files.Directory = *hclCfg.Files.Directory
		}
		if hclCfg.Files.Suffix != nil {
			cfg.Files.Suffix = *hclCfg.Files.Suffix
		}
	}
	if hclCfg.DryRun != nil {
		cfg.DryRun = *hclCfg.DryRun
	}
	if hclCfg.ContinueOnError != nil {
		cfg.ContinueOnError = *hclCfg.ContinueOnError
	}
	if hclCfg.ShowDiff != nil {
		cfg.ShowDiff = *hclCfg.ShowDiff
	}

	return nil
}
