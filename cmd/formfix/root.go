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
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/formfix/pkg/config"
	"github.com/walteh/formfix/pkg/report"
	"github.com/walteh/formfix/pkg/runner"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flag values of the root command
type rootOpts struct {
	configFile string
	suffix     string
	dryRun     bool
	keepGoing  bool
	showDiff   bool
	debug      bool
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "formfix [directory]",
		Short: "Repair fractions and stale input values in HTML pages",
		Long: `formfix rewrites the HTML pages of a directory in place.
It will:
1. Select the files whose names end with the configured suffix
2. Repair \frac commands that lost their leading \f
3. Remove pre-filled value attributes from <input> tags
4. Write back only the files whose content changed`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), opts.debug)

			cfg, err := opts.resolveConfig(ctx, cmd, args)
			if err != nil {
				return err
			}

			r := runner.New(runner.Options{
				Reporter:        report.NewConsole(cmd.OutOrStdout()),
				DryRun:          cfg.DryRun,
				ContinueOnError: cfg.ContinueOnError,
				ShowDiff:        cfg.ShowDiff,
			})

			if _, err := r.RunFileSet(ctx, cfg.Files); err != nil {
				return errors.Errorf("running: %w", err)
			}

			return nil
		},
	}

	addRootFlags(cmd, opts)

	return cmd
}

// addRootFlags adds the flags of the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .json, .toml or .hcl)")
	cmd.Flags().StringVarP(&opts.suffix, "suffix", "s", config.DefaultSuffix, "select files whose names end with this suffix")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "report what would change without writing")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "continue with the next file when one fails")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "show the text removed and inserted in each modified file")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}

// resolveConfig layers defaults, the config file, flags and the
// directory argument, in increasing precedence
func (o *rootOpts) resolveConfig(ctx context.Context, cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if o.configFile != "" {
		loaded, err := config.LoadConfig(ctx, o.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("suffix") {
		cfg.Files.Suffix = o.suffix
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if flags.Changed("keep-going") {
		cfg.ContinueOnError = o.keepGoing
	}
	if flags.Changed("diff") {
		cfg.ShowDiff = o.showDiff
	}
	if len(args) == 1 {
		cfg.Files.Directory = args[0]
	}

	if err := config.Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// setupLogging returns ctx carrying a zerolog logger writing to w.
// Only warnings and errors are shown unless debug is set, the console
// report already covers per-file progress.
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
