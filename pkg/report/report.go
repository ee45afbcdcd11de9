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

package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/formfix/pkg/runner"
)

// 🎨 Display configuration
const (
	changeIndent = 2  // spaces to indent change descriptions
	diffIndent   = 4  // spaces to indent diff lines
	ruleWidth    = 60 // width of the summary rule
)

// 🎯 Console writes a human readable run report, mirroring each line to
// the zerolog logger in the context
type Console struct {
	out io.Writer
	mu  sync.Mutex
}

var _ runner.Reporter = (*Console)(nil)

// 🏭 NewConsole creates a new console reporter
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// 📝 Start prints the header with the number of candidate files
func (c *Console) Start(ctx context.Context, pattern string, found int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern != "" {
		fmt.Fprintf(c.out, "Found %s files matching %s\n\n",
			color.New(color.Bold).Sprint(found),
			color.New(color.FgCyan).Sprint(pattern))
	} else {
		fmt.Fprintf(c.out, "Found %s files\n\n", color.New(color.Bold).Sprint(found))
	}

	zerolog.Ctx(ctx).Info().
		Str("pattern", pattern).
		Int("found", found).
		Msg("starting run")
}

// 📝 File prints the outcome for one file
func (c *Console) File(ctx context.Context, result runner.FileResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, formatFileLine(result))

	if result.Err == nil && result.Modified {
		for _, change := range result.Changes {
			fmt.Fprintf(c.out, "%s- %s\n", strings.Repeat(" ", changeIndent), change)
		}
		for _, line := range strings.Split(strings.TrimRight(result.Diff, "\n"), "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(c.out, "%s%s\n", strings.Repeat(" ", diffIndent), diffColor(line).Sprint(line))
		}
	}

	event := zerolog.Ctx(ctx).Info()
	if result.Err != nil {
		event = zerolog.Ctx(ctx).Error().Err(result.Err)
	}
	event.
		Str("file", result.Name()).
		Bool("modified", result.Modified).
		Strs("changes", result.Changes).
		Msg("file processed")
}

// 📝 Finish prints the summary footer
func (c *Console) Finish(ctx context.Context, summary *runner.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n", rule, FormatSummary(summary), rule)

	zerolog.Ctx(ctx).Info().
		Int("found", summary.Found).
		Int("modified", summary.Modified).
		Int("failed", summary.Failed).
		Msg("run finished")
}

// FormatSummary returns the one line summary of a run
func FormatSummary(summary *runner.Summary) string {
	verb := "Modified"
	if summary.DryRun {
		verb = "Would modify"
	}
	line := fmt.Sprintf("%s %d out of %d files", verb, summary.Modified, summary.Found)
	if summary.Failed > 0 {
		line += fmt.Sprintf(", %d failed", summary.Failed)
	}
	return line
}

// formatFileLine formats the marker line of a file result
func formatFileLine(result runner.FileResult) string {
	switch {
	case result.Err != nil:
		return fmt.Sprintf("%s %s (%v)", color.RedString("✗"), result.Name(), result.Err)
	case result.Modified:
		return fmt.Sprintf("%s %s", color.GreenString("✓"), result.Name())
	default:
		return fmt.Sprintf("%s %s %s", color.HiBlackString("○"), result.Name(),
			color.New(color.Faint).Sprint("(no changes needed)"))
	}
}

func diffColor(line string) *color.Color {
	if strings.HasPrefix(line, "-") {
		return color.New(color.FgRed)
	}
	return color.New(color.FgGreen)
}
