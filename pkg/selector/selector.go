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

// Package selector enumerates the files a run operates on.
package selector

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/formfix/pkg/config"
	"gitlab.com/tozd/go/errors"
)

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// 🔍 Select returns the regular files directly inside set.Directory whose
// names end with set.Suffix, sorted lexicographically by path.
//
// A missing or unreadable directory is not an error: it is logged and
// yields no files.
func Select(ctx context.Context, set config.FileSet) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if set.Suffix == "" {
		return nil, errors.New("suffix is required")
	}

	info, err := os.Stat(set.Directory)
	if err != nil {
		logger.Warn().Err(err).Str("directory", set.Directory).Msg("cannot read directory, no files selected")
		return []string{}, nil
	}
	if !info.IsDir() {
		logger.Warn().Str("directory", set.Directory).Msg("not a directory, no files selected")
		return []string{}, nil
	}

	pattern := "*" + globEscaper.Replace(set.Suffix)

	names, err := doublestar.Glob(os.DirFS(set.Directory), pattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, errors.Errorf("matching %q: %w", pattern, err)
		}
		logger.Warn().Err(err).Str("directory", set.Directory).Msg("listing directory failed, no files selected")
		return []string{}, nil
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(set.Directory, name))
	}
	sort.Strings(files)

	logger.Debug().
		Str("directory", set.Directory).
		Str("pattern", pattern).
		Int("count", len(files)).
		Msg("selected files")

	return files, nil
}
