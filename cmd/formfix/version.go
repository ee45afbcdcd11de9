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
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// buildVersion describes the running binary
type buildVersion struct {
	Module   string
	Revision string
	Time     string
	Dirty    bool
}

// readBuildVersion reads the module version and VCS stamp embedded by the
// go command, falling back to "dev" for untagged builds
func readBuildVersion() buildVersion {
	v := buildVersion{Module: "dev"}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Module = bi.Main.Version
	}

	stamp := map[string]string{}
	for _, s := range bi.Settings {
		stamp[s.Key] = s.Value
	}
	v.Revision = stamp["vcs.revision"]
	v.Time = stamp["vcs.time"]
	v.Dirty = stamp["vcs.modified"] == "true"

	return v
}

// String renders the version block printed by `formfix version`
func (v buildVersion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "formfix %s\n", v.Module)
	if v.Revision != "" {
		rev := v.Revision
		if v.Dirty {
			rev += "+dirty"
		}
		fmt.Fprintf(&b, "  commit  %s\n", rev)
	}
	if v.Time != "" {
		fmt.Fprintf(&b, "  built   %s\n", v.Time)
	}
	fmt.Fprintf(&b, "  go      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), readBuildVersion().String())
			return err
		},
	}
}
