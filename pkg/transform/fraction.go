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

package transform

import (
	"regexp"
	"strings"
)

// FractionMessage is recorded when the fraction rule fires
const FractionMessage = `Fixed \frac syntax`

const (
	bareFraction  = `rac{`
	fixedFraction = `\frac{`
)

// the optional `\f` group stands in for a negative lookbehind: a match
// carrying it is already correct and is written back untouched.
var fractionPattern = regexp.MustCompile(`(\\f)?rac\{`)

// 🧮 FractionRule repairs `\frac{` commands whose leading `\f` was lost,
// leaving a bare `rac{`.
//
// The rule fires whenever `rac{` occurs at all, which includes the `rac{`
// inside an already correct `\frac{`. Such content is reported as fixed
// while coming back unchanged.
type FractionRule struct{}

var _ Rule = FractionRule{}

func (FractionRule) Description() string {
	return FractionMessage
}

func (FractionRule) Apply(content string) (string, bool) {
	if !strings.Contains(content, bareFraction) {
		return content, false
	}

	fixed := fractionPattern.ReplaceAllStringFunc(content, func(match string) string {
		if strings.HasPrefix(match, `\f`) {
			return match
		}
		return fixedFraction
	})

	return fixed, true
}
