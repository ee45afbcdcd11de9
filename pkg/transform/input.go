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

// InputValueMessage is recorded when the input rule fires
const InputValueMessage = "Removed value attributes from all input fields"

// the whitespace class before value= is the full Unicode one: \s alone
// misses \v, U+00A0 and the other non-ASCII spaces pages carry
var (
	inputTagPattern  = regexp.MustCompile(`<input[^>]*value="[^"]*"[^>]*>`)
	valueAttrPattern = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+value="[^"]*"`)
)

// 📝 InputValueRule strips pre-filled value="..." attributes from <input>
// tags, readonly ones included. Other attributes are kept verbatim.
//
// Every matched tag text is replaced wherever that exact text occurs, so
// identical tags elsewhere in the page are rewritten by the same pass.
type InputValueRule struct{}

var _ Rule = InputValueRule{}

func (InputValueRule) Description() string {
	return InputValueMessage
}

func (InputValueRule) Apply(content string) (string, bool) {
	tags := inputTagPattern.FindAllString(content, -1)
	if len(tags) == 0 {
		return content, false
	}

	for _, tag := range tags {
		stripped := valueAttrPattern.ReplaceAllString(tag, "")
		content = strings.ReplaceAll(content, tag, stripped)
	}

	return content, true
}
