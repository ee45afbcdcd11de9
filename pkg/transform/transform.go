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

// Package transform holds the text rewrite rules applied to each page.
//
// Rules are purely textual: no HTML or LaTeX document is ever built. A
// Transformer applies its rules in order and records the description of
// every rule that fired.
package transform

// 🔄 Rule is one independent text rewrite
type Rule interface {
	// Description is recorded in the change list when the rule fires
	Description() string
	// Apply returns the rewritten content and whether the rule fired.
	// A rule may fire without changing the content.
	Apply(content string) (string, bool)
}

// 📦 Result contains the outcome of transforming one file's content
type Result struct {
	// Original is the content before any rule ran
	Original string
	// Content is the content after every rule ran
	Content string
	// Changes lists the descriptions of the rules that fired, in rule order
	Changes []string
}

// WasModified reports whether the content differs from the original.
// Equality is exact string equality.
func (r *Result) WasModified() bool {
	return r.Content != r.Original
}

// 🎯 Transformer applies an ordered list of rules
type Transformer struct {
	rules []Rule
}

// 🏭 New creates a transformer applying rules in the given order
func New(rules ...Rule) *Transformer {
	return &Transformer{rules: rules}
}

// 🏭 Default creates the transformer used for monograph pages: the
// fraction repair followed by the input value stripping.
func Default() *Transformer {
	return New(FractionRule{}, InputValueRule{})
}

// Rules returns the rules in application order
func (t *Transformer) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Transform runs every rule over the content
func (t *Transformer) Transform(content string) *Result {
	result := &Result{
		Original: content,
		Content:  content,
		Changes:  []string{},
	}

	for _, rule := range t.rules {
		next, fired := rule.Apply(result.Content)
		if fired {
			result.Changes = append(result.Changes, rule.Description())
		}
		result.Content = next
	}

	return result
}

// Transform applies the default rules to content and returns the new
// content with the ordered list of change descriptions.
func Transform(content string) (string, []string) {
	result := Default().Transform(content)
	return result.Content, result.Changes
}
