// Copyright 2025 The Rivaas Authors
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

package route

import "strings"

// CombineModels merges a parent (left) and child (right) route.
//
// The child template is appended to the parent template unless it is an
// override pattern, in which case the parent is ignored entirely. The child
// order wins when set. The child name wins unless the child has neither a name
// nor a non-empty template, in which case the parent name is inherited.
// Suppression flags are OR-combined.
//
// CombineModels returns nil when neither side defines a template.
func CombineModels(left, right *Model) *Model {
	if right == nil {
		right = &Model{}
	}
	if right.IsOverride() || left == nil {
		left = &Model{}
	}

	template := CombineTemplates(left.Template, right.Template)
	if template == nil {
		return nil
	}

	order := right.Order
	if order == nil {
		order = left.Order
	}

	name := right.Name
	if name == nil && right.TemplateText() == "" {
		name = left.Name
	}

	combined := &Model{
		Template:               template,
		SuppressLinkGeneration: left.SuppressLinkGeneration || right.SuppressLinkGeneration,
		SuppressPathMatching:   left.SuppressPathMatching || right.SuppressPathMatching,
	}
	if order != nil {
		combined.Order = Int(*order)
	}
	if name != nil {
		combined.Name = String(*name)
	}

	return combined
}

// CombineTemplates joins a prefix template with a child template.
// It returns nil when both are nil.
func CombineTemplates(prefix, template *string) *string {
	combined := combineCore(prefix, template)
	if combined == nil {
		return nil
	}

	cleaned := cleanTemplate(*combined)

	return &cleaned
}

func combineCore(left, right *string) *string {
	switch {
	case left == nil && right == nil:
		return nil
	case right == nil:
		return left
	case isEmptyLeftSegment(left) || IsOverridePattern(*right):
		return right
	}

	if strings.HasSuffix(*left, "/") {
		joined := *left + *right
		return &joined
	}

	joined := *left + "/" + *right

	return &joined
}

func isEmptyLeftSegment(template *string) bool {
	if template == nil {
		return true
	}

	switch *template {
	case "", "/", "~/":
		return true
	}

	return false
}

// cleanTemplate strips one leading "/" or "~/" and one trailing "/".
// The literal "//" is kept as is.
func cleanTemplate(template string) string {
	if template == "//" {
		return template
	}

	start := 0
	switch {
	case strings.HasPrefix(template, "/"):
		start = 1
	case strings.HasPrefix(template, "~/"):
		start = 2
	}

	if start >= len(template) {
		return ""
	}

	end := len(template)
	if strings.HasSuffix(template, "/") {
		end--
	}
	if end <= start {
		return ""
	}

	return template[start:end]
}
